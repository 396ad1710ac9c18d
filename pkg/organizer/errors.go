package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

var (
	// ErrDirectoryNotFound 目标目录不存在或不是目录，整理在任何修改之前终止
	ErrDirectoryNotFound = errors.New("目录不存在")

	ErrFileVanished          = errors.New("文件已不存在")
	ErrPermissionDenied      = errors.New("权限不足")
	ErrCrossDeviceMoveFailed = errors.New("跨设备移动失败")
	ErrFolderNotEmpty        = errors.New("目录不为空")
)

// FileError 单个文件或目录上的可恢复错误
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// classifyError 把底层错误归入已知类别，同时保留原始错误
func classifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrFileVanished), errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrCrossDeviceMoveFailed), errors.Is(err, ErrFolderNotEmpty):
		return err
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileVanished, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case errors.Is(err, syscall.EXDEV):
		return fmt.Errorf("%w: %w", ErrCrossDeviceMoveFailed, err)
	case errors.Is(err, syscall.ENOTEMPTY):
		return fmt.Errorf("%w: %w", ErrFolderNotEmpty, err)
	default:
		return err
	}
}
