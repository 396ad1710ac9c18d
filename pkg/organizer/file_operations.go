package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/hasher"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

// SplitExt 拆分文件名和扩展名。前导点不算扩展名分隔符，
// 因此 ".bashrc" 没有扩展名，"a.tar.gz" 的扩展名为 ".gz"
func SplitExt(name string) (base, ext string) {
	ext = filepath.Ext(strings.TrimLeft(name, "."))
	return name[:len(name)-len(ext)], ext
}

// resolveDestination 计算不冲突的目标路径。
// 目标已存在且与源文件不是同一个文件时，依次尝试 name_1.ext、name_2.ext ...
// 返回值等于 src 表示文件已在正确位置。
// 检查和移动不是原子操作，整理期间目录被其他进程修改时仍可能冲突。
func (o *Organizer) resolveDestination(src, dst string) (string, error) {
	exists, err := o.exists(dst)
	if err != nil {
		return "", fmt.Errorf("检查文件是否存在失败: %w", err)
	}
	if !exists {
		return dst, nil
	}
	if o.sameFile(src, dst) {
		return src, nil
	}

	dir := filepath.Dir(dst)
	base, ext := SplitExt(filepath.Base(dst))

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		exists, err := o.exists(candidate)
		if err != nil {
			return "", fmt.Errorf("检查文件是否存在失败: %w", err)
		}
		if !exists {
			logger.Get().Debug().
				Str("original_path", dst).
				Str("new_path", candidate).
				Msg("文件名冲突，自动重命名")
			return candidate, nil
		}
		if o.sameFile(src, candidate) {
			return src, nil
		}
	}
}

// moveFile 使用 rename 移动文件；跨设备时改为复制、校验后删除源文件
func (o *Organizer) moveFile(src, dst string) error {
	err := o.Fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return classifyError(err)
	}

	logger.Get().Debug().
		Err(err).
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	if err := o.copyVerified(src, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrCrossDeviceMoveFailed, err)
	}

	if err := o.Fs.Remove(src); err != nil {
		// 源文件删不掉时撤销复制，避免同一个文件出现两份
		_ = o.Fs.Remove(dst)
		return fmt.Errorf("%w: 删除原文件失败: %w", ErrCrossDeviceMoveFailed, err)
	}
	return nil
}

// copyVerified 复制文件并用 xxHash 校验内容，校验失败时删除目标文件
func (o *Organizer) copyVerified(src, dst string) error {
	info, err := o.Fs.Stat(src)
	if err != nil {
		return classifyError(err)
	}

	in, err := o.Fs.Open(src)
	if err != nil {
		return classifyError(err)
	}
	defer in.Close()

	out, err := o.Fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = o.Fs.Remove(dst)
		return fmt.Errorf("复制文件内容失败: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = o.Fs.Remove(dst)
		return fmt.Errorf("关闭目标文件失败: %w", err)
	}

	same, err := hasher.SameContent(o.Fs, src, dst)
	if err != nil {
		_ = o.Fs.Remove(dst)
		return fmt.Errorf("校验复制结果失败: %w", err)
	}
	if !same {
		_ = o.Fs.Remove(dst)
		return errors.New("复制结果校验不一致")
	}

	_ = o.Fs.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

// sameFile 路径相同，或在真实文件系统上是同一个 inode。
// 不跟随符号链接，指向源文件的链接不算同一个文件
func (o *Organizer) sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ia, err := o.lstat(a)
	if err != nil {
		return false
	}
	ib, err := o.lstat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

// lstat 不跟随符号链接，文件系统不支持时退回 Stat
func (o *Organizer) lstat(path string) (os.FileInfo, error) {
	if lstater, ok := o.Fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return o.Fs.Stat(path)
}

// exists 用 Lstat 判断，悬空的符号链接也算占用了文件名
func (o *Organizer) exists(path string) (bool, error) {
	_, err := o.lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
