package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/logger"
)

// FileWalker 枚举目录下的普通文件。符号链接既不跟随也不返回。
type FileWalker struct {
	Fs            afero.Fs
	Recursive     bool
	IncludeHidden bool
}

func NewFileWalker(fs afero.Fs) *FileWalker {
	return &FileWalker{
		Fs: fs,
	}
}

// Enumerate 返回 root 下的文件路径列表，顺序为深度优先的字典序。
// 列表在返回时即已固定，调用方在移动文件期间不会再看到新产生的条目。
func (w *FileWalker) Enumerate(root string) ([]string, error) {
	if !w.Recursive {
		return w.listDir(root)
	}

	var files []string
	err := afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Get().Debug().Err(err).Str("path", path).Msg("访问路径出错")
			return nil
		}

		if info.IsDir() {
			if path != root && w.skipHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() || w.skipHidden(info.Name()) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// WalkDirs 自底向上（先子目录后父目录）返回 root 下的所有目录，不包含 root 本身
func (w *FileWalker) WalkDirs(root string) ([]string, error) {
	var dirs []string
	err := afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Get().Debug().Err(err).Str("path", path).Msg("访问路径出错")
			return nil
		}
		if !info.IsDir() || path == root {
			return nil
		}
		if w.skipHidden(info.Name()) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs, nil
}

func (w *FileWalker) listDir(root string) ([]string, error) {
	entries, err := afero.ReadDir(w.Fs, root)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Mode().IsRegular() || w.skipHidden(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(root, entry.Name()))
	}
	return files, nil
}

func (w *FileWalker) skipHidden(name string) bool {
	return !w.IncludeHidden && IsHidden(name)
}

// IsHidden 以点开头的名称视为隐藏
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
