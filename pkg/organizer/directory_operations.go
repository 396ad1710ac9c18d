package organizer

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/progress"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// removeEmptyFolders 自底向上删除 root 下的空目录（不含 root 本身）。
// 子目录先于父目录处理，所以嵌套的空目录在同一轮中全部删除。
// 删除失败只记录日志，不影响后续目录。
func (o *Organizer) removeEmptyFolders(log zerolog.Logger, root string, includeHidden bool, sink progress.Sink, result *Result) {
	walker := scanner.NewFileWalker(o.Fs)
	walker.IncludeHidden = includeHidden

	dirs, err := walker.WalkDirs(root)
	if err != nil {
		log.Error().Err(err).Str("path", root).Msg("遍历目录失败")
		result.Errors = append(result.Errors, &FileError{Op: "walk", Path: root, Err: classifyError(err)})
		return
	}

	for _, dir := range dirs {
		empty, err := afero.IsEmpty(o.Fs, dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			o.recordDirError(log, dir, err, sink, result)
			continue
		}
		if !empty {
			continue
		}

		if err := o.Fs.Remove(dir); err != nil {
			o.recordDirError(log, dir, err, sink, result)
			continue
		}

		result.RemovedDirs++
		log.Info().Str("path", dir).Msg("删除空目录")
		sink.OnMessage(fmt.Sprintf("已删除空目录: %s", dir))
	}
}

func (o *Organizer) recordDirError(log zerolog.Logger, dir string, err error, sink progress.Sink, result *Result) {
	ferr := &FileError{Op: "rmdir", Path: dir, Err: classifyError(err)}
	result.Errors = append(result.Errors, ferr)
	log.Error().Err(ferr.Err).Str("path", dir).Msg("无法删除目录")
	sink.OnMessage(fmt.Sprintf("无法删除目录 %s: %v", dir, ferr.Err))
}
