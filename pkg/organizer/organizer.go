package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/categories"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/progress"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// Organizer 按扩展名把目录中的文件移动到分类子目录
type Organizer struct {
	Fs         afero.Fs
	Categories categories.CategoryMap
	// Recorder 可选，整理完成后记录目标目录
	Recorder FolderRecorder
}

func New(fs afero.Fs, cats categories.CategoryMap) *Organizer {
	return &Organizer{
		Fs:         fs,
		Categories: cats,
	}
}

// Organize 整理 targetDir。整个过程在调用方的 goroutine 上同步执行，
// 进度和消息通过 sink 逐步回调。
// 只有目标目录无效时返回错误，且此时不会修改任何文件；
// 单个文件或目录的失败会记录在 Result.Errors 中并继续处理。
func (o *Organizer) Organize(targetDir string, opts Options, sink progress.Sink) (*Result, error) {
	if sink == nil {
		sink = progress.Discard
	}

	root, err := o.resolveRoot(targetDir)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		TargetDir: root,
		Counts:    o.newCounts(),
		StartTime: time.Now(),
	}
	log := logger.Get().With().Str("run_id", result.RunID).Logger()

	log.Info().
		Str("target", root).
		Bool("include_subfolders", opts.IncludeSubfolders).
		Bool("delete_empty", opts.DeleteEmptyFolders).
		Bool("include_hidden", opts.IncludeHidden).
		Msg("开始整理")

	// 文件列表在移动之前固定，新建的分类目录不会被再次遍历
	files, err := o.enumerate(root, opts)
	if err != nil {
		return nil, err
	}
	result.TotalFiles = len(files)
	log.Info().Int("count", result.TotalFiles).Msg("找到待处理文件")

	for _, path := range files {
		o.processFile(log, root, path, sink, result)

		result.Processed++
		sink.OnProgress(result.Processed * 100 / result.TotalFiles)
	}
	if result.TotalFiles == 0 {
		sink.OnProgress(100)
	}

	if opts.DeleteEmptyFolders {
		o.removeEmptyFolders(log, root, opts.IncludeHidden, sink, result)
	}

	if o.Recorder != nil {
		if err := o.Recorder.SetLastFolder(root); err != nil {
			log.Warn().Err(err).Msg("保存最近目录失败")
		}
	}

	result.EndTime = time.Now()
	log.Info().
		Int("total_files", result.TotalFiles).
		Int("moved", len(result.Moves)).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Int("removed_dirs", result.RemovedDirs).
		Dur("duration", result.EndTime.Sub(result.StartTime)).
		Msg("整理完成")
	sink.OnMessage("✅ 整理完成")

	return result, nil
}

// Plan 只计算每个文件将被移动到哪里，不修改文件系统。
// 已经位于所属分类目录中的文件不会出现在结果里；目标路径不含冲突后缀。
func (o *Organizer) Plan(targetDir string, opts Options) ([]MoveRecord, error) {
	root, err := o.resolveRoot(targetDir)
	if err != nil {
		return nil, err
	}

	files, err := o.enumerate(root, opts)
	if err != nil {
		return nil, err
	}

	plan := make([]MoveRecord, 0, len(files))
	for _, path := range files {
		name := filepath.Base(path)
		category := o.Classify(name)
		dest := filepath.Join(root, categories.FolderName(category), name)
		if dest == path {
			continue
		}
		plan = append(plan, MoveRecord{Source: path, Destination: dest, Category: category})
	}
	return plan, nil
}

// Classify 返回文件名对应的分类
func (o *Organizer) Classify(name string) string {
	_, ext := SplitExt(name)
	return o.Categories.Classify(ext)
}

func (o *Organizer) resolveRoot(targetDir string) (string, error) {
	root, err := filepath.Abs(targetDir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, targetDir)
	}
	info, err := o.Fs.Stat(root)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, targetDir)
	}

	// 目标本身是指向目录的符号链接时，遍历不会跟随根节点，先解析成真实路径
	if linfo, err := o.lstat(root); err == nil && linfo.Mode()&os.ModeSymlink != 0 {
		if _, ok := o.Fs.(*afero.OsFs); ok {
			resolved, err := filepath.EvalSymlinks(root)
			if err != nil {
				return "", fmt.Errorf("%w: %s: %v", ErrDirectoryNotFound, targetDir, err)
			}
			logger.Get().Debug().Str("target", root).Str("resolved", resolved).Msg("目标目录是符号链接")
			root = resolved
		}
	}
	return root, nil
}

func (o *Organizer) enumerate(root string, opts Options) ([]string, error) {
	walker := scanner.NewFileWalker(o.Fs)
	walker.Recursive = opts.IncludeSubfolders
	walker.IncludeHidden = opts.IncludeHidden

	files, err := walker.Enumerate(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryNotFound, root, err)
	}
	return files, nil
}

func (o *Organizer) processFile(log zerolog.Logger, root, path string, sink progress.Sink, result *Result) {
	info, err := o.lstat(path)
	if err != nil {
		o.recordFileError(log, "stat", path, classifyError(err), sink, result)
		return
	}
	if !info.Mode().IsRegular() {
		result.Skipped++
		log.Debug().Str("file", path).Msg("不是普通文件，跳过")
		return
	}

	name := filepath.Base(path)
	_, ext := SplitExt(name)
	category := o.Categories.Classify(ext)
	folder := filepath.Join(root, categories.FolderName(category))

	if err := o.Fs.MkdirAll(folder, 0755); err != nil {
		o.recordFileError(log, "mkdir", folder, classifyError(err), sink, result)
		return
	}

	dest, err := o.resolveDestination(path, filepath.Join(folder, name))
	if err != nil {
		o.recordFileError(log, "resolve", path, classifyError(err), sink, result)
		return
	}
	if dest == path {
		result.Skipped++
		log.Debug().Str("file", path).Str("category", category).Msg("文件已在分类目录中")
		return
	}

	if err := o.moveFile(path, dest); err != nil {
		o.recordFileError(log, "move", path, err, sink, result)
		return
	}

	rec := MoveRecord{Source: path, Destination: dest, Category: category}
	result.Counts[category]++
	result.Moves = append(result.Moves, rec)

	log.Info().
		Str("source", path).
		Str("destination", dest).
		Str("category", category).
		Str("mime", categories.MIME(ext)).
		Msg("移动文件")
	sink.OnMessage(fmt.Sprintf("已移动: %s --> %s/", name, categories.FolderName(category)))
	if obs, ok := sink.(MoveObserver); ok {
		obs.OnMove(rec)
	}
}

func (o *Organizer) recordFileError(log zerolog.Logger, op, path string, err error, sink progress.Sink, result *Result) {
	ferr := &FileError{Op: op, Path: path, Err: err}
	result.Failed++
	result.Errors = append(result.Errors, ferr)
	log.Error().Err(err).Str("op", op).Str("file", path).Msg("处理文件失败")
	sink.OnMessage(fmt.Sprintf("处理失败: %s: %v", path, err))
}

func (o *Organizer) newCounts() CategoryCounts {
	counts := make(CategoryCounts, o.Categories.Len()+1)
	for _, name := range o.Categories.Names() {
		counts[name] = 0
	}
	counts[categories.Others] = 0
	return counts
}
