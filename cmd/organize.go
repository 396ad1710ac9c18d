package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/pkg/categories"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/organizer"
	"github.com/moyu-x/file-organizer/pkg/progress"
)

var (
	includeSubfolders bool
	deleteEmpty       bool
	includeHidden     bool
	dryRun            bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize [dir]",
	Short: "按扩展名整理目录中的文件",
	Long: `把目录中的文件按扩展名移动到分类子目录:
1. 列出目录中的文件（-r 时包含子目录）
2. 按扩展名确定分类，无法识别的归入 Others
3. 移动到 <dir>/<分类>/，同名文件自动编号
4. -d 时删除整理后留下的空目录

未指定目录时使用最近一次整理的目录。`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrganize,
}

func runOrganize(cmd *cobra.Command, args []string) error {
	interactive := isTerminal(os.Stderr)

	a, err := newApp(!interactive)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := a.Snapshot().LastFolder
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("请指定要整理的目录")
	}

	opts := a.DefaultOptions()
	opts.IncludeSubfolders = includeSubfolders
	opts.DeleteEmptyFolders = deleteEmpty
	if cmd.Flags().Changed("include-hidden") {
		opts.IncludeHidden = includeHidden
	}

	out := cmd.OutOrStdout()

	if dryRun {
		plan, err := a.Plan(dir, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderPlan(dir, plan))
		return nil
	}

	sink, bar := newSink(interactive)
	result, err := a.Organize(dir, opts, sink)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, renderSummary(a.Snapshot().FileTypes.Names(), result))
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %v\n", e)
	}
	return nil
}

// newSink 终端上显示进度条；否则只把进度写入日志，
// 每个文件的移动记录由引擎自己的日志输出
func newSink(interactive bool) (progress.Sink, *progress.BarSink) {
	if interactive {
		bar := progress.NewBarSink(os.Stderr)
		return bar, bar
	}
	sink := progress.NewLogSink(logger.Get())
	sink.Messages = false
	return sink, nil
}

func renderSummary(names []string, result *organizer.Result) string {
	rows := make([][]string, 0, len(names)+1)
	for _, name := range withOthers(names) {
		rows = append(rows, []string{
			name,
			categories.FolderName(name),
			strconv.Itoa(result.Counts[name]),
		})
	}

	footer := []string{"合计", "", strconv.Itoa(result.Counts.Total())}
	summary := renderTable(
		[]string{"分类", "目录", "文件数"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
		footer,
	)

	return fmt.Sprintf("%s\n共 %d 个文件，跳过 %d，失败 %d，删除空目录 %d，用时 %s",
		summary,
		result.TotalFiles,
		result.Skipped,
		result.Failed,
		result.RemovedDirs,
		result.EndTime.Sub(result.StartTime).Round(time.Millisecond),
	)
}

// withOthers 在分类列表末尾补上 Others（已显式配置时不重复）
func withOthers(names []string) []string {
	for _, name := range names {
		if name == categories.Others {
			return names
		}
	}
	return append(names, categories.Others)
}

func renderPlan(dir string, plan []organizer.MoveRecord) string {
	if len(plan) == 0 {
		return "没有需要移动的文件"
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		root = dir
	}

	rows := make([][]string, 0, len(plan))
	for _, rec := range plan {
		rows = append(rows, []string{relPath(root, rec.Source), rec.Category, relPath(root, rec.Destination)})
	}
	return renderTable(
		[]string{"文件", "分类", "目标"},
		rows,
		nil,
		[]string{fmt.Sprintf("共 %d 个", len(plan))},
	)
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func init() {
	organizeCmd.Flags().BoolVarP(&includeSubfolders, "subfolders", "r", false, "同时整理子目录中的文件")
	organizeCmd.Flags().BoolVarP(&deleteEmpty, "delete-empty", "d", false, "整理后删除空目录")
	organizeCmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "处理以点开头的隐藏文件和目录")
	organizeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "只显示将要移动的文件，不做任何修改")

	rootCmd.AddCommand(organizeCmd)
}
