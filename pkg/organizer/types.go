package organizer

import (
	"time"
)

// Options 一次整理的选项
type Options struct {
	// IncludeSubfolders 递归处理子目录中的文件
	IncludeSubfolders bool
	// DeleteEmptyFolders 整理完成后自底向上删除空目录
	DeleteEmptyFolders bool
	// IncludeHidden 处理以点开头的文件和目录
	IncludeHidden bool
}

// MoveRecord 一次成功的移动
type MoveRecord struct {
	Source      string
	Destination string
	Category    string
}

// CategoryCounts 每个分类成功移动的文件数
type CategoryCounts map[string]int

// Total 所有分类的合计
func (c CategoryCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Result 一次整理的统计
type Result struct {
	RunID       string
	TargetDir   string
	Counts      CategoryCounts
	Moves       []MoveRecord
	TotalFiles  int // 整理开始前固定下来的文件数
	Processed   int
	Skipped     int // 已在正确位置或不是普通文件
	Failed      int
	RemovedDirs int
	Errors      []error
	StartTime   time.Time
	EndTime     time.Time
}

// MoveObserver 可选接口：Sink 同时实现它时，每次成功移动都会收到 MoveRecord
type MoveObserver interface {
	OnMove(rec MoveRecord)
}

// FolderRecorder 记录最近一次整理的目录
type FolderRecorder interface {
	SetLastFolder(dir string) error
}
