package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// BarSink 在终端上显示进度条，消息显示为进度条描述
type BarSink struct {
	bar *progressbar.ProgressBar
}

func NewBarSink(w io.Writer) *BarSink {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("整理中"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
	return &BarSink{bar: bar}
}

func (s *BarSink) OnProgress(percent int) {
	_ = s.bar.Set(percent)
}

func (s *BarSink) OnMessage(msg string) {
	s.bar.Describe(msg)
}

// Finish 结束并清除进度条
func (s *BarSink) Finish() error {
	return s.bar.Finish()
}
