package progress

import (
	"github.com/rs/zerolog"
)

// Sink 整理过程中的进度回调，在调用方的 goroutine 上同步执行
type Sink interface {
	OnProgress(percent int)
	OnMessage(msg string)
}

// Discard 丢弃所有进度
var Discard Sink = discard{}

type discard struct{}

func (discard) OnProgress(int)    {}
func (discard) OnMessage(string) {}

// LogSink 把进度写入 zerolog
type LogSink struct {
	Logger *zerolog.Logger
	// Messages 为 false 时忽略 OnMessage，引擎已用同一个 logger 记录过每次移动
	Messages bool
	last     int
}

func NewLogSink(logger *zerolog.Logger) *LogSink {
	return &LogSink{Logger: logger, Messages: true, last: -1}
}

// OnProgress 每 10% 记录一次
func (s *LogSink) OnProgress(percent int) {
	if percent == s.last {
		return
	}
	if s.last >= 0 && percent/10 == s.last/10 && percent != 100 {
		return
	}
	s.last = percent
	s.Logger.Info().Int("percent", percent).Msg("处理进度")
}

func (s *LogSink) OnMessage(msg string) {
	if !s.Messages {
		return
	}
	s.Logger.Info().Msg(msg)
}

// Multi 把进度同时分发给多个 Sink
type Multi []Sink

func (m Multi) OnProgress(percent int) {
	for _, s := range m {
		s.OnProgress(percent)
	}
}

func (m Multi) OnMessage(msg string) {
	for _, s := range m {
		s.OnMessage(msg)
	}
}
