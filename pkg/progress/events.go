package progress

// EventKind 进度事件类型
type EventKind int

const (
	EventProgress EventKind = iota
	EventMessage
	EventDone
)

// Event 通过 channel 传递给界面的进度事件。EventDone 的 Result 由调用方决定具体类型
type Event struct {
	Kind    EventKind
	Percent int
	Message string
	Result  any
	Err     error
}

// ChanSink 把进度写入 channel，channel 满时阻塞，保证消息不丢失。
// done 关闭后订阅方已离开，之后的事件直接丢弃，整理任务继续执行到结束
type ChanSink struct {
	ch   chan<- Event
	done <-chan struct{}
}

// NewChanSink done 可以为 nil，表示订阅方始终读取
func NewChanSink(ch chan<- Event, done <-chan struct{}) *ChanSink {
	return &ChanSink{ch: ch, done: done}
}

func (s *ChanSink) OnProgress(percent int) {
	s.Send(Event{Kind: EventProgress, Percent: percent})
}

func (s *ChanSink) OnMessage(msg string) {
	s.Send(Event{Kind: EventMessage, Message: msg})
}

// Send 发送事件，订阅方离开后返回 false
func (s *ChanSink) Send(ev Event) bool {
	select {
	case s.ch <- ev:
		return true
	case <-s.done:
		return false
	}
}
