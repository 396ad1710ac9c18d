package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/file-organizer/pkg/progress"
)

type eventMsg progress.Event

// runClosedMsg 事件 channel 已关闭
type runClosedMsg struct{}

// waitForEvent 读取下一个整理事件，每次只读一个，处理后再重新订阅
func waitForEvent(events <-chan progress.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return runClosedMsg{}
		}
		return eventMsg(ev)
	}
}
