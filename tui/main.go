package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/organizer"
	"github.com/moyu-x/file-organizer/pkg/progress"
	"github.com/moyu-x/file-organizer/pkg/settings"
)

// Backend 界面需要的应用能力，由 app.App 实现
type Backend interface {
	Snapshot() settings.Settings
	DefaultOptions() organizer.Options
	Start(dir string, opts organizer.Options) <-chan progress.Event
	AddCategory(name string) (settings.Settings, error)
	AddExtension(category, ext string) (settings.Settings, error)
	ToggleTheme() (settings.Settings, error)
}

type teaModel struct {
	m *model
}

func (tm teaModel) Init() tea.Cmd {
	return tm.m.Init()
}

func (tm teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := tm.m.Update(msg)
	return tm, cmd
}

func (tm teaModel) View() string {
	return tm.m.View()
}

func Run(backend Backend) error {
	logger.Get().Info().Msg("启动 TUI 界面")

	m := newModel(backend)
	p := tea.NewProgram(teaModel{m: m}, tea.WithAltScreen())

	_, err := p.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
	} else {
		logger.Get().Info().Msg("TUI 正常退出")
	}

	return err
}
