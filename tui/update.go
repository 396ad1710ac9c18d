package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/organizer"
	orgprogress "github.com/moyu-x/file-organizer/pkg/progress"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.toggleTheme()
			return m, nil
		}

		switch m.state {
		case StateConfig:
			return m.updateConfigPhase(msg)
		case StateComplete:
			return m.updateCompletePhase(msg)
		case StateCategories:
			return m.updateCategoriesPhase(msg)
		}

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case eventMsg:
		return m.handleEvent(orgprogress.Event(msg))

	case runClosedMsg:
		if m.state == StateProcessing {
			m.state = StateConfig
			m.err = errors.New("整理任务意外结束")
		}
		return m, nil

	case progress.FrameMsg:
		model, cmd := m.progressBar.Update(msg)
		m.progressBar = model.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m *model) updateConfigPhase(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "down":
		m.focus = (m.focus + 1) % (FocusStart + 1)
		return m, m.updateFocusState()
	case "shift+tab", "up":
		m.focus = (m.focus + FocusStart) % (FocusStart + 1)
		return m, m.updateFocusState()
	case "ctrl+e":
		m.state = StateCategories
		m.catFocus = FocusCategoryList
		m.notice = ""
		m.err = nil
		return m, m.updateCategoryFocusState()
	case "enter":
		return m.handleEnterKey()
	case " ":
		if m.toggleOption() {
			return m, nil
		}
	}

	if m.focus == FocusFolder {
		var cmd tea.Cmd
		m.folderInput, cmd = m.folderInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleEnterKey() (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusFolder, FocusStart:
		return m, m.startProcessing()
	default:
		m.toggleOption()
		return m, nil
	}
}

// toggleOption 切换当前焦点所在的选项，焦点不在选项上时返回 false
func (m *model) toggleOption() bool {
	switch m.focus {
	case FocusSubfolders:
		m.opts.IncludeSubfolders = !m.opts.IncludeSubfolders
	case FocusDeleteEmpty:
		m.opts.DeleteEmptyFolders = !m.opts.DeleteEmptyFolders
	case FocusHidden:
		m.opts.IncludeHidden = !m.opts.IncludeHidden
	default:
		return false
	}
	return true
}

func (m *model) updateFocusState() tea.Cmd {
	if m.focus == FocusFolder {
		return m.folderInput.Focus()
	}
	m.folderInput.Blur()
	return nil
}

func (m *model) startProcessing() tea.Cmd {
	dir := expandHome(strings.TrimSpace(m.folderInput.Value()))
	if dir == "" {
		m.err = errors.New("请输入要整理的目录")
		return nil
	}

	logger.Get().Info().
		Str("dir", dir).
		Bool("include_subfolders", m.opts.IncludeSubfolders).
		Bool("delete_empty", m.opts.DeleteEmptyFolders).
		Msg("开始整理")

	m.err = nil
	m.state = StateProcessing
	m.percent = 0
	m.feed = nil
	m.result = nil
	m.names = m.backend.Snapshot().FileTypes.Names()
	m.events = m.backend.Start(dir, m.opts)

	return tea.Batch(
		waitForEvent(m.events),
		m.progressBar.SetPercent(0),
	)
}

func (m *model) handleEvent(ev orgprogress.Event) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case orgprogress.EventProgress:
		m.percent = ev.Percent
		return m, tea.Batch(
			waitForEvent(m.events),
			m.progressBar.SetPercent(float64(ev.Percent)/100),
		)

	case orgprogress.EventMessage:
		m.feed = append(m.feed, ev.Message)
		if len(m.feed) > maxFeedLines {
			m.feed = m.feed[len(m.feed)-maxFeedLines:]
		}
		return m, waitForEvent(m.events)

	case orgprogress.EventDone:
		m.events = nil
		if ev.Err != nil {
			logger.Get().Error().Err(ev.Err).Msg("整理失败")
			m.state = StateConfig
			m.err = ev.Err
			return m, m.updateFocusState()
		}
		m.result, _ = ev.Result.(*organizer.Result)
		m.state = StateComplete
		m.percent = 100
		return m, nil
	}

	return m, waitForEvent(m.events)
}

func (m *model) updateCompletePhase(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state = StateConfig
		m.focus = FocusFolder
		if last := m.backend.Snapshot().LastFolder; last != "" {
			m.folderInput.SetValue(last)
		}
		return m, m.updateFocusState()
	case "esc", "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) updateCategoriesPhase(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateConfig
		m.notice = ""
		m.err = nil
		return m, m.updateFocusState()
	case "tab":
		m.catFocus = (m.catFocus + 1) % (FocusExtension + 1)
		return m, m.updateCategoryFocusState()
	case "shift+tab":
		m.catFocus = (m.catFocus + FocusExtension) % (FocusExtension + 1)
		return m, m.updateCategoryFocusState()
	case "enter":
		m.submitCategoryInput()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.catFocus {
	case FocusCategoryList:
		m.catList, cmd = m.catList.Update(msg)
	case FocusCategoryName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case FocusExtension:
		m.extInput, cmd = m.extInput.Update(msg)
	}
	return m, cmd
}

func (m *model) updateCategoryFocusState() tea.Cmd {
	m.nameInput.Blur()
	m.extInput.Blur()
	m.folderInput.Blur()

	switch m.catFocus {
	case FocusCategoryName:
		return m.nameInput.Focus()
	case FocusExtension:
		return m.extInput.Focus()
	}
	return nil
}

func (m *model) submitCategoryInput() {
	m.notice = ""
	m.err = nil

	switch m.catFocus {
	case FocusCategoryName:
		name := strings.TrimSpace(m.nameInput.Value())
		st, err := m.backend.AddCategory(name)
		if err != nil {
			m.err = err
			return
		}
		m.refreshCategories(st.FileTypes)
		m.catList.Select(len(m.catList.Items()) - 1)
		m.nameInput.Reset()
		m.notice = fmt.Sprintf("已添加分类 %s", name)

	case FocusExtension:
		item, ok := m.catList.SelectedItem().(categoryItem)
		if !ok {
			m.err = errors.New("请先在列表中选择一个分类")
			return
		}
		ext := strings.TrimSpace(m.extInput.Value())
		st, err := m.backend.AddExtension(item.name, ext)
		if err != nil {
			m.err = err
			return
		}
		index := m.catList.Index()
		m.refreshCategories(st.FileTypes)
		m.catList.Select(index)
		m.extInput.Reset()
		m.notice = fmt.Sprintf("已将 %s 添加到分类 %s", ext, item.name)
	}
}

func (m *model) toggleTheme() {
	st, err := m.backend.ToggleTheme()
	if err != nil {
		m.err = err
		return
	}
	m.applyTheme(st.Theme)
}

func (m *model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width

	m.folderInput.Width = msg.Width - 10
	m.nameInput.Width = msg.Width - 10
	m.extInput.Width = msg.Width - 10
	m.progressBar.Width = msg.Width - 10
	m.catList.SetSize(msg.Width-4, max(msg.Height/2, 6))
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
