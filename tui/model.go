package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/file-organizer/pkg/categories"
	"github.com/moyu-x/file-organizer/pkg/organizer"
	orgprogress "github.com/moyu-x/file-organizer/pkg/progress"
	"github.com/moyu-x/file-organizer/pkg/settings"
)

type State int

const (
	StateConfig State = iota
	StateProcessing
	StateComplete
	StateCategories
)

type Focus int

const (
	FocusFolder Focus = iota
	FocusSubfolders
	FocusDeleteEmpty
	FocusHidden
	FocusStart
)

type CategoryFocus int

const (
	FocusCategoryList CategoryFocus = iota
	FocusCategoryName
	FocusExtension
)

// maxFeedLines 处理中界面保留的最近消息条数
const maxFeedLines = 8

type model struct {
	backend Backend

	state    State
	focus    Focus
	catFocus CategoryFocus
	opts     organizer.Options
	theme    settings.Theme
	styles   styles
	width    int

	folderInput textinput.Model
	progressBar progress.Model

	events  <-chan orgprogress.Event
	percent int
	feed    []string
	// names 开始整理时的分类顺序，用于汇总显示
	names  []string
	result *organizer.Result

	catList   list.Model
	nameInput textinput.Model
	extInput  textinput.Model
	notice    string

	err error
}

func newModel(backend Backend) *model {
	st := backend.Snapshot()

	folderInput := textinput.New()
	folderInput.Placeholder = "请输入要整理的目录（例如：~/Downloads）"
	folderInput.Prompt = "> "
	folderInput.SetValue(st.LastFolder)
	folderInput.Focus()

	nameInput := textinput.New()
	nameInput.Placeholder = "新分类名称（按回车添加）"
	nameInput.Prompt = "> "

	extInput := textinput.New()
	extInput.Placeholder = "扩展名，例如 .zip（添加到选中的分类）"
	extInput.Prompt = "> "

	catList := list.New(nil, list.NewDefaultDelegate(), 0, 10)
	catList.Title = "分类列表"
	catList.SetShowStatusBar(false)
	catList.SetFilteringEnabled(false)
	catList.SetShowHelp(false)
	catList.KeyMap.Quit.SetEnabled(false)

	m := &model{
		backend:     backend,
		state:       StateConfig,
		focus:       FocusFolder,
		opts:        backend.DefaultOptions(),
		folderInput: folderInput,
		progressBar: progress.New(progress.WithSolidFill("205")),
		catList:     catList,
		nameInput:   nameInput,
		extInput:    extInput,
	}
	m.applyTheme(st.Theme)
	m.refreshCategories(st.FileTypes)
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

// applyTheme 切换配色并更新各组件的样式
func (m *model) applyTheme(theme settings.Theme) {
	m.theme = theme
	m.styles = newStyles(theme)

	for _, input := range []*textinput.Model{&m.folderInput, &m.nameInput, &m.extInput} {
		input.PromptStyle = m.styles.prompt
		input.TextStyle = m.styles.text
	}
	m.progressBar.FullColor = string(m.styles.palette.accent)
	m.progressBar.PercentageStyle = m.styles.prompt
	m.catList.Styles.Title = m.styles.title
}

func (m *model) refreshCategories(types categories.CategoryMap) {
	cats := types.Categories()
	items := make([]list.Item, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryItem{name: c.Name, extensions: c.Extensions})
	}
	m.catList.SetItems(items)
}

type categoryItem struct {
	name       string
	extensions []string
}

func (c categoryItem) Title() string { return c.name }

func (c categoryItem) Description() string {
	if len(c.extensions) == 0 {
		return "（暂无扩展名）"
	}
	return strings.Join(c.extensions, " ")
}

func (c categoryItem) FilterValue() string { return c.name }
