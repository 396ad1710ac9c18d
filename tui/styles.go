package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/file-organizer/pkg/settings"
)

type palette struct {
	accent    lipgloss.Color
	success   lipgloss.Color
	muted     lipgloss.Color
	text      lipgloss.Color
	highlight lipgloss.Color
	danger    lipgloss.Color
}

var palettes = map[settings.Theme]palette{
	settings.ThemeLight: {
		accent:    lipgloss.Color("161"),
		success:   lipgloss.Color("28"),
		muted:     lipgloss.Color("245"),
		text:      lipgloss.Color("235"),
		highlight: lipgloss.Color("62"),
		danger:    lipgloss.Color("160"),
	},
	settings.ThemeDark: {
		accent:    lipgloss.Color("205"),
		success:   lipgloss.Color("86"),
		muted:     lipgloss.Color("241"),
		text:      lipgloss.Color("255"),
		highlight: lipgloss.Color("147"),
		danger:    lipgloss.Color("203"),
	},
}

type styles struct {
	palette palette

	title        lipgloss.Style
	successTitle lipgloss.Style
	separator    lipgloss.Style
	label        lipgloss.Style
	focused      lipgloss.Style
	normal       lipgloss.Style
	prompt       lipgloss.Style
	text         lipgloss.Style
	statsBox     lipgloss.Style
	filePath     lipgloss.Style
	hint         lipgloss.Style
	errorText    lipgloss.Style
}

func newStyles(theme settings.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[settings.ThemeLight]
	}

	return styles{
		palette: p,

		title: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true).
			MarginBottom(1),

		successTitle: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true).
			MarginBottom(1),

		separator: lipgloss.NewStyle().
			Foreground(p.muted),

		label: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),

		focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),

		normal: lipgloss.NewStyle().
			Border(lipgloss.HiddenBorder()).
			Padding(0, 1),

		prompt: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		text: lipgloss.NewStyle().
			Foreground(p.text),

		statsBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.accent).
			Padding(1),

		filePath: lipgloss.NewStyle().
			Foreground(p.highlight).
			Italic(true),

		hint: lipgloss.NewStyle().
			Foreground(p.muted).
			Faint(true),

		errorText: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
	}
}
