package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/file-organizer/pkg/categories"
)

func (m *model) View() string {
	switch m.state {
	case StateConfig:
		return m.configView()
	case StateProcessing:
		return m.processingView()
	case StateComplete:
		return m.completeView()
	case StateCategories:
		return m.categoriesView()
	default:
		return "未知状态"
	}
}

func (m *model) configView() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.title.Render("📂 文件整理工具") + "\n")
	b.WriteString(s.separator.Render(strings.Repeat("─", 60)) + "\n\n")

	b.WriteString(s.label.Render("1. 输入要整理的目录：") + "\n")
	b.WriteString(m.box(m.focus == FocusFolder, m.folderInput.View()) + "\n")

	b.WriteString(s.label.Render("2. 选项：") + "\n")
	b.WriteString(m.checkbox(FocusSubfolders, m.opts.IncludeSubfolders, "包含子目录中的文件") + "\n")
	b.WriteString(m.checkbox(FocusDeleteEmpty, m.opts.DeleteEmptyFolders, "整理后删除空目录") + "\n")
	b.WriteString(m.checkbox(FocusHidden, m.opts.IncludeHidden, "处理隐藏文件") + "\n\n")

	b.WriteString(m.box(m.focus == FocusStart, "🚀 开始整理") + "\n")

	if m.err != nil {
		b.WriteString(s.errorText.Render("❌ "+m.err.Error()) + "\n")
	}

	b.WriteString(s.separator.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(s.hint.Render("操作提示：") + "\n")
	b.WriteString("  • Tab / ↑↓ 切换焦点，空格或 Enter 切换选项\n")
	b.WriteString("  • Enter 开始整理\n")
	b.WriteString("  • Ctrl+E 管理分类，Ctrl+T 切换主题\n")
	b.WriteString("  • Esc / Ctrl+C 退出程序\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}

func (m *model) processingView() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.title.Render("🔄 正在整理文件...") + "\n\n")

	b.WriteString(s.label.Render("处理进度：") + "\n")
	b.WriteString(m.progressBar.View() + "\n\n")

	b.WriteString(s.label.Render("最近操作：") + "\n")
	for _, line := range m.feed {
		b.WriteString(s.filePath.Render(line) + "\n")
	}

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) completeView() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.successTitle.Render("✅ 整理完成！") + "\n\n")
	b.WriteString(s.statsBox.Render(m.renderFinalStats()) + "\n\n")

	if m.result != nil && len(m.result.Errors) > 0 {
		b.WriteString(s.errorText.Render(fmt.Sprintf("⚠️  %d 个错误，详情见日志：", len(m.result.Errors))) + "\n")
		for i, err := range m.result.Errors {
			if i == 5 {
				b.WriteString(s.hint.Render("  ...") + "\n")
				break
			}
			b.WriteString("  " + err.Error() + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(s.separator.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(s.hint.Render("按 Enter 继续整理其他目录，Esc 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) categoriesView() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.title.Render("🗂️  分类管理") + "\n")

	b.WriteString(m.box(m.catFocus == FocusCategoryList, m.catList.View()) + "\n")

	b.WriteString(s.label.Render("添加分类：") + "\n")
	b.WriteString(m.box(m.catFocus == FocusCategoryName, m.nameInput.View()) + "\n")

	b.WriteString(s.label.Render("给选中的分类添加扩展名：") + "\n")
	b.WriteString(m.box(m.catFocus == FocusExtension, m.extInput.View()) + "\n")

	switch {
	case m.err != nil:
		b.WriteString(s.errorText.Render("❌ "+m.err.Error()) + "\n")
	case m.notice != "":
		b.WriteString(s.successTitle.Render("✔ "+m.notice) + "\n")
	}

	b.WriteString(s.separator.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(s.hint.Render("Tab 切换焦点 • Enter 添加 • Esc 返回") + "\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}

func (m *model) renderFinalStats() string {
	if m.result == nil {
		return "没有统计信息"
	}
	r := m.result

	var b strings.Builder
	b.WriteString("📊 整理结果：\n\n")
	for _, name := range append(m.names, categories.Others) {
		n, ok := r.Counts[name]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("  • %-12s %d 个文件\n", name+"：", n))
		if name == categories.Others {
			break
		}
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  • 目录：       %s\n", r.TargetDir))
	b.WriteString(fmt.Sprintf("  • 总文件数：   %d 个\n", r.TotalFiles))
	b.WriteString(fmt.Sprintf("  • 已移动：     %d 个\n", r.Counts.Total()))
	b.WriteString(fmt.Sprintf("  • 跳过：       %d 个\n", r.Skipped))
	b.WriteString(fmt.Sprintf("  • 失败：       %d 个\n", r.Failed))
	b.WriteString(fmt.Sprintf("  • 删除空目录： %d 个\n", r.RemovedDirs))
	b.WriteString(fmt.Sprintf("  • 总耗时：     %s\n", r.EndTime.Sub(r.StartTime).Round(time.Millisecond)))

	return b.String()
}

func (m *model) box(focused bool, content string) string {
	if focused {
		return m.styles.focused.Render(content)
	}
	return m.styles.normal.Render(content)
}

func (m *model) checkbox(focus Focus, checked bool, label string) string {
	mark := "[ ]"
	if checked {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %s", mark, label)
	if m.focus == focus {
		return m.styles.prompt.Render("> " + line)
	}
	return "  " + m.styles.text.Render(line)
}
