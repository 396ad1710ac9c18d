package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/pkg/categories"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "查看和管理文件分类",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出所有分类及其扩展名",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprintln(cmd.OutOrStdout(), renderCategories(a.Snapshot().FileTypes))
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "添加一个新分类（追加到末尾）",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.AddCategory(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已添加分类 %s\n", strings.TrimSpace(args[0]))
		return nil
	},
}

var categoryAddExtCmd = &cobra.Command{
	Use:   "add-ext <category> <ext>",
	Short: "给分类添加扩展名",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.AddExtension(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已将 %s 添加到分类 %s\n",
			categories.NormalizeExtension(args[1]), strings.TrimSpace(args[0]))
		return nil
	},
}

func renderCategories(m categories.CategoryMap) string {
	cats := m.Categories()
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		mimes := make([]string, 0, len(c.Extensions))
		for _, ext := range c.Extensions {
			if mime := categories.MIME(ext); mime != "" {
				mimes = append(mimes, mime)
			}
		}
		rows = append(rows, []string{
			c.Name,
			categories.FolderName(c.Name),
			strings.Join(c.Extensions, " "),
			strings.Join(mimes, "\n"),
		})
	}

	return renderTable(
		[]string{"分类", "目录", "扩展名", "MIME"},
		rows,
		nil,
		[]string{fmt.Sprintf("其余文件归入 %s", categories.Others)},
	)
}

func init() {
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryAddExtCmd)
	rootCmd.AddCommand(categoryCmd)
}
