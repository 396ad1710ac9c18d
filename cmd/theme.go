package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/pkg/settings"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "查看或切换界面主题",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		st := a.Snapshot()
		if len(args) > 0 {
			if args[0] == "toggle" {
				st, err = a.ToggleTheme()
			} else {
				var theme settings.Theme
				theme, err = settings.ParseTheme(args[0])
				if err == nil {
					st, err = a.SetTheme(theme)
				}
			}
			if err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "当前主题: %s\n", st.Theme)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
