package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "启动终端界面",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.Run(a)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
