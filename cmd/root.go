package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "file-organizer",
	Short: "按扩展名自动整理文件夹",
	Long: `File Organizer 扫描指定目录，按文件扩展名把文件移动到对应的分类子目录中。

主要功能:
- 按扩展名分类（Documents、Images、Videos、Music，其余归入 Others）
- 同名文件自动重命名为 name_1.ext、name_2.ext ...
- 可选递归处理子目录、整理后删除空目录
- 自定义分类和扩展名，设置保存在 ~/.file-organizer/settings.json
- 不带子命令运行时启动终端界面`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认 $HOME/.file-organizer/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "显示详细日志")
}

// newApp 按全局参数创建应用上下文。console 为 true 时日志同时输出到终端
func newApp(console bool) (*app.App, error) {
	return app.New(app.Options{
		ConfigFile: cfgFile,
		Verbose:    verbose,
		Console:    console,
	})
}
