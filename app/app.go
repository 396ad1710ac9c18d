package app

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/config"
	"github.com/moyu-x/file-organizer/internal/runner"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/organizer"
	"github.com/moyu-x/file-organizer/pkg/progress"
	"github.com/moyu-x/file-organizer/pkg/settings"
)

type Options struct {
	ConfigFile string
	Verbose    bool
	// Console 日志同时输出到终端，TUI 模式下关闭
	Console bool
}

// App 持有一次进程运行期间共享的资源
type App struct {
	Fs       afero.Fs
	Config   *config.Config
	Settings *settings.Store

	runner    *runner.Runner
	logCloser io.Closer
}

// New 加载配置、初始化日志并打开设置文件
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	level := cfg.Logging.Level
	if opts.Verbose {
		level = "debug"
	}
	closer, err := logger.Init(logger.Options{
		Level:      level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Console:    opts.Console,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	a, err := newApp(afero.NewOsFs(), cfg)
	if err != nil {
		closer.Close()
		return nil, err
	}
	a.logCloser = closer

	logger.Get().Debug().
		Str("settings", cfg.Settings.Path).
		Str("log_file", cfg.Logging.File).
		Msg("加载配置完成")
	return a, nil
}

func newApp(fs afero.Fs, cfg *config.Config) (*App, error) {
	r, err := runner.New(cfg.Runner.Workers)
	if err != nil {
		return nil, err
	}

	return &App{
		Fs:       fs,
		Config:   cfg,
		Settings: settings.Open(fs, cfg.Settings.Path),
		runner:   r,
	}, nil
}

// DefaultOptions 返回由配置决定的默认整理选项
func (a *App) DefaultOptions() organizer.Options {
	return organizer.Options{
		IncludeHidden: a.Config.Scanner.IncludeHidden,
	}
}

// Organizer 使用当前分类表创建整理器，整理完成后记录最近目录
func (a *App) Organizer() *organizer.Organizer {
	org := organizer.New(a.Fs, a.Settings.Snapshot().FileTypes)
	org.Recorder = a.Settings
	return org
}

// Organize 在当前 goroutine 上同步整理 dir
func (a *App) Organize(dir string, opts organizer.Options, sink progress.Sink) (*organizer.Result, error) {
	return a.Organizer().Organize(dir, opts, sink)
}

// Start 在后台整理 dir，通过返回的 channel 接收进度事件
func (a *App) Start(dir string, opts organizer.Options) <-chan progress.Event {
	return a.runner.Organize(a.Organizer(), dir, opts)
}

func (a *App) Plan(dir string, opts organizer.Options) ([]organizer.MoveRecord, error) {
	return a.Organizer().Plan(dir, opts)
}

func (a *App) Snapshot() settings.Settings {
	return a.Settings.Snapshot()
}

func (a *App) AddCategory(name string) (settings.Settings, error) {
	st, err := a.Settings.AddCategory(name)
	if err != nil {
		return st, err
	}
	logger.Get().Info().Str("category", name).Msg("已添加分类")
	return st, nil
}

func (a *App) AddExtension(category, ext string) (settings.Settings, error) {
	st, err := a.Settings.AddExtension(category, ext)
	if err != nil {
		return st, err
	}
	logger.Get().Info().Str("category", category).Str("extension", ext).Msg("已添加扩展名")
	return st, nil
}

func (a *App) SetTheme(theme settings.Theme) (settings.Settings, error) {
	return a.Settings.SetTheme(theme)
}

func (a *App) ToggleTheme() (settings.Settings, error) {
	return a.Settings.ToggleTheme()
}

// Close 等待后台任务结束并关闭日志文件
func (a *App) Close() error {
	a.runner.Close()
	if a.logCloser != nil {
		return a.logCloser.Close()
	}
	return nil
}
