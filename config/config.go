package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppDirName 用户目录下的应用数据目录
	AppDirName = ".file-organizer"

	DefaultSettingsFile = "settings.json"
	DefaultLogFile      = "organizer.log"
	DefaultWorkers      = 1
)

type Config struct {
	Settings struct {
		Path string
	}
	Logging struct {
		Level      string
		File       string
		MaxSizeMB  int `mapstructure:"max_size_mb"`
		MaxBackups int `mapstructure:"max_backups"`
	}
	Scanner struct {
		IncludeHidden bool `mapstructure:"include_hidden"`
	}
	Runner struct {
		Workers int
	}
}

var cfg Config

// AppDir 返回应用数据目录，无法获取用户目录时使用当前目录
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return AppDirName
	}
	return filepath.Join(home, AppDirName)
}

// Load 读取配置文件。cfgFile 为空时依次在 $HOME/.file-organizer、当前目录、
// /etc/file-organizer 中查找 config.yaml，找不到时使用默认值
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(AppDir())
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/file-organizer")
	}

	appDir := AppDir()
	v.SetDefault("settings.path", filepath.Join(appDir, DefaultSettingsFile))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", filepath.Join(appDir, DefaultLogFile))
	v.SetDefault("logging.max_size_mb", 1)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("scanner.include_hidden", false)
	v.SetDefault("runner.workers", DefaultWorkers)

	v.SetEnvPrefix("FILE_ORGANIZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var loaded Config
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, err
	}
	if loaded.Runner.Workers < 1 {
		loaded.Runner.Workers = DefaultWorkers
	}

	cfg = loaded
	return &cfg, nil
}

func Get() *Config {
	return &cfg
}
