package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_WritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "organizer.log")

	closer, err := Init(Options{Level: "info", File: logFile, MaxSizeMB: 1, MaxBackups: 3})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Get().Info().Str("source", "a.txt").Msg("移动文件")
	Get().Debug().Msg("不应写入")

	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "移动文件") {
		t.Errorf("Expected log line in file, got %q", content)
	}
	if strings.Contains(content, "不应写入") {
		t.Error("Debug 日志不应在 info 级别写入")
	}
	if !strings.Contains(content, `"time"`) {
		t.Error("Expected timestamp field in log line")
	}
}

func TestInit_NoOutputs(t *testing.T) {
	closer, err := Init(Options{})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer closer.Close()

	Get().Info().Msg("discarded")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGet_Uninitialized(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	if Get() == nil {
		t.Fatal("Get() returned nil")
	}
}
