package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/categories"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

// Theme 界面主题
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("未知的主题")

// ParseTheme 解析主题名称
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Toggle 返回另一个主题
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Settings 持久化的用户设置。值类型，Store 每次更新都会生成新的快照
type Settings struct {
	FileTypes  categories.CategoryMap `json:"file_types"`
	LastFolder string                 `json:"last_folder"`
	Theme      Theme                  `json:"theme"`
}

// Default 返回默认设置
func Default() Settings {
	return Settings{
		FileTypes: categories.Default(),
		Theme:     ThemeLight,
	}
}

// Store 设置文件的唯一读写者。读取返回不可变快照，更新先落盘再发布
type Store struct {
	fs   afero.Fs
	path string

	mu      sync.RWMutex
	current Settings
}

// Open 加载设置文件。文件不存在或内容损坏时使用默认设置，不会返回错误
func Open(fs afero.Fs, path string) *Store {
	s := &Store{
		fs:      fs,
		path:    path,
		current: load(fs, path),
	}
	return s
}

func load(fs afero.Fs, path string) Settings {
	log := logger.Get()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("读取设置文件失败，使用默认设置")
		}
		return Default()
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("设置文件格式错误，使用默认设置")
		return Default()
	}

	if loaded.FileTypes.Len() == 0 {
		loaded.FileTypes = categories.Default()
	}
	if _, err := ParseTheme(string(loaded.Theme)); err != nil {
		loaded.Theme = ThemeLight
	}

	log.Debug().Str("path", path).Int("categories", loaded.FileTypes.Len()).Msg("已加载设置")
	return loaded
}

// Path 设置文件路径
func (s *Store) Path() string {
	return s.path
}

// Snapshot 返回当前设置
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update 基于当前快照计算新设置并保存。fn 返回错误或保存失败时当前设置保持不变
func (s *Store) Update(fn func(Settings) (Settings, error)) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current)
	if err != nil {
		return s.current, err
	}
	if err := s.save(next); err != nil {
		return s.current, err
	}
	s.current = next
	return next, nil
}

// AddCategory 在末尾添加一个空分类
func (s *Store) AddCategory(name string) (Settings, error) {
	return s.Update(func(cur Settings) (Settings, error) {
		types, err := cur.FileTypes.WithCategory(name)
		if err != nil {
			return cur, err
		}
		cur.FileTypes = types
		return cur, nil
	})
}

// AddExtension 给分类添加扩展名，自动补全前导点并转为小写
func (s *Store) AddExtension(category, ext string) (Settings, error) {
	return s.Update(func(cur Settings) (Settings, error) {
		types, err := cur.FileTypes.WithExtension(category, ext)
		if err != nil {
			return cur, err
		}
		cur.FileTypes = types
		return cur, nil
	})
}

func (s *Store) SetTheme(theme Theme) (Settings, error) {
	if _, err := ParseTheme(string(theme)); err != nil {
		return s.Snapshot(), err
	}
	return s.Update(func(cur Settings) (Settings, error) {
		cur.Theme = theme
		return cur, nil
	})
}

func (s *Store) ToggleTheme() (Settings, error) {
	return s.Update(func(cur Settings) (Settings, error) {
		cur.Theme = cur.Theme.Toggle()
		return cur, nil
	})
}

// SetLastFolder 记录最近一次整理的目录
func (s *Store) SetLastFolder(dir string) error {
	_, err := s.Update(func(cur Settings) (Settings, error) {
		cur.LastFolder = dir
		return cur, nil
	})
	return err
}

// save 先写临时文件再重命名，避免写到一半的设置文件
func (s *Store) save(st Settings) error {
	data, err := json.MarshalIndent(st, "", "    ")
	if err != nil {
		return fmt.Errorf("序列化设置失败: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建设置目录失败: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("写入设置文件失败: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("保存设置文件失败: %w", err)
	}

	logger.Get().Debug().Str("path", s.path).Msg("设置已保存")
	return nil
}
