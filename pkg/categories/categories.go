package categories

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Others 未匹配任何分类的文件归入此分类
const Others = "Others"

var (
	ErrEmptyName        = errors.New("分类名称不能为空")
	ErrCategoryExists   = errors.New("分类已存在")
	ErrUnknownCategory  = errors.New("分类不存在")
	ErrInvalidExtension = errors.New("无效的扩展名")
	ErrExtensionExists  = errors.New("扩展名已存在")
)

// Category 一个分类及其扩展名集合（小写，带前导点）
type Category struct {
	Name       string
	Extensions []string
}

// CategoryMap 有序的分类表，查找时按顺序第一个命中的分类生效。
// 所有修改方法都返回新的 CategoryMap，不修改接收者。
type CategoryMap struct {
	categories []Category
}

// Default 返回内置的默认分类
func Default() CategoryMap {
	return New(
		Category{Name: "Documents", Extensions: []string{".pdf", ".docx", ".doc", ".txt", ".xls", ".xlsx", ".ppt", ".pptx"}},
		Category{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg"}},
		Category{Name: "Videos", Extensions: []string{".mp4", ".mkv", ".avi", ".mov", ".wmv"}},
		Category{Name: "Music", Extensions: []string{".mp3", ".wav", ".flac"}},
	)
}

// New 按给定顺序构建分类表，扩展名会被规范化并去重
func New(cats ...Category) CategoryMap {
	m := CategoryMap{categories: make([]Category, 0, len(cats))}
	for _, c := range cats {
		m.categories = append(m.categories, Category{
			Name:       normalizeName(c.Name),
			Extensions: normalizeExtensions(c.Extensions),
		})
	}
	return m
}

// Classify 返回扩展名所属的分类，大小写不敏感；无匹配（包括空扩展名）时返回 Others
func (m CategoryMap) Classify(ext string) string {
	ext = strings.ToLower(ext)
	if ext == "" {
		return Others
	}
	for _, c := range m.categories {
		for _, e := range c.Extensions {
			if e == ext {
				return c.Name
			}
		}
	}
	return Others
}

// Names 按顺序返回分类名称，不包含 Others（除非显式配置）
func (m CategoryMap) Names() []string {
	names := make([]string, len(m.categories))
	for i, c := range m.categories {
		names[i] = c.Name
	}
	return names
}

// Categories 返回分类的副本
func (m CategoryMap) Categories() []Category {
	out := make([]Category, len(m.categories))
	for i, c := range m.categories {
		out[i] = Category{Name: c.Name, Extensions: append([]string(nil), c.Extensions...)}
	}
	return out
}

func (m CategoryMap) Len() int {
	return len(m.categories)
}

func (m CategoryMap) Has(name string) bool {
	return m.index(normalizeName(name)) >= 0
}

// Extensions 返回某个分类的扩展名副本
func (m CategoryMap) Extensions(name string) ([]string, bool) {
	i := m.index(normalizeName(name))
	if i < 0 {
		return nil, false
	}
	return append([]string(nil), m.categories[i].Extensions...), true
}

// WithCategory 追加一个空分类
func (m CategoryMap) WithCategory(name string) (CategoryMap, error) {
	name = normalizeName(name)
	if name == "" {
		return m, ErrEmptyName
	}
	if m.index(name) >= 0 {
		return m, fmt.Errorf("%w: %s", ErrCategoryExists, name)
	}
	out := CategoryMap{categories: m.Categories()}
	out.categories = append(out.categories, Category{Name: name})
	return out, nil
}

// WithExtension 向已有分类追加扩展名，缺少前导点时自动补全
func (m CategoryMap) WithExtension(name, ext string) (CategoryMap, error) {
	name = normalizeName(name)
	i := m.index(name)
	if i < 0 {
		return m, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	ext = NormalizeExtension(ext)
	if ext == "" {
		return m, ErrInvalidExtension
	}
	for _, e := range m.categories[i].Extensions {
		if e == ext {
			return m, fmt.Errorf("%w: %s 已在 %s 中", ErrExtensionExists, ext, name)
		}
	}
	out := CategoryMap{categories: m.Categories()}
	out.categories[i].Extensions = append(out.categories[i].Extensions, ext)
	return out, nil
}

// Equal 顺序和内容都相同时返回 true
func (m CategoryMap) Equal(other CategoryMap) bool {
	if len(m.categories) != len(other.categories) {
		return false
	}
	for i, c := range m.categories {
		o := other.categories[i]
		if c.Name != o.Name || len(c.Extensions) != len(o.Extensions) {
			return false
		}
		for j := range c.Extensions {
			if c.Extensions[j] != o.Extensions[j] {
				return false
			}
		}
	}
	return true
}

// FolderName 将分类名称转为可用作目录名的纯文本，去掉首尾的装饰符号（如 emoji）
func FolderName(category string) string {
	name := norm.NFC.String(category)
	name = strings.TrimFunc(name, isDecoration)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return Others
	}
	return name
}

// isDecoration 匹配 emoji、变体选择符、零宽连接符和空白
func isDecoration(r rune) bool {
	return unicode.IsSpace(r) ||
		unicode.In(r, unicode.So, unicode.Sk, unicode.Mn, unicode.Cf)
}

// NormalizeExtension 小写并补全前导点，空白或只有点时返回空字符串
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.Trim(ext, ".") == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func (m CategoryMap) index(name string) int {
	for i, c := range m.categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = NormalizeExtension(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// MarshalJSON 编码为 JSON 对象，键的顺序即分类顺序
func (m CategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range m.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		exts := c.Extensions
		if exts == nil {
			exts = []string{}
		}
		val, err := json.Marshal(exts)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// appendOrReplace 重复的键保留第一次出现的位置，扩展名以最后一次为准
func appendOrReplace(cats []Category, c Category) []Category {
	key := normalizeName(c.Name)
	for i := range cats {
		if normalizeName(cats[i].Name) == key {
			cats[i].Extensions = c.Extensions
			return cats
		}
	}
	return append(cats, c)
}

// UnmarshalJSON 按文档中的键顺序解码
func (m *CategoryMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = CategoryMap{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("file_types 必须是 JSON 对象")
	}

	var cats []Category
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("file_types 的键必须是字符串")
		}
		var exts []string
		if err := dec.Decode(&exts); err != nil {
			return fmt.Errorf("解析分类 %q 失败: %w", name, err)
		}
		cats = appendOrReplace(cats, Category{Name: name, Extensions: exts})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = New(cats...)
	return nil
}
