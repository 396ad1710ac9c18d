package categories

import (
	"strings"

	"github.com/h2non/filetype"
)

// MIME 按扩展名查询常见 MIME 类型，仅用于展示，不参与分类。未知时返回空字符串
func MIME(ext string) string {
	ext = strings.TrimPrefix(NormalizeExtension(ext), ".")
	if ext == "" {
		return ""
	}
	kind := filetype.GetType(ext)
	if kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}
