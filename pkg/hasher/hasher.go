package hasher

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/logger"
)

// CalculateHash 计算文件内容的 xxHash64
func CalculateHash(fs afero.Fs, filePath string) (uint64, error) {
	logger.Get().Debug().Msgf("计算文件哈希: %s", filePath)

	file, err := fs.Open(filePath)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("无法打开文件: %s", filePath)
		return 0, err
	}
	defer file.Close()

	hash := xxhash.New()
	if _, err := io.Copy(hash, file); err != nil {
		logger.Get().Error().Err(err).Msgf("计算哈希失败: %s", filePath)
		return 0, err
	}

	result := hash.Sum64()
	logger.Get().Trace().Msgf("文件哈希计算完成: %s -> %x", filePath, result)
	return result, nil
}

// SameContent 两个文件内容的哈希一致时返回 true
func SameContent(fs afero.Fs, a, b string) (bool, error) {
	ha, err := CalculateHash(fs, a)
	if err != nil {
		return false, err
	}
	hb, err := CalculateHash(fs, b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
