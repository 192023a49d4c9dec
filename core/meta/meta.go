// Package meta 从音频文件中读取内嵌元数据。
//
// 每种容器格式一个实现，统一回答四个问题：标题、艺术家、专辑、
// 有没有内嵌封面。调用方通过 ForFile 按扩展名拿到对应实现，
// 不需要关心任何格式细节。
package meta

import (
	"path/filepath"
	"strings"
)

// Metadata 是一次标签读取的结果，缺失的字段留空由调用方兜底。
type Metadata struct {
	Title    string
	Artist   string
	Album    string
	HasCover bool
}

// Picture 是一张内嵌封面及其声明的 MIME 类型。
type Picture struct {
	MIME string
	Data []byte
}

// Extractor 按容器格式读取标签。实现对损坏文件只返回错误，从不 panic。
type Extractor interface {
	// Extract 读取标题/艺术家/专辑和封面存在性
	Extract(path string) (Metadata, error)
	// Picture 返回第一张内嵌封面，没有封面时返回 (nil, nil)
	Picture(path string) (*Picture, error)
}

// ForFile 按扩展名选择提取器。未知扩展名走通用实现。
func ForFile(path string) Extractor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return id3Extractor{}
	case ".flac":
		return flacExtractor{}
	default:
		return genericExtractor{}
	}
}
