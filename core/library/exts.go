package library

import (
	"path/filepath"
	"strings"
)

// 扫描只索引这三种容器；串流和封面接口额外放行 wav/ogg，
// 它们可以直接播放但标签支持有限。
var (
	scanExts = map[string]bool{
		".mp3":  true,
		".flac": true,
		".m4a":  true,
	}
	streamExts = map[string]bool{
		".mp3":  true,
		".flac": true,
		".m4a":  true,
		".wav":  true,
		".ogg":  true,
	}
)

// Scannable 判断文件是否进入曲库索引。
func Scannable(path string) bool {
	return scanExts[strings.ToLower(filepath.Ext(path))]
}

// Streamable 判断文件是否允许被串流/封面接口访问。
func Streamable(path string) bool {
	return streamExts[strings.ToLower(filepath.Ext(path))]
}
