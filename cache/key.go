package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Key 根据 artist/title 生成缓存文件名。
// 歌词和封面共用同一个键，只是扩展名不同，所以一次计算即可。
// 对拼接结果做 trim + 小写，保证大小写和首尾空白不影响命中。
func Key(artist, title string) string {
	raw := strings.ToLower(strings.TrimSpace(artist + "-" + title))
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
