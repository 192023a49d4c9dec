// Package cache 实现按内容键寻址的本地文件缓存。
//
// 缓存就是两个扁平目录：lyrics/<hash>.lrc 和 covers/<hash>.jpg。
// 文件存在即条目存在，没有额外的索引；条目只增不删，也从不覆盖。
package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Kind 区分两类缓存资源
type Kind string

const (
	Lyrics Kind = "lyrics"
	Cover  Kind = "cover"
)

func (k Kind) ext() string {
	if k == Cover {
		return ".jpg"
	}
	return ".lrc"
}

// Store 管理歌词和封面两个缓存目录。
type Store struct {
	lyricDir string
	coverDir string
}

// NewStore 在 baseDir 下创建（如不存在）歌词和封面目录。
func NewStore(baseDir string) (*Store, error) {
	s := &Store{
		lyricDir: filepath.Join(baseDir, "lyrics"),
		coverDir: filepath.Join(baseDir, "covers"),
	}
	for _, dir := range []string{s.lyricDir, s.coverDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) path(kind Kind, key string) string {
	dir := s.lyricDir
	if kind == Cover {
		dir = s.coverDir
	}
	return filepath.Join(dir, key+kind.ext())
}

// Exists 判断条目是否已存在。
func (s *Store) Exists(kind Kind, key string) bool {
	info, err := os.Stat(s.path(kind, key))
	return err == nil && info.Mode().IsRegular()
}

// Read 返回条目内容；条目不存在时返回 fs.ErrNotExist。
func (s *Store) Read(kind Kind, key string) ([]byte, error) {
	return os.ReadFile(s.path(kind, key))
}

// WriteIfAbsent 仅在条目不存在时写入，返回本次调用是否真正完成了写入。
// 先写临时文件再硬链接到最终名字：并发写同一个键时只有一个链接成功，
// 落败的一方丢弃自己的数据，已有条目永远不会被改写。
func (s *Store) WriteIfAbsent(kind Kind, key string, data []byte) (bool, error) {
	final := s.path(kind, key)

	tmp, err := os.CreateTemp(filepath.Dir(final), key+".tmp-*")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	if err := os.Link(tmpName, final); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
