package meta

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// genericExtractor 用 dhowden/tag 处理 m4a/ogg/wav 等其余格式，
// 包括 MP4 的 atom 标签。
type genericExtractor struct{}

func (genericExtractor) Extract(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Metadata{}, fmt.Errorf("read tags: %w", err)
	}

	md := Metadata{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}
	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
		md.HasCover = true
	}
	return md, nil
}

func (genericExtractor) Picture(path string) (*Picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}

	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, nil
	}
	mime := pic.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return &Picture{MIME: mime, Data: pic.Data}, nil
}
