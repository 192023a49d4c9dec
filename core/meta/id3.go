package meta

import (
	"fmt"

	"github.com/bogem/id3v2/v2"
)

// id3Extractor 读取 MP3 的 ID3v2 标签。
type id3Extractor struct{}

func (id3Extractor) Extract(path string) (Metadata, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Metadata{}, fmt.Errorf("parse id3 tag: %w", err)
	}
	defer tag.Close()

	md := Metadata{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
	}
	md.HasCover = len(tag.GetFrames(tag.CommonID("Attached picture"))) > 0
	return md, nil
}

func (id3Extractor) Picture(path string) (*Picture, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("parse id3 tag: %w", err)
	}
	defer tag.Close()

	for _, fr := range tag.GetFrames(tag.CommonID("Attached picture")) {
		apic, ok := fr.(id3v2.PictureFrame)
		if !ok || len(apic.Picture) == 0 {
			continue
		}
		mime := apic.MimeType
		if mime == "" {
			mime = "image/jpeg"
		}
		return &Picture{MIME: mime, Data: apic.Picture}, nil
	}
	return nil, nil
}
