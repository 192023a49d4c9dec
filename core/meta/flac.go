package meta

import (
	"fmt"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

// flacExtractor 读取 FLAC 的 Vorbis comment 和 PICTURE 块。
type flacExtractor struct{}

func (flacExtractor) Extract(path string) (Metadata, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("parse flac: %w", err)
	}

	var md Metadata
	for _, block := range f.Meta {
		switch block.Type {
		case flac.VorbisComment:
			cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				continue
			}
			md.Title = firstField(cmt, flacvorbis.FIELD_TITLE)
			md.Artist = firstField(cmt, flacvorbis.FIELD_ARTIST)
			md.Album = firstField(cmt, flacvorbis.FIELD_ALBUM)
		case flac.Picture:
			md.HasCover = true
		}
	}
	return md, nil
}

func (flacExtractor) Picture(path string) (*Picture, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse flac: %w", err)
	}

	for _, block := range f.Meta {
		if block.Type != flac.Picture {
			continue
		}
		pic, err := flacpicture.ParseFromMetaDataBlock(*block)
		if err != nil || len(pic.ImageData) == 0 {
			continue
		}
		mime := pic.MIME
		if mime == "" {
			mime = "image/jpeg"
		}
		return &Picture{MIME: mime, Data: pic.ImageData}, nil
	}
	return nil, nil
}

func firstField(cmt *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmt.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}
