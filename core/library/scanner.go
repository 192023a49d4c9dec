// Package library 负责扫描曲库目录并构建曲目列表。
package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BlazeZheng/simple-nas-music-player/cache"
	"github.com/BlazeZheng/simple-nas-music-player/core/meta"
	"github.com/BlazeZheng/simple-nas-music-player/core/sortkey"
	"github.com/BlazeZheng/simple-nas-music-player/logger"
	"github.com/BlazeZheng/simple-nas-music-player/model"

	"github.com/dustin/go-humanize"
)

// Enricher 在扫描结束后接收缺歌词/缺封面的曲目。
type Enricher interface {
	// Trigger 启动一轮后台刮削，已有任务在跑时返回 false
	Trigger(tracks []model.Track) bool
}

// Scanner 每次调用都完整遍历曲库目录重建索引。
// 曲库足够小，全量重扫比维护增量状态省事得多，这是刻意的取舍。
type Scanner struct {
	root     string
	store    *cache.Store
	enricher Enricher
}

// NewScanner 创建 Scanner。enricher 可以为 nil（纯扫描，不触发刮削）。
func NewScanner(root string, store *cache.Store, enricher Enricher) *Scanner {
	return &Scanner{root: root, store: store, enricher: enricher}
}

// Scan 遍历曲库并返回按文件名排序的曲目列表。
// 单个文件的任何解析失败都只影响它自己的元数据，不会中断扫描。
// 扫描完成后把缺歌词或缺封面、且艺术家和标题可用的曲目交给刮削器。
func (s *Scanner) Scan() ([]model.Track, error) {
	tracks := []model.Track{}

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("扫描目录项失败", logger.String("path", path), logger.ErrorField(err))
			return nil
		}
		if d.IsDir() || !Scannable(path) {
			return nil
		}
		tracks = append(tracks, s.buildTrack(path, d))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].Filename < tracks[j].Filename
	})

	if s.enricher != nil {
		if candidates := enrichmentCandidates(tracks); len(candidates) > 0 {
			s.enricher.Trigger(candidates)
		}
	}
	return tracks, nil
}

// buildTrack 组装一条完整的曲目记录。先取文件名兜底，再用标签覆盖，
// 最后一次性算出首字母和排序键，之后不再改动任何字段。
func (s *Scanner) buildTrack(path string, d fs.DirEntry) model.Track {
	filename := d.Name()
	title := strings.TrimSuffix(filename, filepath.Ext(filename))
	artist := model.UnknownArtist
	album := model.UnknownAlbum
	embeddedCover := false

	md, err := meta.ForFile(path).Extract(path)
	if err != nil {
		logger.Warn("读取标签失败，使用文件名兜底",
			logger.String("path", path), logger.ErrorField(err))
	} else {
		if md.Title != "" {
			title = md.Title
		}
		if md.Artist != "" {
			artist = md.Artist
		}
		if md.Album != "" {
			album = md.Album
		}
		embeddedCover = md.HasCover
	}

	size := model.UnknownSize
	if info, err := d.Info(); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}

	key := cache.Key(artist, title)
	titleInitial, titleSort := sortkey.Derive(title)
	artistInitial, artistSort := sortkey.Derive(artist)
	albumInitial, albumSort := sortkey.Derive(album)

	return model.Track{
		Path:          path,
		Filename:      filename,
		Title:         title,
		Artist:        artist,
		Album:         album,
		Size:          size,
		HasCover:      embeddedCover || s.store.Exists(cache.Cover, key),
		Lyrics:        s.resolveLyrics(path, key),
		TitleInitial:  titleInitial,
		ArtistInitial: artistInitial,
		AlbumInitial:  albumInitial,
		TitleSort:     titleSort,
		ArtistSort:    artistSort,
		AlbumSort:     albumSort,
	}
}

// resolveLyrics 按优先级取歌词：同名 .lrc 伴随文件 → 缓存 → 空。
func (s *Scanner) resolveLyrics(path, key string) string {
	sidecar := strings.TrimSuffix(path, filepath.Ext(path)) + ".lrc"
	if data, err := os.ReadFile(sidecar); err == nil {
		return string(data)
	}
	if data, err := s.store.Read(cache.Lyrics, key); err == nil {
		return string(data)
	}
	return ""
}

// enrichmentCandidates 过滤出值得刮削的曲目：缺歌词或缺封面，
// 且艺术家不是未知占位、标题非空（否则外部接口查不到任何结果）。
func enrichmentCandidates(tracks []model.Track) []model.Track {
	var out []model.Track
	for _, t := range tracks {
		if t.Artist == model.UnknownArtist || t.Title == "" {
			continue
		}
		if t.Lyrics != "" && t.HasCover {
			continue
		}
		out = append(out, t)
	}
	return out
}
