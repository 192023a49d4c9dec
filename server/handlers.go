package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/BlazeZheng/simple-nas-music-player/cache"
	"github.com/BlazeZheng/simple-nas-music-player/config"
	"github.com/BlazeZheng/simple-nas-music-player/core/library"
	"github.com/BlazeZheng/simple-nas-music-player/core/meta"
	"github.com/BlazeZheng/simple-nas-music-player/logger"
	"github.com/BlazeZheng/simple-nas-music-player/model"
)

// streamContentTypes 按扩展名决定串流响应的 Content-Type
var streamContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
}

// defaultCoverSVG 是没有任何封面可用时的兜底占位图
const defaultCoverSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200">
<rect width="200" height="200" fill="#2b2b2b"/>
<circle cx="86" cy="130" r="22" fill="#8a8a8a"/>
<rect x="104" y="52" width="8" height="80" fill="#8a8a8a"/>
<path d="M104 52 L144 42 L144 62 L112 70 Z" fill="#8a8a8a"/>
</svg>`

// APIHandler 处理所有API请求
type APIHandler struct {
	scanner *library.Scanner
	store   *cache.Store
	cfg     *config.Config
}

// NewAPIHandler 创建新的API处理器
func NewAPIHandler(scanner *library.Scanner, store *cache.Store, cfg *config.Config) *APIHandler {
	return &APIHandler{scanner: scanner, store: store, cfg: cfg}
}

// GetSongsHandler 全量扫描曲库并返回曲目列表，同时触发后台刮削。
func (h *APIHandler) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.scanner.Scan()
	if err != nil {
		logger.Error("扫描曲库失败", logger.ErrorField(err))
		http.Error(w, "Failed to scan library", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tracks); err != nil {
		logger.Error("写入曲目列表响应失败", logger.ErrorField(err))
	}
}

// StreamHandler 返回音频文件内容，Content-Type 按扩展名决定。
func (h *APIHandler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	path, err := h.resolveAudioPath(r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", streamContentTypes[strings.ToLower(filepath.Ext(path))])
	// http.ServeFile 自带 Range 支持，播放器拖进度条依赖它
	http.ServeFile(w, r, path)
}

// CoverHandler 按优先级返回封面：内嵌图片 → 缓存条目 → 占位 SVG。
// 标签解析失败只会让链路走到下一级，从不作为错误返回。
func (h *APIHandler) CoverHandler(w http.ResponseWriter, r *http.Request) {
	path, err := h.resolveAudioPath(r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, err)
		return
	}

	extractor := meta.ForFile(path)

	// 1. 内嵌封面
	if pic, err := extractor.Picture(path); err == nil && pic != nil {
		w.Header().Set("Content-Type", pic.MIME)
		w.Write(pic.Data)
		return
	}

	// 2. 缓存封面：用标签（或文件名兜底）重算缓存键
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	artist := model.UnknownArtist
	if md, err := extractor.Extract(path); err == nil {
		if md.Title != "" {
			title = md.Title
		}
		if md.Artist != "" {
			artist = md.Artist
		}
	}
	if data, err := h.store.Read(cache.Cover, cache.Key(artist, title)); err == nil {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(data)
		return
	}

	// 3. 占位图，允许中间层缓存一小时
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "max-age=3600")
	w.Write([]byte(defaultCoverSVG))
}

// HealthHandler 存活探针
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// resolveAudioPath 校验串流/封面请求里的路径参数：
// 必须是曲库根目录内的绝对路径、常规文件、且扩展名在放行列表里。
func (h *APIHandler) resolveAudioPath(raw string) (string, error) {
	if raw == "" {
		return "", ErrNotFound
	}

	path := filepath.Clean(raw)
	root := filepath.Clean(h.cfg.MusicDir)
	if !filepath.IsAbs(path) || !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		return "", ErrForbidden
	}
	if !library.Streamable(path) {
		return "", ErrUnsupportedType
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrNotFound
	}
	return path, nil
}
