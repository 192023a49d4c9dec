package scraper

import (
	"sync"
	"time"

	"github.com/BlazeZheng/simple-nas-music-player/cache"
	"github.com/BlazeZheng/simple-nas-music-player/logger"
	"github.com/BlazeZheng/simple-nas-music-player/model"
)

// Worker 在后台逐首补全缺失的歌词和封面。
// 互斥的 running 标记保证同一时刻最多一轮刮削在跑；
// 一轮内严格串行并在曲目之间固定等待，遵守外部接口的速率限制。
type Worker struct {
	store    *cache.Store
	client   *Client
	interval time.Duration

	mu      sync.Mutex
	running bool
}

// NewWorker 创建刮削器，曲目间隔 1 秒。
func NewWorker(store *cache.Store, client *Client) *Worker {
	return &Worker{store: store, client: client, interval: time.Second}
}

// Trigger 启动一轮后台刮削。已有任务在跑时直接放弃本轮并返回 false，
// 下一次扫描会重新算出仍然缺失的内容，不需要排队。
func (w *Worker) Trigger(tracks []model.Track) bool {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		logger.Debug("已有刮削任务在运行，跳过本轮触发")
		return false
	}
	w.running = true
	w.mu.Unlock()

	go func() {
		defer func() {
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
		}()
		w.runPass(tracks)
	}()
	return true
}

// runPass 处理一轮候选曲目。任何一首的失败只记日志，不影响后续曲目；
// 本轮内不重试，失败的资源留给下一次扫描重新发现。
func (w *Worker) runPass(tracks []model.Track) {
	logger.Info("后台刮削开始", logger.Int("candidates", len(tracks)))

	for _, t := range tracks {
		if t.Artist == model.UnknownArtist || t.Title == "" {
			continue
		}

		key := cache.Key(t.Artist, t.Title)
		needLyrics := !w.store.Exists(cache.Lyrics, key)
		needCover := !t.HasCover && !w.store.Exists(cache.Cover, key)

		// 两类资源都已就绪：不打外部接口，也不消耗等待间隔
		if !needLyrics && !needCover {
			continue
		}

		if needLyrics {
			w.fetchLyrics(key, t)
		}
		if needCover {
			w.fetchCover(key, t)
		}

		// 礼貌等待，避免触发外部接口的速率限制
		time.Sleep(w.interval)
	}

	logger.Info("后台刮削完成")
}

func (w *Worker) fetchLyrics(key string, t model.Track) {
	logger.Info("刮削歌词", logger.String("title", t.Title), logger.String("artist", t.Artist))

	text, err := w.client.FetchLyrics(t.Title, t.Artist, t.Album)
	if err != nil {
		logger.Warn("歌词下载失败",
			logger.String("title", t.Title), logger.ErrorField(err))
		return
	}

	wrote, err := w.store.WriteIfAbsent(cache.Lyrics, key, []byte(text))
	if err != nil {
		logger.Warn("歌词写入缓存失败", logger.String("key", key), logger.ErrorField(err))
		return
	}
	if !wrote {
		logger.Debug("歌词缓存已被其他任务写入，丢弃本次结果", logger.String("key", key))
	}
}

func (w *Worker) fetchCover(key string, t model.Track) {
	logger.Info("刮削封面", logger.String("title", t.Title), logger.String("artist", t.Artist))

	data, err := w.client.FetchCover(t.Title, t.Artist, t.Album)
	if err != nil {
		logger.Warn("封面下载失败",
			logger.String("title", t.Title), logger.ErrorField(err))
		return
	}

	wrote, err := w.store.WriteIfAbsent(cache.Cover, key, data)
	if err != nil {
		logger.Warn("封面写入缓存失败", logger.String("key", key), logger.ErrorField(err))
		return
	}
	if !wrote {
		logger.Debug("封面缓存已被其他任务写入，丢弃本次结果", logger.String("key", key))
	}
}
