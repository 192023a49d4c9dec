package scraper

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BlazeZheng/simple-nas-music-player/cache"
	"github.com/BlazeZheng/simple-nas-music-player/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstream struct {
	srv         *httptest.Server
	lyricCalls  atomic.Int64
	coverCalls  atomic.Int64
	lyricBody   string
	coverStatus int
	coverType   string
	lyricStatus int
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{
		lyricBody:   "[00:00.00] 歌词",
		lyricStatus: http.StatusOK,
		coverStatus: http.StatusOK,
		coverType:   "image/jpeg",
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/lyrics", func(w http.ResponseWriter, r *http.Request) {
		u.lyricCalls.Add(1)
		w.WriteHeader(u.lyricStatus)
		w.Write([]byte(u.lyricBody))
	})
	mux.HandleFunc("/cover", func(w http.ResponseWriter, r *http.Request) {
		u.coverCalls.Add(1)
		w.Header().Set("Content-Type", u.coverType)
		w.WriteHeader(u.coverStatus)
		w.Write([]byte{0xff, 0xd8, 0xff})
	})
	u.srv = httptest.NewServer(mux)
	t.Cleanup(u.srv.Close)
	return u
}

func newTestWorker(t *testing.T, u *upstream) (*Worker, *cache.Store) {
	t.Helper()
	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)
	w := NewWorker(store, NewClient(u.srv.URL))
	w.interval = 0
	return w, store
}

func track(title, artist string, hasCover bool) model.Track {
	return model.Track{Title: title, Artist: artist, Album: model.UnknownAlbum, HasCover: hasCover}
}

func TestPassFetchesMissingResources(t *testing.T) {
	u := newUpstream(t)
	w, store := newTestWorker(t, u)

	w.runPass([]model.Track{track("Song", "Artist", false)})

	key := cache.Key("Artist", "Song")
	assert.True(t, store.Exists(cache.Lyrics, key))
	assert.True(t, store.Exists(cache.Cover, key))
	assert.EqualValues(t, 1, u.lyricCalls.Load())
	assert.EqualValues(t, 1, u.coverCalls.Load())
}

func TestPassIsIdempotentOnFullyCachedSet(t *testing.T) {
	u := newUpstream(t)
	w, store := newTestWorker(t, u)

	key := cache.Key("Artist", "Song")
	_, err := store.WriteIfAbsent(cache.Lyrics, key, []byte("cached"))
	require.NoError(t, err)
	_, err = store.WriteIfAbsent(cache.Cover, key, []byte{0x01})
	require.NoError(t, err)

	// 两次完整跑完：零网络调用，缓存内容逐字节不变
	w.runPass([]model.Track{track("Song", "Artist", false)})
	w.runPass([]model.Track{track("Song", "Artist", false)})

	assert.EqualValues(t, 0, u.lyricCalls.Load())
	assert.EqualValues(t, 0, u.coverCalls.Load())

	data, err := store.Read(cache.Lyrics, key)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(data))
	data, err = store.Read(cache.Cover, key)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, data)
}

func TestPassDeduplicatesIdenticallyTaggedTracks(t *testing.T) {
	u := newUpstream(t)
	w, store := newTestWorker(t, u)

	// 两个文件标签完全相同：第一首落缓存后第二首直接命中
	tracks := []model.Track{
		track("Song", "李雷", false),
		track("Song", "李雷", false),
	}
	w.runPass(tracks)

	assert.EqualValues(t, 1, u.lyricCalls.Load())
	assert.EqualValues(t, 1, u.coverCalls.Load())
	assert.True(t, store.Exists(cache.Lyrics, cache.Key("李雷", "Song")))
}

func TestPassSkipsUnknownArtistAndEmptyTitle(t *testing.T) {
	u := newUpstream(t)
	w, _ := newTestWorker(t, u)

	w.runPass([]model.Track{
		track("Song", model.UnknownArtist, false),
		track("", "Artist", false),
	})

	assert.EqualValues(t, 0, u.lyricCalls.Load())
	assert.EqualValues(t, 0, u.coverCalls.Load())
}

func TestPassSkipsCoverFetchForEmbeddedCover(t *testing.T) {
	u := newUpstream(t)
	w, _ := newTestWorker(t, u)

	w.runPass([]model.Track{track("Song", "Artist", true)})

	assert.EqualValues(t, 1, u.lyricCalls.Load())
	assert.EqualValues(t, 0, u.coverCalls.Load())
}

func TestPassRejectsNonImageCover(t *testing.T) {
	u := newUpstream(t)
	u.coverType = "text/html"
	w, store := newTestWorker(t, u)

	w.runPass([]model.Track{track("Song", "Artist", false)})

	assert.EqualValues(t, 1, u.coverCalls.Load())
	assert.False(t, store.Exists(cache.Cover, cache.Key("Artist", "Song")))
}

func TestPassAbsorbsLyricFailure(t *testing.T) {
	u := newUpstream(t)
	u.lyricStatus = http.StatusBadGateway
	w, store := newTestWorker(t, u)

	// 歌词失败不影响同一首的封面，也不影响后续曲目
	w.runPass([]model.Track{
		track("Song", "Artist", false),
		track("Other", "Artist", false),
	})

	assert.False(t, store.Exists(cache.Lyrics, cache.Key("Artist", "Song")))
	assert.True(t, store.Exists(cache.Cover, cache.Key("Artist", "Song")))
	assert.True(t, store.Exists(cache.Cover, cache.Key("Artist", "Other")))
	assert.EqualValues(t, 2, u.lyricCalls.Load())
}

func TestPassIgnoresEmptyLyricBody(t *testing.T) {
	u := newUpstream(t)
	u.lyricBody = "  "
	w, store := newTestWorker(t, u)

	w.runPass([]model.Track{track("Song", "Artist", false)})
	assert.False(t, store.Exists(cache.Lyrics, cache.Key("Artist", "Song")))
}

func TestTriggerIsSingleFlight(t *testing.T) {
	u := newUpstream(t)
	w, _ := newTestWorker(t, u)

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()
	assert.False(t, w.Trigger([]model.Track{track("Song", "Artist", false)}))

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	assert.True(t, w.Trigger(nil))

	// 后台轮次结束后标记复位，可以再次触发
	assert.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return !w.running
	}, time.Second, 10*time.Millisecond)
}
