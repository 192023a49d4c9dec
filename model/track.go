package model

// 未知元数据的占位值，与缓存键计算和刮削判定共用
const (
	UnknownArtist = "unknown artist"
	UnknownAlbum  = "unknown album"
	UnknownSize   = "unknown"
)

// Track represents one audio file's derived metadata for a single scan.
// A Track is built fully resolved and never mutated afterwards; the
// initial/sort fields are always derived from the final title, artist
// and album values.
type Track struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Size     string `json:"size"`
	HasCover bool   `json:"hasCover"`
	Lyrics   string `json:"lyrics"`

	TitleInitial  string `json:"titleInitial"`
	ArtistInitial string `json:"artistInitial"`
	AlbumInitial  string `json:"albumInitial"`
	TitleSort     string `json:"titleSort"`
	ArtistSort    string `json:"artistSort"`
	AlbumSort     string `json:"albumSort"`

	// Scraped 预留字段，目前没有任何路径会把它置为 true
	Scraped bool `json:"scraped"`
}
