// Package scraper 从外部歌词/封面接口补全曲库缺失的元数据。
package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BlazeZheng/simple-nas-music-player/model"
)

// Client 封装外部查询接口。接口按 title/artist（可选 album）检索，
// /lyrics 返回纯文本歌词，/cover 返回 image/* 响应体。
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient 创建查询客户端，单次请求超时 10 秒。
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func lookupParams(title, artist, album string) url.Values {
	params := url.Values{}
	params.Set("title", title)
	params.Set("artist", artist)
	// 专辑未知时不传，避免干扰检索
	if album != "" && album != model.UnknownAlbum {
		params.Set("album", album)
	}
	return params
}

// FetchLyrics 查询歌词，返回非空的纯文本。
func (c *Client) FetchLyrics(title, artist, album string) (string, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/lyrics?" + lookupParams(title, artist, album).Encode())
	if err != nil {
		return "", fmt.Errorf("请求歌词接口失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("歌词接口返回状态码 %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取歌词响应失败: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", fmt.Errorf("歌词响应为空")
	}
	return string(body), nil
}

// FetchCover 查询封面，只接受声明为 image/* 的响应。
func (c *Client) FetchCover(title, artist, album string) ([]byte, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/cover?" + lookupParams(title, artist, album).Encode())
	if err != nil {
		return nil, fmt.Errorf("请求封面接口失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("封面接口返回状态码 %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "image") {
		return nil, fmt.Errorf("封面响应不是图片: %s", resp.Header.Get("Content-Type"))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取封面响应失败: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("封面响应为空")
	}
	return body, nil
}
