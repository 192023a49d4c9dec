// Package sortkey 为曲目元数据生成分组首字母和排序键。
//
// 拉丁文本直接按首字母分组；中文等非拉丁文本先转成拼音再取首字母，
// 排序键中的 "0"/"1" 标记保证同一首字母下拉丁条目排在音译条目之前。
package sortkey

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
)

// Fallback 表示无法归类到任何字母的条目
const Fallback = "#"

// emptyKey sorts after every real key, which all begin with [A-Z#].
const emptyKey = "￿"

var pinyinArgs = newPinyinArgs()

func newPinyinArgs() pinyin.Args {
	a := pinyin.NewArgs()
	// 保留非汉字字符，否则 "01 Track" 这类文本会被整体丢弃
	a.Fallback = func(r rune, a pinyin.Args) []string {
		return []string{string(r)}
	}
	return a
}

// Derive 计算 text 的首字母和排序键。函数不会 panic：
// 任何无法处理的输入都退化为 "#"。
func Derive(text string) (initial, key string) {
	defer func() {
		if recover() != nil {
			initial, key = Fallback, Fallback
		}
	}()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Fallback, emptyKey
	}

	first := []rune(trimmed)[0]
	if isASCIILetter(first) {
		initial = strings.ToUpper(string(first))
		return initial, initial + "0" + strings.ToUpper(trimmed)
	}

	// 非拉丁开头：整体转写成拼音后取首字母
	translit := strings.Join(pinyin.LazyPinyin(trimmed, pinyinArgs), "")
	translit = strings.TrimSpace(translit)
	if translit == "" {
		return Fallback, emptyKey
	}

	lead := []rune(translit)[0]
	if isASCIILetter(lead) {
		initial = strings.ToUpper(string(lead))
	} else {
		initial = Fallback
	}
	return initial, initial + "1" + strings.ToUpper(translit)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
