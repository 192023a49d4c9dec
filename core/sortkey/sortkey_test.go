package sortkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveLatin(t *testing.T) {
	initial, key := Derive("Bohemian Rhapsody")
	assert.Equal(t, "B", initial)
	assert.Equal(t, "B0BOHEMIAN RHAPSODY", key)

	initial, key = Derive("abba")
	assert.Equal(t, "A", initial)
	assert.Equal(t, "A0ABBA", key)
}

func TestDeriveCJK(t *testing.T) {
	initial, key := Derive("李雷")
	assert.Equal(t, "L", initial)
	assert.Equal(t, "L1LILEI", key)

	initial, _ = Derive("周杰伦")
	assert.Equal(t, "Z", initial)
}

func TestLatinSortsBeforeTransliterated(t *testing.T) {
	// 同一首字母下，拉丁条目必须排在音译条目之前
	_, latin := Derive("Love Story")
	_, translit := Derive("李雷")
	assert.Less(t, latin, translit)
}

func TestDeriveFallback(t *testing.T) {
	cases := []string{"", "   ", "\t\n"}
	for _, c := range cases {
		initial, key := Derive(c)
		assert.Equal(t, "#", initial)
		// 空输入的排序键必须排在所有真实键之后
		_, real := Derive("Zebra")
		assert.Greater(t, key, real)
	}
}

func TestDeriveNonAlphabeticLead(t *testing.T) {
	// 数字开头：转写后首字符仍不是字母，首字母退化为 #
	initial, key := Derive("01 Track")
	assert.Equal(t, "#", initial)
	assert.Equal(t, "#101 TRACK", key)

	initial, _ = Derive("!!!")
	assert.Equal(t, "#", initial)
}

func TestDeriveRecomputedPerField(t *testing.T) {
	// 同一文本两次计算结果一致（纯函数）
	i1, k1 := Derive("光辉岁月")
	i2, k2 := Derive("光辉岁月")
	assert.Equal(t, i1, i2)
	assert.Equal(t, k1, k2)
}
