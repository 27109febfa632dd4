package detector

import (
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Lang is one side of the Chinese/English pair.
type Lang string

const (
	Chinese Lang = "zh"
	English Lang = "en"
)

// Tag returns the BCP 47 tag for the language.
func (l Lang) Tag() language.Tag {
	if l == Chinese {
		return language.SimplifiedChinese
	}
	return language.English
}

// Name returns the English display name, e.g. "Simplified Chinese".
func (l Lang) Name() string {
	return display.English.Languages().Name(l.Tag())
}

type Direction int

const (
	EnToZh Direction = iota
	ZhToEn
)

func (d Direction) String() string {
	if d == ZhToEn {
		return "zh->en"
	}
	return "en->zh"
}

// Langs maps the direction to an explicit (source, target) pair.
func (d Direction) Langs() (source, target Lang) {
	if d == ZhToEn {
		return Chinese, English
	}
	return English, Chinese
}

// ideographs covers the CJK Unified Ideographs block and its extensions.
// Kana, Hangul and CJK punctuation are deliberately absent.
var ideographs = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3400, Hi: 0x4dbf, Stride: 1}, // Extension A
		{Lo: 0x4e00, Hi: 0x9fff, Stride: 1}, // Unified Ideographs
		{Lo: 0xf900, Hi: 0xfaff, Stride: 1}, // Compatibility Ideographs
	},
	R32: []unicode.Range32{
		{Lo: 0x20000, Hi: 0x2ebef, Stride: 1}, // Extensions B to F
	},
}

// IsIdeograph reports whether r is a CJK ideograph.
func IsIdeograph(r rune) bool {
	return unicode.Is(ideographs, r)
}

// Detect returns ZhToEn as soon as one CJK ideograph is found in text and
// EnToZh otherwise.
func Detect(text string) Direction {
	for _, r := range text {
		if IsIdeograph(r) {
			return ZhToEn
		}
	}
	return EnToZh
}
