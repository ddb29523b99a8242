// Package sexagenary computes Heavenly Stem / Earthly Branch pairs for the
// year, month, day and hour of a date.
package sexagenary

import "fmt"

// Element is one of the Five Elements.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

func (e Element) String() string {
	switch e {
	case Wood:
		return "Wood"
	case Fire:
		return "Fire"
	case Earth:
		return "Earth"
	case Metal:
		return "Metal"
	case Water:
		return "Water"
	}
	return fmt.Sprintf("Element(%d)", int(e))
}

// VietnameseName returns the element's Sino-Vietnamese name.
func (e Element) VietnameseName() string {
	switch e {
	case Wood:
		return "Mộc"
	case Fire:
		return "Hỏa"
	case Earth:
		return "Thổ"
	case Metal:
		return "Kim"
	case Water:
		return "Thủy"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Polarity is Yin or Yang.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yang {
		return "Yang"
	}
	return "Yin"
}

// MarshalText implements encoding.TextMarshaler.
func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Stem is one of the ten Heavenly Stems.
type Stem int

const (
	StemJia  Stem = iota // Giáp 甲
	StemYi               // Ất 乙
	StemBing             // Bính 丙
	StemDing             // Đinh 丁
	StemWu               // Mậu 戊
	StemJi               // Kỷ 己
	StemGeng             // Canh 庚
	StemXin              // Tân 辛
	StemRen              // Nhâm 壬
	StemGui              // Quý 癸
)

// StemCount is the length of the stem cycle.
const StemCount = 10

var stemTable = [StemCount]struct {
	vi, han, pinyin string
}{
	{"Giáp", "甲", "Jiǎ"},
	{"Ất", "乙", "Yǐ"},
	{"Bính", "丙", "Bǐng"},
	{"Đinh", "丁", "Dīng"},
	{"Mậu", "戊", "Wù"},
	{"Kỷ", "己", "Jǐ"},
	{"Canh", "庚", "Gēng"},
	{"Tân", "辛", "Xīn"},
	{"Nhâm", "壬", "Rén"},
	{"Quý", "癸", "Guǐ"},
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool {
	return s >= StemJia && s <= StemGui
}

// String returns the Sino-Vietnamese name, e.g. "Giáp".
func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemTable[s].vi
}

// Han returns the stem's Han character.
func (s Stem) Han() string {
	if !s.Valid() {
		return ""
	}
	return stemTable[s].han
}

// Pinyin returns the stem's Mandarin romanization.
func (s Stem) Pinyin() string {
	if !s.Valid() {
		return ""
	}
	return stemTable[s].pinyin
}

// Element pairs stems two by two: Jia/Yi are Wood, Bing/Ding Fire, and so on.
func (s Stem) Element() Element {
	switch s {
	case StemJia, StemYi:
		return Wood
	case StemBing, StemDing:
		return Fire
	case StemWu, StemJi:
		return Earth
	case StemGeng, StemXin:
		return Metal
	case StemGui, StemRen:
		return Water
	}
	return Element(-1)
}

// Polarity is Yang for even ordinals.
func (s Stem) Polarity() Polarity {
	if s%2 == 0 {
		return Yang
	}
	return Yin
}

// MarshalText implements encoding.TextMarshaler.
func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: stem %d", ErrInvalidArgument, int(s))
	}
	return []byte(s.String()), nil
}
