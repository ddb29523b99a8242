package sexagenary

import "fmt"

// Branch is one of the twelve Earthly Branches.
type Branch int

const (
	BranchZi   Branch = iota // Tý 子
	BranchChou               // Sửu 丑
	BranchYin                // Dần 寅
	BranchMao                // Mão 卯
	BranchChen               // Thìn 辰
	BranchSi                 // Tỵ 巳
	BranchWu                 // Ngọ 午
	BranchWei                // Mùi 未
	BranchShen               // Thân 申
	BranchYou                // Dậu 酉
	BranchXu                 // Tuất 戌
	BranchHai                // Hợi 亥
)

// BranchCount is the length of the branch cycle.
const BranchCount = 12

var branchTable = [BranchCount]struct {
	vi, han, pinyin string
}{
	{"Tý", "子", "Zǐ"},
	{"Sửu", "丑", "Chǒu"},
	{"Dần", "寅", "Yín"},
	{"Mão", "卯", "Mǎo"},
	{"Thìn", "辰", "Chén"},
	{"Tỵ", "巳", "Sì"},
	{"Ngọ", "午", "Wǔ"},
	{"Mùi", "未", "Wèi"},
	{"Thân", "申", "Shēn"},
	{"Dậu", "酉", "Yǒu"},
	{"Tuất", "戌", "Xū"},
	{"Hợi", "亥", "Hài"},
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool {
	return b >= BranchZi && b <= BranchHai
}

// String returns the Sino-Vietnamese name, e.g. "Tý".
func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchTable[b].vi
}

// Han returns the branch's Han character.
func (b Branch) Han() string {
	if !b.Valid() {
		return ""
	}
	return branchTable[b].han
}

// Pinyin returns the branch's Mandarin romanization.
func (b Branch) Pinyin() string {
	if !b.Valid() {
		return ""
	}
	return branchTable[b].pinyin
}

// Element of the branch. The four Earth branches sit between the seasons.
func (b Branch) Element() Element {
	switch b {
	case BranchYin, BranchMao:
		return Wood
	case BranchSi, BranchWu:
		return Fire
	case BranchShen, BranchYou:
		return Metal
	case BranchHai, BranchZi:
		return Water
	case BranchChou, BranchChen, BranchWei, BranchXu:
		return Earth
	}
	return Element(-1)
}

// Polarity is Yang for even ordinals.
func (b Branch) Polarity() Polarity {
	if b%2 == 0 {
		return Yang
	}
	return Yin
}

// Zodiac returns the animal sharing the branch's ordinal.
func (b Branch) Zodiac() Zodiac {
	return Zodiac(b)
}

// Window returns the two-hour period the branch rules. Zi wraps midnight.
func (b Branch) Window() HourWindow {
	start := (2*int(b) + 23) % 24
	return HourWindow{Start: start, End: (start + 2) % 24}
}

// MarshalText implements encoding.TextMarshaler.
func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: branch %d", ErrInvalidArgument, int(b))
	}
	return []byte(b.String()), nil
}

// HourWindow is a half-open [Start, End) range of clock hours; End may be
// smaller than Start when the window wraps midnight.
type HourWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the clock hour falls inside the window.
func (w HourWindow) Contains(hour int) bool {
	if w.Start < w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.Start || hour < w.End
}

func (w HourWindow) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.Start, w.End)
}

// Zodiac is one of the twelve animals of the Vietnamese zodiac.
type Zodiac int

const (
	ZodiacRat Zodiac = iota
	ZodiacBuffalo
	ZodiacTiger
	ZodiacCat
	ZodiacDragon
	ZodiacSnake
	ZodiacHorse
	ZodiacGoat
	ZodiacMonkey
	ZodiacRooster
	ZodiacDog
	ZodiacPig
)

var zodiacTable = [BranchCount]struct{ en, vi string }{
	{"Rat", "Chuột"},
	{"Buffalo", "Trâu"},
	{"Tiger", "Hổ"},
	{"Cat", "Mèo"},
	{"Dragon", "Rồng"},
	{"Snake", "Rắn"},
	{"Horse", "Ngựa"},
	{"Goat", "Dê"},
	{"Monkey", "Khỉ"},
	{"Rooster", "Gà"},
	{"Dog", "Chó"},
	{"Pig", "Lợn"},
}

func (z Zodiac) String() string {
	if z < ZodiacRat || z > ZodiacPig {
		return fmt.Sprintf("Zodiac(%d)", int(z))
	}
	return zodiacTable[z].en
}

// VietnameseName returns the animal's Vietnamese name.
func (z Zodiac) VietnameseName() string {
	if z < ZodiacRat || z > ZodiacPig {
		return ""
	}
	return zodiacTable[z].vi
}

// Branch returns the branch sharing the animal's ordinal.
func (z Zodiac) Branch() Branch {
	return Branch(z)
}

// MarshalText implements encoding.TextMarshaler.
func (z Zodiac) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}
