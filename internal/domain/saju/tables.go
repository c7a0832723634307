package saju

// Polarity is the yin/yang half of a stem or branch.
type Polarity string

const (
	Yang Polarity = "yang"
	Yin  Polarity = "yin"
)

// HeavenlyStem is one of the ten celestial stems.
type HeavenlyStem struct {
	Ordinal  int      `json:"ordinal"`
	Name     string   `json:"name"`
	Hanja    string   `json:"hanja"`
	Element  Element  `json:"element"`
	Polarity Polarity `json:"polarity"`
}

// Label renders the stem as "갑(甲)".
func (s HeavenlyStem) Label() string {
	return s.Name + "(" + s.Hanja + ")"
}

// EarthlyBranch is one of the twelve terrestrial branches.
type EarthlyBranch struct {
	Ordinal  int      `json:"ordinal"`
	Name     string   `json:"name"`
	Hanja    string   `json:"hanja"`
	Element  Element  `json:"element"`
	Polarity Polarity `json:"polarity"`
	// StartHour is the first clock hour of the branch's two-hour window;
	// the window for 子 wraps midnight (23:00-00:59).
	StartHour int    `json:"startHour"`
	Zodiac    string `json:"zodiac"`
}

// Label renders the branch as "자(子)".
func (b EarthlyBranch) Label() string {
	return b.Name + "(" + b.Hanja + ")"
}

// Window renders the two-hour window, e.g. "23-01".
func (b EarthlyBranch) Window() string {
	end := floorMod(b.StartHour+2, 24)
	return twoDigits(b.StartHour) + "-" + twoDigits(end)
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

var stems = [10]HeavenlyStem{
	{0, "갑", "甲", Wood, Yang},
	{1, "을", "乙", Wood, Yin},
	{2, "병", "丙", Fire, Yang},
	{3, "정", "丁", Fire, Yin},
	{4, "무", "戊", Earth, Yang},
	{5, "기", "己", Earth, Yin},
	{6, "경", "庚", Metal, Yang},
	{7, "신", "辛", Metal, Yin},
	{8, "임", "壬", Water, Yang},
	{9, "계", "癸", Water, Yin},
}

var branches = [12]EarthlyBranch{
	{0, "자", "子", Water, Yang, 23, "rat"},
	{1, "축", "丑", Earth, Yin, 1, "ox"},
	{2, "인", "寅", Wood, Yang, 3, "tiger"},
	{3, "묘", "卯", Wood, Yin, 5, "rabbit"},
	{4, "진", "辰", Earth, Yang, 7, "dragon"},
	{5, "사", "巳", Fire, Yin, 9, "snake"},
	{6, "오", "午", Fire, Yang, 11, "horse"},
	{7, "미", "未", Earth, Yin, 13, "goat"},
	{8, "신", "申", Metal, Yang, 15, "monkey"},
	{9, "유", "酉", Metal, Yin, 17, "rooster"},
	{10, "술", "戌", Earth, Yang, 19, "dog"},
	{11, "해", "亥", Water, Yin, 21, "pig"},
}

// Stem returns the stem at ordinal i, wrapping with floor-modulo.
func Stem(i int) HeavenlyStem {
	return stems[floorMod(i, len(stems))]
}

// Branch returns the branch at ordinal i, wrapping with floor-modulo.
func Branch(i int) EarthlyBranch {
	return branches[floorMod(i, len(branches))]
}

// Stems returns a copy of the ten-stem table.
func Stems() [10]HeavenlyStem {
	return stems
}

// Branches returns a copy of the twelve-branch table.
func Branches() [12]EarthlyBranch {
	return branches
}

// SolarTerm is one of the 24 seasonal boundaries with its approximate civil date.
type SolarTerm struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Hanja string `json:"hanja"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	// Sectional terms (절기) open a sexagenary month; the others are midpoints.
	Sectional bool    `json:"sectional"`
	Element   Element `json:"element"`
}

// solarTerms is ordered by civil date within a year starting from 소한.
var solarTerms = [24]SolarTerm{
	{0, "소한", "小寒", 1, 5, true, Water},
	{1, "대한", "大寒", 1, 20, false, Earth},
	{2, "입춘", "立春", 2, 4, true, Wood},
	{3, "우수", "雨水", 2, 19, false, Wood},
	{4, "경칩", "驚蟄", 3, 6, true, Wood},
	{5, "춘분", "春分", 3, 21, false, Wood},
	{6, "청명", "淸明", 4, 5, true, Wood},
	{7, "곡우", "穀雨", 4, 20, false, Earth},
	{8, "입하", "立夏", 5, 6, true, Fire},
	{9, "소만", "小滿", 5, 21, false, Fire},
	{10, "망종", "芒種", 6, 6, true, Fire},
	{11, "하지", "夏至", 6, 21, false, Fire},
	{12, "소서", "小暑", 7, 7, true, Fire},
	{13, "대서", "大暑", 7, 23, false, Earth},
	{14, "입추", "立秋", 8, 8, true, Metal},
	{15, "처서", "處暑", 8, 23, false, Metal},
	{16, "백로", "白露", 9, 8, true, Metal},
	{17, "추분", "秋分", 9, 23, false, Metal},
	{18, "한로", "寒露", 10, 8, true, Metal},
	{19, "상강", "霜降", 10, 23, false, Earth},
	{20, "입동", "立冬", 11, 7, true, Water},
	{21, "소설", "小雪", 11, 22, false, Water},
	{22, "대설", "大雪", 12, 7, true, Water},
	{23, "동지", "冬至", 12, 22, false, Water},
}

// SolarTerms returns a copy of the 24-term table.
func SolarTerms() [24]SolarTerm {
	return solarTerms
}

// startOfSpring is the sexagenary year boundary.
var startOfSpring = solarTerms[2]
