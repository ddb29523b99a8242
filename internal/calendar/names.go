package calendar

// Display tables for lunar dates. Indexed by (month-1) and (day-1).
var (
	monthNames = [12]string{
		"Tháng Giêng", "Tháng Hai", "Tháng Ba", "Tháng Tư",
		"Tháng Năm", "Tháng Sáu", "Tháng Bảy", "Tháng Tám",
		"Tháng Chín", "Tháng Mười", "Tháng Mười Một", "Tháng Chạp",
	}

	dayNames = [30]string{
		"Mùng 1", "Mùng 2", "Mùng 3", "Mùng 4", "Mùng 5",
		"Mùng 6", "Mùng 7", "Mùng 8", "Mùng 9", "Mùng 10",
		"11", "12", "13", "14", "Rằm",
		"16", "17", "18", "19", "20",
		"21", "22", "23", "24", "25",
		"26", "27", "28", "29", "30",
	}

	yearStemNames   = [10]string{"Giáp", "Ất", "Bính", "Đinh", "Mậu", "Kỷ", "Canh", "Tân", "Nhâm", "Quý"}
	yearBranchNames = [12]string{"Tý", "Sửu", "Dần", "Mão", "Thìn", "Tỵ", "Ngọ", "Mùi", "Thân", "Dậu", "Tuất", "Hợi"}
	yearStemHan     = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	yearBranchHan   = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
)

// LeapMarker prefixes the name of a leap month.
const LeapMarker = "Nhuận "

// MonthName returns the display name of a lunar month, e.g. "Tháng Chạp".
func MonthName(month int, leap bool) string {
	if month < 1 || month > 12 {
		return ""
	}
	if leap {
		return LeapMarker + monthNames[month-1]
	}
	return monthNames[month-1]
}

// DayName returns the display name of a lunar day, e.g. "Mùng 1" or "Rằm".
func DayName(day int) string {
	if day < 1 || day > 30 {
		return ""
	}
	return dayNames[day-1]
}

// YearName returns the "{stem} {branch}" display name of a lunar year.
//
// This is a display shortcut over (year-4); the sexagenary package owns the
// authoritative year formula.
func YearName(year int) string {
	return yearStemNames[floorMod(year-4, 10)] + " " + yearBranchNames[floorMod(year-4, 12)]
}

// YearHan returns the two Han characters naming a lunar year, e.g. "甲辰".
func YearHan(year int) string {
	return yearStemHan[floorMod(year-4, 10)] + yearBranchHan[floorMod(year-4, 12)]
}
