package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDayNumber(t *testing.T) {
	tests := []struct {
		y, m, d int
		want    int
	}{
		{2000, 1, 1, 2451545},
		{1949, 10, 1, 2433191},
		{1970, 1, 1, 2440588},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JulianDayNumber(tt.y, tt.m, tt.d))

		y, m, d := FromJulianDayNumber(tt.want)
		assert.Equal(t, []int{tt.y, tt.m, tt.d}, []int{y, m, d})
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2025, time.February))
	assert.Equal(t, 31, DaysIn(2025, time.December))
}

func TestHasTimeOfDay(t *testing.T) {
	assert.False(t, HasTimeOfDay(Date(2025, time.March, 1)))
	assert.True(t, HasTimeOfDay(time.Date(2025, 3, 1, 0, 0, 1, 0, time.UTC)))
	assert.True(t, HasTimeOfDay(time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2025-03-01", "")
	require.NoError(t, err)
	assert.Equal(t, Date(2025, time.March, 1), got)

	got, err = ParseDateTime("2025-03-01", "13:45")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 13, 45, 0, 0, time.UTC), got)

	_, err = ParseDateTime("2025-03-01", "25:00")
	assert.Error(t, err)

	_, err = ParseDateTime("01/03/2025", "")
	assert.Error(t, err)
}

func TestYearNames(t *testing.T) {
	assert.Equal(t, "Giáp Thìn", YearName(2024))
	assert.Equal(t, "甲辰", YearHan(2024))
	assert.Equal(t, "Ất Tỵ", YearName(2025))
	assert.Equal(t, "Bính Ngọ", YearName(2026))
	assert.Equal(t, "Canh Tý", YearName(2020))
}
