package holiday

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	cat, err := DefaultCatalog()
	require.NoError(t, err)
	return NewResolver(cat, calendar.NewVietnameseConverter(), nil)
}

func findOccurrences(occ []Occurrence, id int) []Occurrence {
	var out []Occurrence
	for _, o := range occ {
		if o.Definition.ID == id {
			out = append(out, o)
		}
	}
	return out
}

func TestForYear_LunarNewYear(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		year int
		want time.Time
	}{
		{2024, calendar.Date(2024, time.February, 10)},
		{2025, calendar.Date(2025, time.January, 29)},
		{2026, calendar.Date(2026, time.February, 17)},
		{2007, calendar.Date(2007, time.February, 17)},
	}

	for _, tt := range tests {
		occ, err := r.ForYear(tt.year)
		require.NoError(t, err)

		tet := findOccurrences(occ, 21)
		require.Len(t, tet, 1, "year %d", tt.year)
		assert.True(t, tet[0].Date.Equal(tt.want), "year %d: got %s", tt.year, calendar.FormatDate(tet[0].Date))
		assert.Equal(t, tt.year, tet[0].LunarYear)
		assert.Equal(t, 1, tet[0].LunarMonth)
		assert.Equal(t, 1, tet[0].LunarDay)
	}
}

func TestForYear_NewYearsEveFallsBackInShortMonth(t *testing.T) {
	r := newTestResolver(t)

	occ, err := r.ForYear(2025)
	require.NoError(t, err)

	eve := findOccurrences(occ, 20)
	require.Len(t, eve, 1)
	assert.True(t, eve[0].Date.Equal(calendar.Date(2025, time.January, 28)))
	assert.Equal(t, 2024, eve[0].LunarYear)
	assert.Equal(t, 12, eve[0].LunarMonth)
	assert.Equal(t, 29, eve[0].LunarDay)
	assert.Equal(t, "Giáp Thìn", eve[0].YearName)
	assert.Equal(t, "Dragon", eve[0].Zodiac)
}

func TestForYear_NewYearsEveInLongMonth(t *testing.T) {
	r := newTestResolver(t)

	occ, err := r.ForYear(2024)
	require.NoError(t, err)

	eve := findOccurrences(occ, 20)
	require.Len(t, eve, 1)
	assert.True(t, eve[0].Date.Equal(calendar.Date(2024, time.February, 9)))
	assert.Equal(t, 30, eve[0].LunarDay)
}

func TestForYear_WithoutFallbackSkipsMissingDay(t *testing.T) {
	cat, err := NewCatalog([]Definition{
		{ID: 1, Name: "Day 30", Rule: LunisolarRecurring{Month: 12, Day: 30}},
	})
	require.NoError(t, err)
	r := NewResolver(cat, calendar.NewVietnameseConverter(), nil)

	// Lunar 2024/12 has 29 days and lunar 2025/12 ends in 2026.
	occ, err := r.ForYear(2025)
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestForYear_AllDatesInYearAndSorted(t *testing.T) {
	r := newTestResolver(t)

	for _, year := range []int{1999, 2020, 2023, 2025, 2033} {
		occ, err := r.ForYear(year)
		require.NoError(t, err)
		require.NotEmpty(t, occ)

		seen := make(map[occurrenceKey]bool)
		for i, o := range occ {
			assert.Equal(t, year, o.Date.Year(), "%s", o.Definition.Name)
			if i > 0 {
				assert.False(t, o.Date.Before(occ[i-1].Date), "year %d not sorted at %d", year, i)
			}
			key := occurrenceKey{id: o.Definition.ID, date: o.Date}
			assert.False(t, seen[key], "duplicate %d on %s", o.Definition.ID, calendar.FormatDate(o.Date))
			seen[key] = true
		}
	}
}

func TestForYear_2025Count(t *testing.T) {
	r := newTestResolver(t)

	occ, err := r.ForYear(2025)
	require.NoError(t, err)
	// Every definition lands exactly once in 2025.
	assert.Len(t, occ, 26)
}

func TestForYear_GregorianLeapDay(t *testing.T) {
	cat, err := NewCatalog([]Definition{
		{ID: 1, Name: "Leap day", Rule: GregorianFixed{Month: time.February, Day: 29}},
	})
	require.NoError(t, err)
	r := NewResolver(cat, calendar.NewVietnameseConverter(), nil)

	occ, err := r.ForYear(2024)
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.True(t, occ[0].Date.Equal(calendar.Date(2024, time.February, 29)))

	occ, err = r.ForYear(2025)
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestForYear_OutOfRange(t *testing.T) {
	r := newTestResolver(t)

	for _, year := range []int{1900, 2101, 0} {
		_, err := r.ForYear(year)
		assert.True(t, errors.Is(err, calendar.ErrOutOfRange), "year %d", year)
	}
}

func TestForYear_Deterministic(t *testing.T) {
	r := newTestResolver(t)

	a, err := r.ForYear(2030)
	require.NoError(t, err)
	b, err := r.ForYear(2030)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestForMonth(t *testing.T) {
	r := newTestResolver(t)

	occ, err := r.ForMonth(2025, time.January)
	require.NoError(t, err)

	var ids []int
	for _, o := range occ {
		assert.Equal(t, time.January, o.Date.Month())
		ids = append(ids, o.Definition.ID)
	}
	// New Year, Kitchen Gods, eve, then the first three days of Tet.
	assert.Equal(t, []int{1, 35, 20, 21, 22, 23}, ids)

	_, err = r.ForMonth(2025, 13)
	assert.Error(t, err)
}

func TestForDate(t *testing.T) {
	r := newTestResolver(t)

	def, err := r.ForDate(calendar.Date(2025, time.October, 6))
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, 32, def.ID)

	def, err = r.ForDate(calendar.Date(2025, time.April, 7))
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "Giỗ Tổ Hùng Vương", def.Name)

	def, err = r.ForDate(time.Date(2025, time.September, 2, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, 7, def.ID)

	def, err = r.ForDate(calendar.Date(2025, time.March, 15))
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestOnDate_Tet(t *testing.T) {
	r := newTestResolver(t)

	occ, err := r.OnDate(calendar.Date(2026, time.February, 17))
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.Equal(t, "Tết Nguyên Đán", occ[0].Definition.Name)
	assert.Equal(t, "Bính Ngọ", occ[0].YearName)
	assert.Equal(t, "Horse", occ[0].Zodiac)
}

func TestForYear_LeapMonthRule(t *testing.T) {
	cat, err := NewCatalog([]Definition{
		{ID: 1, Name: "Leap six", Rule: LunisolarRecurring{Month: 6, Day: 1, IsLeapMonth: true}},
	})
	require.NoError(t, err)
	r := NewResolver(cat, calendar.NewVietnameseConverter(), nil)

	occ, err := r.ForYear(2025)
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.True(t, occ[0].Date.Equal(calendar.Date(2025, time.July, 25)))
	assert.True(t, occ[0].IsLeapMonth)

	// 2024 has no leap month.
	occ, err = r.ForYear(2024)
	require.NoError(t, err)
	assert.Empty(t, occ)
}
