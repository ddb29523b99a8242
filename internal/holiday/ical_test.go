package holiday

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportICal(t *testing.T) {
	r := newTestResolver(t)
	occ, err := r.ForMonth(2025, time.January)
	require.NoError(t, err)

	stamp := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	data, err := ExportICal("Ngày lễ 2025", occ, stamp)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "PRODID:"+icalProdID)
	assert.Contains(t, out, "UID:21-20250129@amlich-api")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250129")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250130")
	assert.Contains(t, out, "CATEGORIES:PUBLIC HOLIDAY")
	assert.Equal(t, len(occ), strings.Count(out, "BEGIN:VEVENT"))
}

func TestExportICal_Empty(t *testing.T) {
	data, err := ExportICal("empty", nil, time.Now())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.NotContains(t, out, "VEVENT")
}

func TestExportICal_EscapesCalendarName(t *testing.T) {
	name := "Lễ, Tết; 2025\nVN"
	want := `Lễ\, Tết\; 2025\nVN` + "\r\n"

	empty, err := ExportICal(name, nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(empty), "X-WR-CALNAME")
	assert.Contains(t, string(empty), want)
	assert.NotContains(t, string(empty), "2025\nVN")

	r := newTestResolver(t)
	occ, err := r.ForMonth(2025, time.January)
	require.NoError(t, err)
	full, err := ExportICal(name, occ, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(full), want)
}
