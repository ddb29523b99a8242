package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConvertCmd(t *testing.T) {
	out, err := runCmd(t, "convert", "2025-01-29")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(out, "Mùng 1 Tháng Giêng, năm Ất Tỵ (2025)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestConvertCmd_OutOfRange(t *testing.T) {
	_, err := runCmd(t, "convert", "1850-01-01")
	if !errors.Is(err, calendar.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestSolarCmd(t *testing.T) {
	out, err := runCmd(t, "solar", "2025", "6", "1", "--leap")
	if err != nil {
		t.Fatalf("solar: %v", err)
	}
	if !strings.HasPrefix(out, "2025-07-25") {
		t.Fatalf("unexpected output: %q", out)
	}

	_, err = runCmd(t, "solar", "2024", "12", "30")
	if !errors.Is(err, calendar.ErrNonexistentLunarDate) {
		t.Fatalf("expected ErrNonexistentLunarDate, got %v", err)
	}
}

func TestInfoCmd(t *testing.T) {
	out, err := runCmd(t, "info", "2025-01-29", "--time", "12:30", "--hours")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"Ất Tỵ", "Đinh Dần", "Mậu Tuất", "Mậu Ngọ", "* 11:00-13:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMonthCmd(t *testing.T) {
	out, err := runCmd(t, "month", "2025", "2")
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 28 {
		t.Errorf("got %d lines, want 28", lines)
	}
}

func TestHolidaysCmd(t *testing.T) {
	out, err := runCmd(t, "holidays", "2025", "--month", "1", "--public")
	if err != nil {
		t.Fatalf("holidays: %v", err)
	}
	if !strings.Contains(out, "2025-01-29") || !strings.Contains(out, "Tết Nguyên Đán") {
		t.Errorf("missing Tet:\n%s", out)
	}
	if strings.Contains(out, "Ông Công Ông Táo") {
		t.Errorf("non-public holiday listed:\n%s", out)
	}

	out, err = runCmd(t, "holidays", "2025", "-q", "trung thu")
	if err != nil {
		t.Fatalf("holidays: %v", err)
	}
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, "2025-10-06") {
		t.Errorf("unexpected search output:\n%s", out)
	}
}

func TestICalCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2025.ics")
	if _, err := runCmd(t, "ical", "2025", "-o", path); err != nil {
		t.Fatalf("ical: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("DTSTART;VALUE=DATE:20250129")) {
		t.Errorf("missing Tet event:\n%s", data)
	}
}
