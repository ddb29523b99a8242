// Command apitest runs smoke checks against a running amlich API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -v
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type lunarDate struct {
	Gregorian   string `json:"gregorian"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	IsLeapMonth bool   `json:"is_leap_month"`
	YearName    string `json:"year_name"`
}

type pair struct {
	Name string `json:"name"`
}

type sexagenaryInfo struct {
	Date  string `json:"date"`
	Year  pair   `json:"year"`
	Month pair   `json:"month"`
	Day   pair   `json:"day"`
	Hour  *pair  `json:"hour"`
}

type occurrence struct {
	Date    string `json:"date"`
	Holiday struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"holiday"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Amlich API Smoke Test")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testLunarDates()
	tr.testSolarDates()
	tr.testSexagenary()
	tr.testHolidays()
	tr.testErrors()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health struct {
		Status   string `json:"status"`
		Holidays int    `json:"holidays"`
	}
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}
	if health.Status != "healthy" {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
		return
	}
	tr.recordSuccess(fmt.Sprintf("Health check passed (%d holidays)", health.Holidays))
}

func (tr *TestRunner) testLunarDates() {
	tr.printSection("Gregorian to Lunar")

	testCases := []struct {
		date             string
		year, month, day int
		leap             bool
		description      string
	}{
		{"2024-02-10", 2024, 1, 1, false, "Tết Giáp Thìn"},
		{"2025-01-29", 2025, 1, 1, false, "Tết Ất Tỵ"},
		{"2026-02-17", 2026, 1, 1, false, "Tết Bính Ngọ"},
		{"2025-01-28", 2024, 12, 29, false, "Giao thừa in a 29-day month"},
		{"2025-07-25", 2025, 6, 1, true, "Leap 6th month 2025"},
		{"2025-08-23", 2025, 7, 1, false, "7th month after the leap"},
		{"2025-10-06", 2025, 8, 15, false, "Trung Thu 2025"},
	}

	for _, tc := range testCases {
		var got lunarDate
		if err := tr.getData("/api/v1/lunar/"+tc.date, &got); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}
		if got.Year != tc.year || got.Month != tc.month || got.Day != tc.day || got.IsLeapMonth != tc.leap {
			tr.recordError(tc.date, fmt.Sprintf("Expected %d/%d/%d leap=%v, got %d/%d/%d leap=%v",
				tc.day, tc.month, tc.year, tc.leap, got.Day, got.Month, got.Year, got.IsLeapMonth))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: %d/%d %s (%s)", tc.date, got.Day, got.Month, got.YearName, tc.description))
	}
}

func (tr *TestRunner) testSolarDates() {
	tr.printSection("Lunar to Gregorian")

	var got struct {
		Date string `json:"date"`
	}
	if err := tr.getData("/api/v1/solar?year=2025&month=6&day=1&leap=true", &got); err != nil {
		tr.recordError("Leap 6/1 2025", err.Error())
	} else if got.Date != "2025-07-25" {
		tr.recordError("Leap 6/1 2025", fmt.Sprintf("Expected 2025-07-25, got %s", got.Date))
	} else {
		tr.recordSuccess("Leap 6/1 2025 is 2025-07-25")
	}

	tr.expectError("/api/v1/solar?year=2024&month=12&day=30", "NONEXISTENT_LUNAR_DATE", "Day 30 of a 29-day month rejected")
}

func (tr *TestRunner) testSexagenary() {
	tr.printSection("Sexagenary Cycle")

	var info sexagenaryInfo
	if err := tr.getData("/api/v1/sexagenary/2025-01-29?time=12:30", &info); err != nil {
		tr.recordError("Can chi 2025-01-29", err.Error())
	} else if info.Year.Name != "Ất Tỵ" || info.Month.Name != "Đinh Dần" || info.Day.Name != "Mậu Tuất" {
		tr.recordError("Can chi 2025-01-29", fmt.Sprintf("Got %s / %s / %s", info.Year.Name, info.Month.Name, info.Day.Name))
	} else {
		tr.recordSuccess(fmt.Sprintf("2025-01-29: năm %s, tháng %s, ngày %s", info.Year.Name, info.Month.Name, info.Day.Name))
	}

	var week []sexagenaryInfo
	if err := tr.getData("/api/v1/sexagenary/range?start=2025-12-21&end=2025-12-27", &week); err != nil {
		tr.recordError("Range (week)", err.Error())
	} else if len(week) != 7 {
		tr.recordError("Range (week)", fmt.Sprintf("Expected 7 days, got %d", len(week)))
	} else {
		tr.recordSuccess("Week range returned 7 days")
	}

	tr.expectError("/api/v1/sexagenary/range?start=2025-01-01&end=2025-12-31", "INVALID_ARGUMENT", "Range limit enforced")
}

func (tr *TestRunner) testHolidays() {
	tr.printSection("Holidays 2025")

	var occ []occurrence
	if err := tr.getData("/api/v1/holidays/2025", &occ); err != nil {
		tr.recordError("Holidays 2025", err.Error())
		return
	}

	want := map[int]string{20: "2025-01-28", 21: "2025-01-29", 27: "2025-04-07", 32: "2025-10-06"}
	for _, o := range occ {
		if tr.verbose {
			fmt.Printf("    %s  %s\n", o.Date, o.Holiday.Name)
		}
		if date, ok := want[o.Holiday.ID]; ok {
			if o.Date == date {
				tr.recordSuccess(fmt.Sprintf("%s on %s", o.Holiday.Name, o.Date))
			} else {
				tr.recordError(o.Holiday.Name, fmt.Sprintf("Expected %s, got %s", date, o.Date))
			}
			delete(want, o.Holiday.ID)
		}
	}
	for id := range want {
		tr.recordError("Holidays 2025", fmt.Sprintf("Holiday %d missing", id))
	}
}

func (tr *TestRunner) testErrors() {
	tr.printSection("Edge Cases")

	tr.expectError("/api/v1/lunar/invalid", "BAD_REQUEST", "Invalid date format rejected")
	tr.expectError("/api/v1/lunar/1850-01-01", "OUT_OF_RANGE", "Year before 1901 rejected")
	tr.expectError("/api/v1/holidays/date/2025-03-15", "NOT_FOUND", "Date without a holiday is 404")
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) fetch(path string) (*APIResponse, int, error) {
	resp, err := tr.client.Get(tr.baseURL + path)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parse error: %w", err)
	}
	return &apiResp, resp.StatusCode, nil
}

func (tr *TestRunner) getData(path string, target any) error {
	resp, _, err := tr.fetch(path)
	if err != nil {
		return err
	}
	if !resp.Success {
		errMsg := "unknown error"
		if resp.Error != nil {
			errMsg = resp.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}
	return json.Unmarshal(resp.Data, target)
}

func (tr *TestRunner) expectError(path, code, msg string) {
	resp, status, err := tr.fetch(path)
	if err != nil {
		tr.recordError(msg, err.Error())
		return
	}
	if resp.Success || resp.Error == nil || resp.Error.Code != code {
		tr.recordError(msg, fmt.Sprintf("Expected %s, got HTTP %d", code, status))
		return
	}
	tr.recordSuccess(msg)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)

	if tr.errorCount > 0 {
		fmt.Println()
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
