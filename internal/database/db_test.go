package database

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/zapponejosh/amlich-api/internal/holiday"
)

// testDB creates a migrated in-memory database.
func testDB(t *testing.T) *DB {
	t.Helper()

	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func seedDefaultCatalog(t *testing.T, db *DB) *holiday.Catalog {
	t.Helper()

	cat, err := holiday.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if err := db.ReplaceCatalog(context.Background(), cat); err != nil {
		t.Fatalf("ReplaceCatalog() error = %v", err)
	}
	return cat
}

// -----------------------------------------------------------------
// DB tests
// -----------------------------------------------------------------

func TestOpen(t *testing.T) {
	db := testDB(t)

	if err := db.Health(context.Background()); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}

func TestMigrate(t *testing.T) {
	db := testDB(t)

	// Already applied in testDB.
	count, err := db.Migrate(context.Background())
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Migrate() count = %d, want 0 (already applied)", count)
	}
}

func TestWithTx_RollsBack(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.WithTx(ctx, func(tx *Tx) error {
		row := &HolidayRow{ID: 1, Name: "x", Calendar: CalendarGregorian, Month: 1, Day: 1}
		if err := insertHoliday(ctx, tx, row); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}

	if _, err := db.GetHoliday(ctx, 1); !IsNotFound(err) {
		t.Errorf("GetHoliday() after rollback error = %v, want ErrNotFound", err)
	}
}

// -----------------------------------------------------------------
// Holiday tests
// -----------------------------------------------------------------

func TestCreateHoliday(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	row := &HolidayRow{
		ID:                 20,
		Name:               "Giao thừa",
		Description:        "Đêm cuối cùng của năm Âm lịch.",
		ColorClass:         "holiday-tet",
		IsPublic:           true,
		Calendar:           CalendarLunar,
		Month:              12,
		Day:                30,
		ShortMonthFallback: true,
	}
	if err := db.CreateHoliday(ctx, row); err != nil {
		t.Fatalf("CreateHoliday() error = %v", err)
	}

	got, err := db.GetHoliday(ctx, 20)
	if err != nil {
		t.Fatalf("GetHoliday() error = %v", err)
	}
	if got.Name != row.Name || got.Calendar != CalendarLunar || got.Month != 12 || got.Day != 30 {
		t.Errorf("GetHoliday() = %+v, want %+v", got, row)
	}
	if !got.IsPublic || !got.ShortMonthFallback || got.IsLeapMonth {
		t.Errorf("GetHoliday() flags = public:%v fallback:%v leap:%v", got.IsPublic, got.ShortMonthFallback, got.IsLeapMonth)
	}
	if got.CreatedAt.IsZero() {
		t.Error("GetHoliday() created_at not set")
	}
}

func TestCreateHoliday_Duplicate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	row := &HolidayRow{ID: 1, Name: "Tết Dương lịch", Calendar: CalendarGregorian, Month: 1, Day: 1}
	if err := db.CreateHoliday(ctx, row); err != nil {
		t.Fatalf("first CreateHoliday() error = %v", err)
	}

	err := db.CreateHoliday(ctx, row)
	if err != ErrDuplicate {
		t.Errorf("CreateHoliday() duplicate error = %v, want ErrDuplicate", err)
	}
}

func TestCreateHoliday_CheckConstraint(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Lunar-only flags on a Gregorian row.
	row := &HolidayRow{ID: 1, Name: "x", Calendar: CalendarGregorian, Month: 1, Day: 1, IsLeapMonth: true}
	err := db.CreateHoliday(ctx, row)
	if err == nil || err == ErrDuplicate {
		t.Errorf("CreateHoliday() error = %v, want constraint failure", err)
	}
}

func TestGetHoliday_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetHoliday(context.Background(), 404)
	if !IsNotFound(err) {
		t.Errorf("GetHoliday() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteHoliday(t *testing.T) {
	db := testDB(t)
	seedDefaultCatalog(t, db)
	ctx := context.Background()

	if err := db.DeleteHoliday(ctx, 21); err != nil {
		t.Fatalf("DeleteHoliday() error = %v", err)
	}
	if err := db.DeleteHoliday(ctx, 21); !IsNotFound(err) {
		t.Errorf("second DeleteHoliday() error = %v, want ErrNotFound", err)
	}
}

// -----------------------------------------------------------------
// Catalog tests
// -----------------------------------------------------------------

func TestReplaceAndLoadCatalog(t *testing.T) {
	db := testDB(t)
	want := seedDefaultCatalog(t, db)
	ctx := context.Background()

	got, err := db.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if got.Len() != want.Len() {
		t.Fatalf("LoadCatalog() len = %d, want %d", got.Len(), want.Len())
	}
	for _, d := range want.All() {
		loaded, ok := got.ByID(d.ID)
		if !ok {
			t.Errorf("LoadCatalog() missing id %d", d.ID)
			continue
		}
		if *loaded != *d {
			t.Errorf("LoadCatalog() id %d = %+v, want %+v", d.ID, *loaded, *d)
		}
	}

	// Replacing again is idempotent.
	seedDefaultCatalog(t, db)
	stats, err := db.GetCatalogStats(ctx)
	if err != nil {
		t.Fatalf("GetCatalogStats() error = %v", err)
	}
	if stats.Total != 26 || stats.Gregorian != 10 || stats.Lunar != 16 {
		t.Errorf("GetCatalogStats() = %+v", stats)
	}
	if stats.Public != 9 {
		t.Errorf("GetCatalogStats() public = %d, want 9", stats.Public)
	}
}

func TestLoadCatalog_Empty(t *testing.T) {
	db := testDB(t)

	cat, err := db.LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if cat.Len() != 0 {
		t.Errorf("LoadCatalog() len = %d, want 0", cat.Len())
	}
}

func TestRowFromRecord_RejectsAmbiguous(t *testing.T) {
	spec := &holiday.DateSpec{Month: 1, Day: 1}

	if _, err := RowFromRecord(holiday.Record{ID: 1, Name: "x"}); err == nil {
		t.Error("RowFromRecord() with no date: want error")
	}
	if _, err := RowFromRecord(holiday.Record{ID: 1, Name: "x", Gregorian: spec, Lunar: spec}); err == nil {
		t.Error("RowFromRecord() with both dates: want error")
	}
}
