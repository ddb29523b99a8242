package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapponejosh/amlich-api/internal/holiday"
)

// querier is satisfied by both *DB and *Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const holidayColumns = `
	id, name, description, color_class, is_public,
	calendar, month, day, is_leap_month, short_month_fallback,
	created_at, updated_at`

// parseTimestamp parses a SQLite TEXT timestamp, returning the zero time
// when the value is missing or unrecognized.
func parseTimestamp(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return t
		}
	}
	return time.Time{}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHoliday(s rowScanner) (HolidayRow, error) {
	var h HolidayRow
	var calendar string
	var createdAt, updatedAt sql.NullString

	err := s.Scan(
		&h.ID, &h.Name, &h.Description, &h.ColorClass, &h.IsPublic,
		&calendar, &h.Month, &h.Day, &h.IsLeapMonth, &h.ShortMonthFallback,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return HolidayRow{}, err
	}
	h.Calendar = CalendarKind(calendar)
	h.CreatedAt = parseTimestamp(createdAt)
	h.UpdatedAt = parseTimestamp(updatedAt)
	return h, nil
}

// =============================================================================
// Holiday Queries
// =============================================================================

// GetHoliday retrieves one definition row.
// Returns ErrNotFound if the id doesn't exist.
func (db *DB) GetHoliday(ctx context.Context, id int) (*HolidayRow, error) {
	row := db.QueryRowContext(ctx, `SELECT `+holidayColumns+` FROM holiday_definitions WHERE id = ?`, id)
	h, err := scanHoliday(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query holiday %d: %w", id, err)
	}
	return &h, nil
}

// ListHolidays returns every row ordered by id.
func (db *DB) ListHolidays(ctx context.Context) ([]HolidayRow, error) {
	return listHolidays(ctx, db)
}

func listHolidays(ctx context.Context, q querier) ([]HolidayRow, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+holidayColumns+` FROM holiday_definitions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query holidays: %w", err)
	}
	defer rows.Close()

	var out []HolidayRow
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holidays: %w", err)
	}
	return out, nil
}

// CreateHoliday inserts a row.
// Returns ErrDuplicate if the id is taken.
func (db *DB) CreateHoliday(ctx context.Context, h *HolidayRow) error {
	return insertHoliday(ctx, db, h)
}

func insertHoliday(ctx context.Context, q querier, h *HolidayRow) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO holiday_definitions (
			id, name, description, color_class, is_public,
			calendar, month, day, is_leap_month, short_month_fallback
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Description, h.ColorClass, h.IsPublic,
		string(h.Calendar), h.Month, h.Day, h.IsLeapMonth, h.ShortMonthFallback,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert holiday %d: %w", h.ID, err)
	}
	return nil
}

// DeleteHoliday removes a row.
// Returns ErrNotFound if the id doesn't exist.
func (db *DB) DeleteHoliday(ctx context.Context, id int) error {
	result, err := db.ExecContext(ctx, `DELETE FROM holiday_definitions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete holiday %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// Catalog
// =============================================================================

// ReplaceCatalog swaps the stored catalog for the given one in a single
// transaction.
func (db *DB) ReplaceCatalog(ctx context.Context, cat *holiday.Catalog) error {
	records := cat.Records()
	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM holiday_definitions`); err != nil {
			return fmt.Errorf("clear holidays: %w", err)
		}
		for _, r := range records {
			row, err := RowFromRecord(r)
			if err != nil {
				return err
			}
			if err := insertHoliday(ctx, tx, &row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	db.logger.Info("holiday catalog stored", slog.Int("definitions", len(records)))
	return nil
}

// LoadCatalog reads the stored rows and validates them into a catalog.
func (db *DB) LoadCatalog(ctx context.Context) (*holiday.Catalog, error) {
	rows, err := db.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]holiday.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	cat, err := holiday.CatalogFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("stored catalog: %w", err)
	}
	return cat, nil
}

// GetCatalogStats counts the stored definitions.
func (db *DB) GetCatalogStats(ctx context.Context) (*CatalogStats, error) {
	var stats CatalogStats
	err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(calendar = 'gregorian'), 0),
			COALESCE(SUM(calendar = 'lunar'), 0),
			COALESCE(SUM(is_public), 0)
		FROM holiday_definitions
	`).Scan(&stats.Total, &stats.Gregorian, &stats.Lunar, &stats.Public)
	if err != nil {
		return nil, fmt.Errorf("query catalog stats: %w", err)
	}
	return &stats, nil
}
