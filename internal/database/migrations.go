package database

// migrationsSQL contains all database migrations, applied in order by
// version number.
var migrationsSQL = map[int]string{
	1: migrationV1HolidayDefinitions,
}

// migrationV1HolidayDefinitions creates the catalog table. A row holds one
// date rule: calendar selects whether month/day are Gregorian or lunar, and
// the lunar-only flags must be zero on Gregorian rows.
const migrationV1HolidayDefinitions = `
CREATE TABLE IF NOT EXISTS holiday_definitions (
    id INTEGER PRIMARY KEY,

    name TEXT NOT NULL CHECK (name <> ''),
    description TEXT NOT NULL DEFAULT '',
    color_class TEXT NOT NULL DEFAULT '',
    is_public INTEGER NOT NULL DEFAULT 0,

    calendar TEXT NOT NULL CHECK (calendar IN ('gregorian', 'lunar')),
    month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
    day INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31),
    is_leap_month INTEGER NOT NULL DEFAULT 0,
    short_month_fallback INTEGER NOT NULL DEFAULT 0,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    CHECK (calendar = 'lunar' OR (is_leap_month = 0 AND short_month_fallback = 0))
);

CREATE INDEX IF NOT EXISTS idx_holiday_definitions_calendar
    ON holiday_definitions(calendar, month, day);
`
