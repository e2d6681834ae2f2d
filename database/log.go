package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

const defaultLogPageSize = 10

type LogEntryRow struct {
	Timestamp time.Time
	Level     int
	Message   string
	Attrs     string
}

func (d *Database) SaveLogEntry(ctx context.Context, r LogEntryRow) error {
	const stmt = `INSERT INTO log (timestamp, level, message, attrs) VALUES (?, ?, ?, ?)`
	if _, err := d.write.ExecContext(ctx, stmt,
		r.Timestamp.UTC().Format(time.RFC3339), r.Level, r.Message, r.Attrs); err != nil {
		return fmt.Errorf("saving log entry: %w", err)
	}
	return nil
}

// logPage turns a 1-based page number into LIMIT and OFFSET. Out of range
// values fall back to the first page and the default size.
func logPage(page, size int) (limit, offset int) {
	if size < 1 {
		size = defaultLogPageSize
	}
	return size, (max(page, 1) - 1) * size
}

// GetLogEntries returns entries at or above minLvl, newest first. page
// starts at 1.
func (d *Database) GetLogEntries(ctx context.Context, minLvl slog.Level, page, pageSize int) ([]LogEntryRow, error) {
	limit, offset := logPage(page, pageSize)
	rows, err := d.read.QueryContext(ctx, `
		SELECT timestamp, level, message, attrs
		FROM log
		WHERE level >= ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		int(minLvl), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetching log entries: %w", err)
	}
	defer rows.Close()

	entries := make([]LogEntryRow, 0, limit)
	for rows.Next() {
		entry, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading log rows: %w", err)
	}
	return entries, nil
}

func scanLogEntry(rows *sql.Rows) (LogEntryRow, error) {
	var (
		entry LogEntryRow
		ts    string
	)
	if err := rows.Scan(&ts, &entry.Level, &entry.Message, &entry.Attrs); err != nil {
		return entry, fmt.Errorf("scanning log entry: %w", err)
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return entry, fmt.Errorf("parsing log timestamp %q: %w", ts, err)
	}
	entry.Timestamp = t
	return entry, nil
}

// PurgeLog deletes everything but the newest keep entries and reports how
// many rows went.
func (d *Database) PurgeLog(ctx context.Context, keep int) (int64, error) {
	res, err := d.write.ExecContext(ctx, `
		DELETE FROM log
		WHERE id <= (SELECT id FROM log ORDER BY id DESC LIMIT 1 OFFSET ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("purging log: %w", err)
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purging log: rows affected: %w", err)
	}
	d.logger.Debug("log purged", slog.Int64("rows", purged), slog.Int("kept", keep))
	return purged, nil
}
