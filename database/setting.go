package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/icodeforyou/option-go/types/option"
)

// SettingRow is a stored setting. A NULL value is None.
type SettingRow struct {
	Key       string
	Value     option.Option[string]
	UpdatedAt time.Time
}

// PutSetting inserts or replaces key. None is stored as NULL.
func (d *Database) PutSetting(ctx context.Context, key string, value option.Option[string]) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO setting (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value.SQL(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving setting %s: %w", key, err)
	}
	return nil
}

// GetSetting answers on two levels: the outer Option is None when there is
// no row for key, the inner one is None when the row holds NULL.
func (d *Database) GetSetting(ctx context.Context, key string) (option.Option[option.Option[string]], error) {
	var value sql.Null[string]
	err := d.read.QueryRowContext(ctx, `SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return option.None[option.Option[string]](), nil
	}
	if err != nil {
		return option.None[option.Option[string]](), fmt.Errorf("fetching setting %s: %w", key, err)
	}
	return option.Some(option.FromSQL(value)), nil
}

// LookupSetting is GetSetting without the distinction between a missing
// row and NULL.
func (d *Database) LookupSetting(ctx context.Context, key string) (option.Option[string], error) {
	value, err := d.GetSetting(ctx, key)
	if err != nil {
		return option.None[string](), err
	}
	return option.Flatten(value), nil
}

// DeleteSetting reports whether a row was removed.
func (d *Database) DeleteSetting(ctx context.Context, key string) (bool, error) {
	res, err := d.write.ExecContext(ctx, `DELETE FROM setting WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("deleting setting %s: %w", key, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected by delete of %s: %w", key, err)
	}
	return rows > 0, nil
}

func (d *Database) ListSettings(ctx context.Context) ([]SettingRow, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT key, value, updated_at
		FROM setting
		ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	defer rows.Close()

	var settings []SettingRow
	for rows.Next() {
		var r SettingRow
		var value sql.Null[string]
		var ts string
		if err := rows.Scan(&r.Key, &value, &ts); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		r.Value = option.FromSQL(value)
		r.UpdatedAt, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		settings = append(settings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading setting rows: %w", err)
	}

	return settings, nil
}
