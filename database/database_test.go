package database

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/icodeforyou/option-go/types/option"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		db, err := New(context.Background(), path)
		if err != nil {
			t.Fatalf("New() run %d unexpected error: %v", i, err)
		}
		db.Close()
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	if err := db.PutSetting(ctx, "color", option.Some("blue")); err != nil {
		t.Fatalf("PutSetting() unexpected error: %v", err)
	}
	if err := db.PutSetting(ctx, "empty", option.Some("")); err != nil {
		t.Fatalf("PutSetting() unexpected error: %v", err)
	}
	if err := db.PutSetting(ctx, "unset", option.None[string]()); err != nil {
		t.Fatalf("PutSetting() unexpected error: %v", err)
	}

	tests := []struct {
		key      string
		expected option.Option[option.Option[string]]
		flat     option.Option[string]
	}{
		{key: "color", expected: option.Some(option.Some("blue")), flat: option.Some("blue")},
		{key: "empty", expected: option.Some(option.Some("")), flat: option.Some("")},
		{key: "unset", expected: option.Some(option.None[string]()), flat: option.None[string]()},
		{key: "missing", expected: option.None[option.Option[string]](), flat: option.None[string]()},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := db.GetSetting(ctx, tt.key)
			if err != nil {
				t.Fatalf("GetSetting(%q) unexpected error: %v", tt.key, err)
			}
			if got != tt.expected {
				t.Errorf("GetSetting(%q) expected %v, got %v", tt.key, tt.expected, got)
			}

			flat, err := db.LookupSetting(ctx, tt.key)
			if err != nil {
				t.Fatalf("LookupSetting(%q) unexpected error: %v", tt.key, err)
			}
			if flat != tt.flat {
				t.Errorf("LookupSetting(%q) expected %v, got %v", tt.key, tt.flat, flat)
			}
		})
	}
}

func TestPutSettingOverwrites(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	if err := db.PutSetting(ctx, "k", option.Some("a")); err != nil {
		t.Fatal(err)
	}
	if err := db.PutSetting(ctx, "k", option.None[string]()); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetSetting(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got != option.Some(option.None[string]()) {
		t.Errorf("expected Some(None) after overwrite, got %v", got)
	}
}

func TestListAndDeleteSettings(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	for _, key := range []string{"b", "a"} {
		if err := db.PutSetting(ctx, key, option.Some(key+"-value")); err != nil {
			t.Fatal(err)
		}
	}

	settings, err := db.ListSettings(ctx)
	if err != nil {
		t.Fatalf("ListSettings() unexpected error: %v", err)
	}
	if len(settings) != 2 || settings[0].Key != "a" || settings[1].Key != "b" {
		t.Fatalf("ListSettings() expected keys [a b], got %+v", settings)
	}
	if settings[0].Value != option.Some("a-value") {
		t.Errorf("expected Some(a-value), got %v", settings[0].Value)
	}

	deleted, err := db.DeleteSetting(ctx, "a")
	if err != nil || !deleted {
		t.Errorf("DeleteSetting(a) expected true, got %v (%v)", deleted, err)
	}
	deleted, err = db.DeleteSetting(ctx, "a")
	if err != nil || deleted {
		t.Errorf("second DeleteSetting(a) expected false, got %v (%v)", deleted, err)
	}
}

func TestLogEntries(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	levels := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	for i, lvl := range levels {
		err := db.SaveLogEntry(ctx, LogEntryRow{
			Timestamp: time.Now(),
			Level:     int(lvl),
			Message:   fmt.Sprintf("message %d", i),
		})
		if err != nil {
			t.Fatalf("SaveLogEntry() unexpected error: %v", err)
		}
	}

	entries, err := db.GetLogEntries(ctx, slog.LevelWarn, 1, 10)
	if err != nil {
		t.Fatalf("GetLogEntries() unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("GetLogEntries(WARN) expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "message 3" {
		t.Errorf("expected newest entry first, got %q", entries[0].Message)
	}

	entries, err = db.GetLogEntries(ctx, slog.LevelDebug, 2, 3)
	if err != nil {
		t.Fatalf("GetLogEntries() page 2 unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "message 0" {
		t.Errorf("page 2 of 3 expected the oldest entry, got %+v", entries)
	}

	purged, err := db.PurgeLog(ctx, 1)
	if err != nil {
		t.Fatalf("PurgeLog() unexpected error: %v", err)
	}
	if purged != 3 {
		t.Errorf("PurgeLog(1) expected 3 purged rows, got %d", purged)
	}

	entries, err = db.GetLogEntries(ctx, slog.LevelDebug, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Message != "message 3" {
		t.Errorf("expected only the newest entry to survive, got %+v", entries)
	}
}

func TestLogPage(t *testing.T) {
	tests := []struct {
		page, size    int
		limit, offset int
	}{
		{page: 1, size: 20, limit: 20, offset: 0},
		{page: 3, size: 5, limit: 5, offset: 10},
		{page: 0, size: 5, limit: 5, offset: 0},
		{page: 2, size: 0, limit: defaultLogPageSize, offset: defaultLogPageSize},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d size %d", tt.page, tt.size), func(t *testing.T) {
			limit, offset := logPage(tt.page, tt.size)
			if limit != tt.limit || offset != tt.offset {
				t.Errorf("expected limit %d offset %d, got %d %d", tt.limit, tt.offset, limit, offset)
			}
		})
	}
}
