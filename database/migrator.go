package database

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strconv"
)

//go:embed migrations
var embeddedMigrations embed.FS

var migrationName = regexp.MustCompile(`^(\d+)[-_].*\.sql$`)

// migration is one numbered schema step. Its version is written to
// PRAGMA user_version in the same transaction as its statements.
type migration struct {
	version int
	file    string
}

// pendingMigrations lists the .sql files in dir of fsys with a version
// above applied, ordered by version.
func pendingMigrations(fsys fs.FS, dir string, applied int) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	seen := make(map[int]string)
	var pending []migration
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		m := migrationName.FindStringSubmatch(e.Name())
		if m == nil {
			return nil, fmt.Errorf("migration %s: name must start with a version number", e.Name())
		}
		version, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", e.Name(), err)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", other, e.Name(), version)
		}
		seen[version] = e.Name()
		if version > applied {
			pending = append(pending, migration{version: version, file: path.Join(dir, e.Name())})
		}
	}

	slices.SortFunc(pending, func(a, b migration) int { return cmp.Compare(a.version, b.version) })
	return pending, nil
}

// migrate brings the schema up to the newest embedded migration.
func (d *Database) migrate(ctx context.Context) error {
	var applied int
	if err := d.read.QueryRowContext(ctx, "PRAGMA user_version").Scan(&applied); err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	pending, err := pendingMigrations(embeddedMigrations, "migrations", applied)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if err := d.apply(ctx, embeddedMigrations, m); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) apply(ctx context.Context, fsys fs.FS, m migration) (err error) {
	stmts, err := fs.ReadFile(fsys, m.file)
	if err != nil {
		return fmt.Errorf("read migration %d: %w", m.version, err)
	}

	d.logger.Debug("applying migration", slog.Int("version", m.version), slog.String("file", m.file))

	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.version, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback migration %d: %w", m.version, rbErr))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, string(stmts)); err != nil {
		return fmt.Errorf("apply migration %d: %w", m.version, err)
	}
	// PRAGMA does not take bind parameters
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("set user_version to %d: %w", m.version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.version, err)
	}
	return nil
}
