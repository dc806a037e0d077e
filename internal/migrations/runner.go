package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
)

var (
	ErrDatabaseRequired   = errors.New("migrations: database is required")
	ErrFilesystemRequired = errors.New("migrations: filesystem is required")
	ErrDialectUnsupported = errors.New("migrations: unsupported dialect")
)

// Runner applies the embedded schema for one dialect.
type Runner struct {
	provider *goose.Provider
	dialect  string
}

// NewRunner builds a runner over fsys. fsys holds one directory per dialect
// ("sqlite", "postgres") containing goose annotated SQL files.
func NewRunner(db *sql.DB, fsys fs.FS, dialect string) (*Runner, error) {
	if db == nil {
		return nil, ErrDatabaseRequired
	}
	if fsys == nil {
		return nil, ErrFilesystemRequired
	}

	gooseDialect, dir, err := resolveDialect(dialect)
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("migrations: open %s: %w", dir, err)
	}
	provider, err := goose.NewProvider(gooseDialect, db, sub)
	if err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return &Runner{provider: provider, dialect: dir}, nil
}

// Dialect returns the migration directory in use.
func (r *Runner) Dialect() string {
	return r.dialect
}

// Up applies every pending migration and returns the applied versions.
func (r *Runner) Up(ctx context.Context) ([]int64, error) {
	results, err := r.provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: up: %w", err)
	}
	return versions(results), nil
}

// Down rolls back the most recent migration.
func (r *Runner) Down(ctx context.Context) (int64, error) {
	result, err := r.provider.Down(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations: down: %w", err)
	}
	if result == nil || result.Source == nil {
		return 0, nil
	}
	return result.Source.Version, nil
}

// Version reports the latest applied migration, 0 when none ran.
func (r *Runner) Version(ctx context.Context) (int64, error) {
	return r.provider.GetDBVersion(ctx)
}

func versions(results []*goose.MigrationResult) []int64 {
	out := make([]int64, 0, len(results))
	for _, result := range results {
		if result == nil || result.Source == nil {
			continue
		}
		out = append(out, result.Source.Version)
	}
	return out
}

func resolveDialect(dialect string) (goose.Dialect, string, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "", "sqlite", "sqlite3":
		return goose.DialectSQLite3, "sqlite", nil
	case "postgres", "pg", "postgresql":
		return goose.DialectPostgres, "postgres", nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrDialectUnsupported, dialect)
	}
}
