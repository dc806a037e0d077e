package approval

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/goliatone/go-approval/internal/migrations"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files, one directory per
// dialect ("sqlite", "postgres").
func GetMigrationsFS() fs.FS {
	sub, err := fs.Sub(migrationsFS, "data/sql/migrations")
	if err != nil {
		return migrationsFS
	}
	return sub
}

// ApplyMigrations runs every pending migration for dialect against db and
// returns the applied versions.
func ApplyMigrations(ctx context.Context, db *sql.DB, dialect string) ([]int64, error) {
	runner, err := migrations.NewRunner(db, GetMigrationsFS(), dialect)
	if err != nil {
		return nil, err
	}
	return runner.Up(ctx)
}
