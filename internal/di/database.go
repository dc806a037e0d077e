package di

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goliatone/go-approval/internal/runtimeconfig"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// OpenBunDB wraps sqlDB with the bun dialect named by dialect.
func OpenBunDB(sqlDB *sql.DB, dialect string) (*bun.DB, error) {
	if sqlDB == nil {
		return nil, ErrBunDBRequired
	}
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "", "sqlite", "sqlite3":
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres", "pg":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDialectUnknown, dialect)
	}
}
