package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Open connects to the configured database. Postgres backs production
// deployments, sqlite keeps development and tests self-contained.
func Open(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case "postgres":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case "sqlite", "":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate creates the schema for all models.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Movie)(nil),
		(*Showtime)(nil),
		(*MoviePhoto)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}

	return nil
}

// IsNotFound reports whether err means "no matching row".
func IsNotFound(err error) bool {
	return stderrors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a uniqueness-constraint
// rejection from either wired driver. Callers treat it as "the record
// exists, fetch it again" rather than a fatal condition.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr pgdriver.Error
	if stderrors.As(err, &pgErr) {
		// SQLSTATE 23505: unique_violation
		return pgErr.Field('C') == "23505"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
