package postgres

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"
	"sync"

	"fullapp/internal/errors"

	"github.com/pressly/goose/v3"
)

// migrationLockKey serializes migration runs across processes sharing a database.
const migrationLockKey = "fullapp:migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// RunMigrations applies the embedded schema migrations while holding a session-level advisory lock.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire migration connection")
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock(hashtext($1))", migrationLockKey); err != nil {
		return errors.Wrap(err, "acquire migration advisory lock")
	}
	defer func() {
		if _, err := conn.ExecContext(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock(hashtext($1))", migrationLockKey); err != nil && logger != nil {
			logger.WarnContext(ctx, "Failed to release migration advisory lock", slog.Any("error", err))
		}
	}()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Wrap(err, "migrate up")
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return errors.Wrap(err, "read schema version")
	}
	if logger != nil {
		logger.InfoContext(ctx, "Database migrations applied", slog.Int64("version", version))
	}

	return nil
}
