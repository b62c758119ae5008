package postgresdb

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alisideas/bookshare/schema"
	"github.com/alisideas/bookshare/sdk/logger"
)

// ErrChecksumMismatch reports an applied migration whose file changed.
var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// Migrate runs all pending migrations from schema/pgmigrations/*.sql files.
// Migrations are applied in alphabetical order (use numeric prefixes: 001_xxx.sql, 002_xxx.sql).
// Already-applied migrations are tracked in the schema_migrations table.
// This is a forward-only migration system - no rollbacks.
func Migrate(ctx context.Context, db DBTX, log *logger.Logger) error {
	if err := StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	log.Info("running database migrations")

	applied, err := RunMigrations(ctx, db, log, schema.MigrationsFS, schema.MigrationsDir)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.Info("migrations complete", "applied", applied)
	return nil
}

// RunMigrations applies the .sql files of dir in fsys and returns how many
// were newly applied.
func RunMigrations(ctx context.Context, db DBTX, log *logger.Logger, fsys fs.FS, dir string) (int, error) {
	if err := createMigrationsTable(ctx, db); err != nil {
		return 0, fmt.Errorf("create migrations table: %w", err)
	}

	files, err := migrationFiles(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("get migration files: %w", err)
	}

	var applied int
	for _, file := range files {
		ok, err := applyMigration(ctx, db, log, fsys, path.Join(dir, file))
		if err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", file, err)
		}
		if ok {
			applied++
		}
	}

	return applied, nil
}

// createMigrationsTable creates the tracking table if it doesn't exist
func createMigrationsTable(ctx context.Context, db DBTX) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.Exec(ctx, query)
	return err
}

// migrationFiles returns the sorted .sql file names of dir.
func migrationFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// Checksum returns the hex sha256 of a migration file.
func Checksum(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// applyMigration applies a single migration if it hasn't been applied yet
func applyMigration(ctx context.Context, db DBTX, log *logger.Logger, fsys fs.FS, file string) (bool, error) {
	version := path.Base(file)

	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return false, fmt.Errorf("read migration file: %w", err)
	}
	checksum := Checksum(content)

	var existing string
	err = db.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", version).Scan(&existing)
	switch {
	case err == nil:
		if existing != checksum {
			return false, fmt.Errorf("%w: %s was modified after being applied (expected %s, got %s)",
				ErrChecksumMismatch, version, existing, checksum)
		}
		log.Debug("migration already applied", "version", version)
		return false, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return false, fmt.Errorf("lookup migration: %w", HandlePgError(err))
	}

	err = InTx(ctx, db, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)", version, checksum); err != nil {
			return fmt.Errorf("record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info("migration applied", "version", version, "checksum", checksum[:8])
	return true, nil
}
