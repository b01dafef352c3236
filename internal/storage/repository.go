// Package storage keeps an archive of imported bank operations in SQLite,
// so reports can be served without re-reading the original export file.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"moneyview/internal/core"
	"moneyview/internal/source"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// Repository is the SQLite-backed operations archive. It satisfies
// source.Source so the report pipeline can read from it like from any
// file.
type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ source.Source = (*Repository)(nil)

func NewRepository(dbPath string, logger *slog.Logger) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := applySchema(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}, nil
}

// applySchema brings the archive schema up to date from the embedded
// migration files. The migrator gets its own connection so closing it
// cannot touch the repository pool.
func applySchema(dbPath string) error {
	migrations, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		return fmt.Errorf("load schema migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", migrations, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("prepare schema migration: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		m.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	srcErr, dbErr := m.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration connection: %w", dbErr)
	}
	return nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Import stores records in the archive. The full field map is kept as raw
// JSON so records survive a round trip verbatim; the canonical columns
// exist for indexing and ad-hoc inspection.
func (r *Repository) Import(ctx context.Context, records []core.Record) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO operations (operation_date, status, amount, category, description, raw)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	imported := 0
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return imported, fmt.Errorf("encode record: %w", err)
		}

		amount := ""
		if d, err := rec.Amount(); err == nil {
			amount = d.String()
		}

		_, err = stmt.ExecContext(ctx,
			rec.StringOr(core.FieldOperationDate, ""),
			rec.Status(),
			amount,
			rec.Category(),
			rec.Description(),
			string(raw))
		if err != nil {
			return imported, fmt.Errorf("insert record: %w", err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	r.logger.Info("imported operations", "count", imported)
	return imported, nil
}

// Operations implements source.Source by replaying the archived raw
// records in import order.
func (r *Repository) Operations(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT raw FROM operations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		var rec core.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("%w: archived record: %v", source.ErrParse, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return records, nil
}

// Count reports how many operations the archive holds.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return n, nil
}
