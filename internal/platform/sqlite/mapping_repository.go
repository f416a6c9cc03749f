// Package sqlite stores learned payee mappings in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"

	_ "modernc.org/sqlite"
)

// MappingRepository implements categorizer.Repository on SQLite.
type MappingRepository struct {
	db *sql.DB
}

var _ categorizer.Repository = (*MappingRepository)(nil)

// NewMappingRepository opens or creates the database at dbPath and migrates it.
func NewMappingRepository(dbPath string) (*MappingRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &MappingRepository{db: db}, nil
}

func (r *MappingRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *MappingRepository) Load(ctx context.Context) ([]categorizer.Mapping, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payee_key, category_id, category_name, vote_count FROM payee_mappings ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query payee mappings: %w", err)
	}
	defer rows.Close()

	var out []categorizer.Mapping
	for rows.Next() {
		var m categorizer.Mapping
		if err := rows.Scan(&m.Payee, &m.CategoryID, &m.CategoryName, &m.Count); err != nil {
			return nil, fmt.Errorf("scan payee mapping: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Save replaces the whole table in one transaction.
func (r *MappingRepository) Save(ctx context.Context, mappings []categorizer.Mapping) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM payee_mappings`); err != nil {
		return fmt.Errorf("clear payee mappings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO payee_mappings (payee_key, category_id, category_name, vote_count, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range mappings {
		if _, err := stmt.ExecContext(ctx, m.Payee, m.CategoryID, m.CategoryName, m.Count, i); err != nil {
			return fmt.Errorf("insert payee mapping %q: %w", m.Payee, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit payee mappings: %w", err)
	}
	return nil
}
