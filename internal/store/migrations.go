package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/waritt/goldbooks/internal/books"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		// Receipt log: JSON document per record, identity and filter
		// columns lifted out for indexing.
		`CREATE TABLE IF NOT EXISTS receipts (
			key         TEXT PRIMARY KEY,
			receipt_no  TEXT,
			date        TEXT NOT NULL,
			type        TEXT NOT NULL DEFAULT '',
			uploaded_at TEXT NOT NULL,
			doc         TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_date ON receipts(date)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_type ON receipts(type)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_uploaded ON receipts(uploaded_at)`,

		// Single-document collections: chart of accounts, company profile.
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			doc  TEXT NOT NULL
		)`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	// Seed the default chart and an empty company profile.
	seeds := map[string]any{
		docChart:   books.DefaultChart(),
		docCompany: books.DefaultCompanyProfile(),
	}
	for name, doc := range seeds {
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal seed %s: %w", name, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO documents (name, doc) VALUES (?, ?)`, name, string(data))
		if err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}

	return nil
}
