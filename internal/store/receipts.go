package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waritt/goldbooks/internal/books"
	"github.com/waritt/goldbooks/internal/logging"
)

// AppendReceipt validates and appends one receipt to the log. The server
// assigns the upload timestamp and, for receipts without a receipt number,
// a generated record ID that becomes their identity.
func (s *Store) AppendReceipt(ctx context.Context, r *books.Receipt) error {
	if r.UploadedAt.IsZero() {
		r.UploadedAt = time.Now().UTC()
	}
	if r.ID == "" {
		r.ID = uuid.Must(uuid.NewV7()).String()
	}
	if err := r.Validate(); err != nil {
		return err
	}

	key := r.Key()

	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}

	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO receipts (key, receipt_no, date, type, uploaded_at, doc) VALUES (?, ?, ?, ?, ?, ?)`,
		key, r.ReceiptNo, r.Date, string(r.Type), r.UploadedAt.Format(time.RFC3339Nano), string(doc),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", books.ErrDuplicateReceipt, key)
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetReceipt fetches one receipt by identity key (receipt number or generated
// record ID).
func (s *Store) GetReceipt(ctx context.Context, key string) (*books.Receipt, error) {
	var doc string
	err := s.reader.QueryRowContext(ctx,
		`SELECT doc FROM receipts WHERE key = ?`, key,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, books.ErrReceiptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get receipt: %w", err)
	}

	var r books.Receipt
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		return nil, fmt.Errorf("decode receipt %s: %w", key, err)
	}
	return &r, nil
}

// UpdateReceipt merges a partial patch of top-level fields into the stored
// document, re-validates, and writes it back.
func (s *Store) UpdateReceipt(ctx context.Context, key string, patch map[string]json.RawMessage) (*books.Receipt, error) {
	existing, err := s.GetReceipt(ctx, key)
	if err != nil {
		return nil, err
	}

	doc, err := json.Marshal(existing)
	if err != nil {
		return nil, fmt.Errorf("marshal receipt: %w", err)
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(doc, &merged); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	for k, v := range patch {
		merged[k] = v
	}

	patched, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("merge receipt: %w", err)
	}
	var r books.Receipt
	if err := json.Unmarshal(patched, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", books.ErrInvalidReceipt, err)
	}

	// Identity is immutable under patch.
	r.ID = existing.ID
	r.UploadedAt = existing.UploadedAt
	r.ReceiptNo = existing.ReceiptNo
	if err := r.Validate(); err != nil {
		return nil, err
	}

	out, err := json.Marshal(&r)
	if err != nil {
		return nil, fmt.Errorf("marshal receipt: %w", err)
	}
	_, err = s.writer.ExecContext(ctx,
		`UPDATE receipts SET date = ?, type = ?, doc = ? WHERE key = ?`,
		r.Date, string(r.Type), string(out), existing.Key(),
	)
	if err != nil {
		return nil, fmt.Errorf("update receipt: %w", err)
	}
	return &r, nil
}

// DeleteReceipt removes one receipt by identity key.
func (s *Store) DeleteReceipt(ctx context.Context, key string) error {
	res, err := s.writer.ExecContext(ctx,
		`DELETE FROM receipts WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	if n == 0 {
		return books.ErrReceiptNotFound
	}
	return nil
}

// ListReceipts reads the receipt log in date order. A record whose document
// no longer parses is skipped with a warning; one bad row must not take down
// every report.
func (s *Store) ListReceipts(ctx context.Context, filter ReceiptFilter) ([]books.Receipt, error) {
	query := `SELECT key, doc FROM receipts WHERE 1=1`
	args := []any{}

	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(filter.Type))
	}
	if filter.Year > 0 {
		if filter.Month > 0 {
			query += ` AND date LIKE ?`
			args = append(args, fmt.Sprintf("%04d-%02d%%", filter.Year, filter.Month))
		} else {
			query += ` AND date LIKE ?`
			args = append(args, fmt.Sprintf("%04d-%%", filter.Year))
		}
	}

	query += ` ORDER BY date, uploaded_at`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []books.Receipt
	for rows.Next() {
		var key, doc string
		if err := rows.Scan(&key, &doc); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		var r books.Receipt
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			logging.Get().WithField("key", key).WithError(err).Warn("skipping malformed receipt record")
			continue
		}
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint failures in the error text.
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
