// Package store persists the receipt log, chart of accounts, and company
// profile in SQLite. Records are JSON documents with a few indexed columns;
// the single-connection writer serializes all mutations per collection while
// readers scale out.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"

	"github.com/waritt/goldbooks/internal/books"
	_ "modernc.org/sqlite"
)

// ReceiptFilter narrows ListReceipts.
type ReceiptFilter struct {
	Type   books.ReceiptType
	Year   int
	Month  int
	Limit  int
	Offset int
}

type Store struct {
	writer *sql.DB
	reader *sql.DB
}

func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(runtime.NumCPU())

	s := &Store{writer: writer, reader: reader}

	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	err1 := s.writer.Close()
	err2 := s.reader.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
