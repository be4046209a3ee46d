package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/waritt/goldbooks/internal/books"
)

const (
	docChart   = "chart"
	docCompany = "company"
)

// Chart reads the chart-of-accounts document. A missing document yields the
// default chart rather than an error.
func (s *Store) Chart(ctx context.Context) (*books.Chart, error) {
	var chart books.Chart
	ok, err := s.getDocument(ctx, docChart, &chart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return books.DefaultChart(), nil
	}
	return &chart, nil
}

// PatchChart merges a partial patch into the chart document. Only the
// top-level keys present in the patch (accounts, rules, typeLabels) are
// replaced; absent keys keep their stored value.
func (s *Store) PatchChart(ctx context.Context, patch map[string]json.RawMessage) (*books.Chart, error) {
	current, err := s.Chart(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("marshal chart: %w", err)
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(doc, &merged); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	for k, v := range patch {
		switch k {
		case "accounts", "rules", "typeLabels":
			merged[k] = v
		}
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("merge chart: %w", err)
	}
	var chart books.Chart
	if err := json.Unmarshal(out, &chart); err != nil {
		return nil, fmt.Errorf("%w: %v", books.ErrInvalidChart, err)
	}
	for i := range chart.Accounts {
		if err := chart.Accounts[i].Validate(); err != nil {
			return nil, err
		}
	}

	if err := s.putDocument(ctx, docChart, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}

// CompanyProfile reads the company profile document; missing yields the
// default (blank tax ID).
func (s *Store) CompanyProfile(ctx context.Context) (*books.CompanyProfile, error) {
	var profile books.CompanyProfile
	ok, err := s.getDocument(ctx, docCompany, &profile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return books.DefaultCompanyProfile(), nil
	}
	return &profile, nil
}

// PutCompanyProfile replaces the company profile document.
func (s *Store) PutCompanyProfile(ctx context.Context, p *books.CompanyProfile) error {
	return s.putDocument(ctx, docCompany, p)
}

func (s *Store) getDocument(ctx context.Context, name string, v any) (bool, error) {
	var doc string
	err := s.reader.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get document %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return false, fmt.Errorf("decode document %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) putDocument(ctx context.Context, name string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", name, err)
	}
	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO documents (name, doc) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET doc = excluded.doc`, name, string(doc))
	if err != nil {
		return fmt.Errorf("put document %s: %w", name, err)
	}
	return nil
}
