package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/waritt/goldbooks/internal/books"
	"github.com/waritt/goldbooks/internal/stock"
	"github.com/waritt/goldbooks/internal/store"
)

// optionalPeriod parses month/year query parameters, both optional. The
// second return is false when a supplied value is not an integer.
func optionalPeriod(r *http.Request) (year, month int, ok bool) {
	q := r.URL.Query()
	var err error
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			return 0, 0, false
		}
	}
	if v := q.Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			return 0, 0, false
		}
	}
	return year, month, true
}

// requirePeriod is optionalPeriod with both parameters mandatory.
func requirePeriod(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	q := r.URL.Query()
	if q.Get("month") == "" || q.Get("year") == "" {
		writeError(w, http.StatusBadRequest, "month and year query parameters are required")
		return 0, 0, false
	}
	year, month, ok = optionalPeriod(r)
	if !ok || year < 1 || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month and year must be valid integers")
		return 0, 0, false
	}
	return year, month, true
}

// deriveJournal assembles the three inputs of journal derivation. Receipts
// and chart are load-bearing: their failure fails the report. The stock feed
// degrades softly: COGS legs are omitted when it is unreachable.
func (s *Server) deriveJournal(r *http.Request, p books.Period) ([]books.JournalEntry, error) {
	ctx := r.Context()

	receipts, err := s.store.ListReceipts(ctx, store.ReceiptFilter{})
	if err != nil {
		return nil, fmt.Errorf("reading receipt log: %w", err)
	}
	chart, err := s.store.Chart(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}

	var taxID string
	if profile, err := s.store.CompanyProfile(ctx); err == nil {
		taxID = profile.TaxID
	} else {
		s.log.WithError(err).Warn("company profile unavailable; classification degraded")
	}
	for i := range receipts {
		receipts[i].Type = books.Classify(receipts[i], taxID)
	}

	var movements []stock.Movement
	if s.feed != nil {
		movements, err = s.feed.Movements(ctx, p.Year, p.Month)
		if err != nil {
			s.log.WithError(err).Warn("stock feed unreachable; COGS legs omitted")
			movements = nil
		}
	}

	return books.DeriveJournal(receipts, chart, movements, p), nil
}

func (s *Server) journalReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := optionalPeriod(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "month and year must be integers")
		return
	}

	entries, err := s.deriveJournal(r, books.Period{Year: year, Month: month})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []books.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) trialBalanceReport(w http.ResponseWriter, r *http.Request) {
	monthParam := r.URL.Query().Get("month")
	if monthParam == "" {
		writeError(w, http.StatusBadRequest, "month query parameter is required")
		return
	}
	period, err := time.Parse("2006-01", monthParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be in YYYY-MM format")
		return
	}

	// The full journal feeds the ledger rows: entries before the month fold
	// into opening balances.
	entries, err := s.deriveJournal(r, books.Period{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	chart, err := s.store.Chart(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	types := chart.TypeMap()
	rows := books.BuildLedgerRows(entries, period.Year(), int(period.Month()), types)
	tb := books.BuildTrialBalance(rows, types)
	if tb == nil {
		tb = []books.TrialBalanceRow{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":        monthParam,
		"trialBalance": tb,
	})
}

func (s *Server) vatSaleReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := requirePeriod(w, r)
	if !ok {
		return
	}
	receipts, err := s.vatReceipts(r, books.KindSale, year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sales": receipts})
}

func (s *Server) vatPurchaseReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := requirePeriod(w, r)
	if !ok {
		return
	}
	receipts, err := s.vatReceipts(r, books.KindPurchase, year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"purchases": receipts})
}

func (s *Server) vatReceipts(r *http.Request, kind books.ReceiptType, year, month int) ([]books.Receipt, error) {
	ctx := r.Context()
	receipts, err := s.store.ListReceipts(ctx, store.ReceiptFilter{})
	if err != nil {
		return nil, fmt.Errorf("reading receipt log: %w", err)
	}

	var taxID string
	if profile, err := s.store.CompanyProfile(ctx); err == nil {
		taxID = profile.TaxID
	}

	var out []books.Receipt
	if kind == books.KindSale {
		out = books.VATSales(receipts, taxID, year, month)
	} else {
		out = books.VATPurchases(receipts, taxID, year, month)
	}
	return out, nil
}
