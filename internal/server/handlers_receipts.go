package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/waritt/goldbooks/internal/books"
	"github.com/waritt/goldbooks/internal/store"
)

// maxScanBytes bounds uploaded receipt images.
const maxScanBytes = 10 << 20

func (s *Server) createReceipt(w http.ResponseWriter, r *http.Request) {
	var receipt books.Receipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := s.validate.Struct(&receipt); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if receipt.Type == "" {
		receipt.Type = s.classify(r, receipt)
	}

	if err := s.store.AppendReceipt(r.Context(), &receipt); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, &receipt)
}

// classify fills in sale/purchase from the company tax ID. An unavailable
// profile degrades to the unknown classification rather than failing the
// request.
func (s *Server) classify(r *http.Request, receipt books.Receipt) books.ReceiptType {
	profile, err := s.store.CompanyProfile(r.Context())
	if err != nil {
		s.log.WithError(err).Warn("company profile unavailable; classification degraded")
		return books.Classify(receipt, "")
	}
	return books.Classify(receipt, profile.TaxID)
}

func (s *Server) scanReceipt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxScanBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxScanBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading image: "+err.Error())
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Extraction failure is hard: no record is created.
	receipt, err := s.extractor.Extract(r.Context(), image, contentType)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	if receipt.Type == "" {
		receipt.Type = s.classify(r, *receipt)
	}
	receipt.Attachment = &books.Attachment{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        int64(len(image)),
	}

	if err := s.store.AppendReceipt(r.Context(), receipt); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (s *Server) listReceipts(w http.ResponseWriter, r *http.Request) {
	filter := store.ReceiptFilter{}
	if t := r.URL.Query().Get("type"); t != "" {
		filter.Type = books.ReceiptType(t)
	}
	var ok bool
	if filter.Year, filter.Month, ok = optionalPeriod(r); !ok {
		writeError(w, http.StatusBadRequest, "month and year must be integers")
		return
	}

	receipts, err := s.store.ListReceipts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if receipts == nil {
		receipts = []books.Receipt{}
	}
	writeJSON(w, http.StatusOK, receipts)
}

func (s *Server) getReceipt(w http.ResponseWriter, r *http.Request) {
	key, _ := url.PathUnescape(chi.URLParam(r, "key"))
	receipt, err := s.store.GetReceipt(r.Context(), key)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) updateReceipt(w http.ResponseWriter, r *http.Request) {
	key, _ := url.PathUnescape(chi.URLParam(r, "key"))

	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	receipt, err := s.store.UpdateReceipt(r.Context(), key, patch)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) deleteReceipt(w http.ResponseWriter, r *http.Request) {
	key, _ := url.PathUnescape(chi.URLParam(r, "key"))
	if err := s.store.DeleteReceipt(r.Context(), key); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
