package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/waritt/goldbooks/internal/books"
	"github.com/waritt/goldbooks/internal/ocr"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, books.ErrReceiptNotFound),
		errors.Is(err, books.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, books.ErrDuplicateReceipt):
		return http.StatusConflict
	case errors.Is(err, books.ErrInvalidReceipt),
		errors.Is(err, books.ErrInvalidAmount),
		errors.Is(err, books.ErrVATExceedsTotal),
		errors.Is(err, books.ErrInvalidPaymentType),
		errors.Is(err, books.ErrInvalidPeriod),
		errors.Is(err, books.ErrInvalidChart),
		errors.Is(err, books.ErrInvalidAccountNumber),
		errors.Is(err, books.ErrInvalidAccountName),
		errors.Is(err, books.ErrInvalidAccountType):
		return http.StatusBadRequest
	case errors.Is(err, ocr.ErrExtraction):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
