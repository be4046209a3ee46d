// Package ocr talks to the external receipt extraction service: given a
// receipt image it returns a structured receipt record or fails. Extraction
// failure is hard: no record is ever created from a failed scan.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/waritt/goldbooks/internal/books"
)

// ErrExtraction wraps every failure mode of the extraction service.
var ErrExtraction = errors.New("receipt extraction failed")

// Extractor turns a receipt image into a structured receipt.
type Extractor interface {
	Extract(ctx context.Context, image []byte, contentType string) (*books.Receipt, error)
}

// Unconfigured is an Extractor for deployments with no extraction service;
// every scan fails hard and receipts must be entered manually.
type Unconfigured struct{}

func (Unconfigured) Extract(context.Context, []byte, string) (*books.Receipt, error) {
	return nil, fmt.Errorf("%w: no extraction service configured", ErrExtraction)
}

// Client calls the extraction service over HTTP. The request context governs
// cancellation; the client timeout is the hard ceiling.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Extract(ctx context.Context, image []byte, contentType string) (*books.Receipt, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: service returned status %d", ErrExtraction, resp.StatusCode)
	}

	var receipt books.Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrExtraction, err)
	}
	return &receipt, nil
}
