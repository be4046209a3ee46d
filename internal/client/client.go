package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/waritt/goldbooks/internal/books"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateReceipt(ctx context.Context, r *books.Receipt) (*books.Receipt, error) {
	var result books.Receipt
	if err := c.post(ctx, "/api/v1/receipts", r, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListReceipts(ctx context.Context, kind books.ReceiptType, year, month int) ([]books.Receipt, error) {
	params := url.Values{}
	if kind != "" {
		params.Set("type", string(kind))
	}
	addPeriod(params, year, month)

	var result []books.Receipt
	if err := c.get(ctx, "/api/v1/receipts?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetReceipt(ctx context.Context, key string) (*books.Receipt, error) {
	var result books.Receipt
	if err := c.get(ctx, "/api/v1/receipts/"+url.PathEscape(key), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteReceipt(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/receipts/"+url.PathEscape(key), nil, nil)
}

func (c *Client) JournalReport(ctx context.Context, year, month int) ([]books.JournalEntry, error) {
	params := url.Values{}
	addPeriod(params, year, month)

	var result []books.JournalEntry
	if err := c.get(ctx, "/api/v1/reports/journal?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

type TrialBalanceResponse struct {
	Month        string                  `json:"month"`
	TrialBalance []books.TrialBalanceRow `json:"trialBalance"`
}

func (c *Client) TrialBalance(ctx context.Context, month string) (*TrialBalanceResponse, error) {
	params := url.Values{}
	params.Set("month", month)

	var result TrialBalanceResponse
	if err := c.get(ctx, "/api/v1/reports/trial-balance?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type vatSaleResponse struct {
	Sales []books.Receipt `json:"sales"`
}

type vatPurchaseResponse struct {
	Purchases []books.Receipt `json:"purchases"`
}

func (c *Client) VATSaleReport(ctx context.Context, year, month int) ([]books.Receipt, error) {
	params := url.Values{}
	addPeriod(params, year, month)

	var result vatSaleResponse
	if err := c.get(ctx, "/api/v1/reports/vat-sale?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result.Sales, nil
}

func (c *Client) VATPurchaseReport(ctx context.Context, year, month int) ([]books.Receipt, error) {
	params := url.Values{}
	addPeriod(params, year, month)

	var result vatPurchaseResponse
	if err := c.get(ctx, "/api/v1/reports/vat-purchase?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result.Purchases, nil
}

func (c *Client) Chart(ctx context.Context) (*books.Chart, error) {
	var result books.Chart
	if err := c.get(ctx, "/api/v1/chart", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) PatchChart(ctx context.Context, patch map[string]any) (*books.Chart, error) {
	var result books.Chart
	if err := c.do(ctx, http.MethodPatch, "/api/v1/chart", patch, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func addPeriod(params url.Values, year, month int) {
	if year > 0 {
		params.Set("year", fmt.Sprint(year))
	}
	if month > 0 {
		params.Set("month", fmt.Sprint(month))
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("server error (%d)", resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
