// Package stock consumes the external stock movement feed: pre-aggregated
// inventory movements carrying a running weighted-average cost. The feed is
// read-only input for cost-of-goods-sold derivation; movements are computed
// elsewhere.
package stock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// FlexNumber is a decimal carried as text. The feed emits both quoted and
// bare JSON numbers; anything that fails to parse later coerces to zero.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	s := bytes.Trim(b, `"`)
	if string(s) == "null" {
		s = nil
	}
	*n = FlexNumber(s)
	return nil
}

// Decimal parses the number, reporting false for anything non-numeric.
func (n FlexNumber) Decimal() (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Movement is one inventory movement row.
type Movement struct {
	Type           string     `json:"type"`
	Qty            FlexNumber `json:"qty"`
	BalanceAvgCost FlexNumber `json:"balanceAvgCost"`
	Desc           string     `json:"desc"`
}

// The feed embeds the originating receipt number in the free-text description
// as a token after the Thai document-number keyword.
var docNoRe = regexp.MustCompile(`เอกสารเลขที่\s*(\S+)`)

// DocNo extracts the receipt number embedded in a movement description, or ""
// when the description carries none.
func DocNo(desc string) string {
	m := docNoRe.FindStringSubmatch(desc)
	if m == nil {
		return ""
	}
	return m[1]
}

// Cost is qty × balanceAvgCost. A row whose qty or average cost is not a
// number contributes zero rather than failing.
func (m Movement) Cost() decimal.Decimal {
	qty, ok := m.Qty.Decimal()
	if !ok {
		return decimal.Zero
	}
	avg, ok := m.BalanceAvgCost.Decimal()
	if !ok {
		return decimal.Zero
	}
	return qty.Mul(avg)
}

// Feed supplies stock movements for a reporting period. Zero year means all
// movements; zero month means the whole year.
type Feed interface {
	Movements(ctx context.Context, year, month int) ([]Movement, error)
}

// HTTPFeed reads movements from the stock service's JSON endpoint.
type HTTPFeed struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPFeed(baseURL string, timeout time.Duration) *HTTPFeed {
	return &HTTPFeed{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFeed) Movements(ctx context.Context, year, month int) ([]Movement, error) {
	params := url.Values{}
	if year > 0 {
		params.Set("year", fmt.Sprint(year))
	}
	if month > 0 {
		params.Set("month", fmt.Sprint(month))
	}
	u := f.baseURL
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("stock feed request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stock feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock feed: unexpected status %d", resp.StatusCode)
	}

	var movements []Movement
	if err := json.NewDecoder(resp.Body).Decode(&movements); err != nil {
		return nil, fmt.Errorf("stock feed decode: %w", err)
	}
	return movements, nil
}

// None is a Feed that always reports no movements, for books kept without a
// stock service. Reports derived through it omit COGS legs.
type None struct{}

func (None) Movements(context.Context, int, int) ([]Movement, error) {
	return nil, nil
}
