package books

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PayCash     PaymentType = "cash"
	PayTransfer PaymentType = "transfer"
)

type ReceiptType string

const (
	KindSale     ReceiptType = "sale"
	KindPurchase ReceiptType = "purchase"
	KindCapital  ReceiptType = "capital"
)

// Product is one line item extracted from a receipt. Quantities and prices
// stay as the decimal strings the extractor produced.
type Product struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Qty      string `json:"qty,omitempty"`
	Price    string `json:"price,omitempty"`
}

// Attachment is metadata for the uploaded receipt image.
type Attachment struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Receipt is the atomic input fact of the books: one scanned or hand-entered
// trade document. Monetary fields are decimal strings as captured.
type Receipt struct {
	ID          string      `json:"id,omitempty"`
	ReceiptNo   string      `json:"receipt_no,omitempty"`
	Date        string      `json:"date" validate:"required"`
	GrandTotal  string      `json:"grand_total" validate:"required"`
	VAT         string      `json:"vat"`
	Vendor      string      `json:"vendor"`
	BuyerName   string      `json:"buyer_name"`
	Category    string      `json:"category"`
	Notes       string      `json:"notes"`
	PaymentType PaymentType `json:"payment_type" validate:"required,oneof=cash transfer"`
	VendorTaxID string      `json:"vendor_tax_id,omitempty"`
	BuyerTaxID  string      `json:"buyer_tax_id,omitempty"`
	Type        ReceiptType `json:"type,omitempty"`
	Products    []Product   `json:"products,omitempty"`
	Attachment  *Attachment `json:"attachment,omitempty"`
	UploadedAt  time.Time   `json:"uploadedAt,omitempty"`
}

// Key is the stable record identity: receipt number when present, otherwise
// the server-assigned record ID.
func (r *Receipt) Key() string {
	if r.ReceiptNo != "" {
		return r.ReceiptNo
	}
	return r.ID
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "2006/01/02"}

// ParsedDate parses the receipt date permissively.
func (r *Receipt) ParsedDate() (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, r.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InPeriod reports whether the receipt date falls in the given calendar
// month/year. A zero year or month leaves that dimension unfiltered; both
// zero matches everything. A receipt whose date cannot be parsed never
// matches an active filter.
func (r *Receipt) InPeriod(year, month int) bool {
	if year == 0 && month == 0 {
		return true
	}
	d, ok := r.ParsedDate()
	if !ok {
		return false
	}
	if year != 0 && d.Year() != year {
		return false
	}
	return month == 0 || int(d.Month()) == month
}

// Amounts returns (grandTotal, vat, net). Unparseable values coerce to zero;
// validated receipts never hit that path, but legacy rows must not poison a
// whole report.
func (r *Receipt) Amounts() (gross, vat, net decimal.Decimal) {
	gross = parseAmount(r.GrandTotal)
	vat = parseAmount(r.VAT)
	return gross, vat, gross.Sub(vat)
}

func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Validate checks receipt invariants beyond struct-tag validation:
// grand_total and vat must be decimals, vat >= 0, grand_total >= vat.
func (r *Receipt) Validate() error {
	gross, err := decimal.NewFromString(r.GrandTotal)
	if err != nil {
		return fmt.Errorf("%w: grand_total %q", ErrInvalidAmount, r.GrandTotal)
	}
	vat := decimal.Zero
	if r.VAT != "" {
		vat, err = decimal.NewFromString(r.VAT)
		if err != nil {
			return fmt.Errorf("%w: vat %q", ErrInvalidAmount, r.VAT)
		}
	}
	if vat.IsNegative() {
		return fmt.Errorf("%w: vat must not be negative", ErrInvalidReceipt)
	}
	if gross.LessThan(vat) {
		return ErrVATExceedsTotal
	}
	if r.PaymentType != PayCash && r.PaymentType != PayTransfer {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentType, r.PaymentType)
	}
	if r.Type != "" && r.Type != KindSale && r.Type != KindPurchase && r.Type != KindCapital {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidReceipt, r.Type)
	}
	if _, ok := r.ParsedDate(); !ok {
		return fmt.Errorf("%w: unparseable date %q", ErrInvalidReceipt, r.Date)
	}
	return nil
}
