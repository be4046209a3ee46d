package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptKey(t *testing.T) {
	r := Receipt{ReceiptNo: "R1", ID: "0195f1de-1f2a-7000-8000-000000000000"}
	assert.Equal(t, "R1", r.Key(), "receipt number is the preferred identity")

	r.ReceiptNo = ""
	assert.Equal(t, "0195f1de-1f2a-7000-8000-000000000000", r.Key())

	assert.Equal(t, "", (&Receipt{}).Key())
}

func TestReceiptAmounts(t *testing.T) {
	r := Receipt{GrandTotal: "1070", VAT: "70"}
	gross, vat, net := r.Amounts()
	assertDec(t, "1070", gross)
	assertDec(t, "70", vat)
	assertDec(t, "1000", net)

	// Unparseable values coerce to zero instead of poisoning the report.
	bad := Receipt{GrandTotal: "n/a", VAT: ""}
	gross, vat, net = bad.Amounts()
	assertDec(t, "0", gross)
	assertDec(t, "0", vat)
	assertDec(t, "0", net)
}

func TestReceiptValidate(t *testing.T) {
	valid := Receipt{Date: "2025-03-01", GrandTotal: "107", VAT: "7", PaymentType: PayCash}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Receipt)
		wantErr error
	}{
		{"non-numeric total", func(r *Receipt) { r.GrandTotal = "abc" }, ErrInvalidAmount},
		{"non-numeric vat", func(r *Receipt) { r.VAT = "7%" }, ErrInvalidAmount},
		{"negative vat", func(r *Receipt) { r.VAT = "-1" }, ErrInvalidReceipt},
		{"vat over total", func(r *Receipt) { r.VAT = "200" }, ErrVATExceedsTotal},
		{"bad payment type", func(r *Receipt) { r.PaymentType = "cheque" }, ErrInvalidPaymentType},
		{"bad kind", func(r *Receipt) { r.Type = "refund" }, ErrInvalidReceipt},
		{"bad date", func(r *Receipt) { r.Date = "March 1st" }, ErrInvalidReceipt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), tt.wantErr)
		})
	}
}

func TestReceiptInPeriod(t *testing.T) {
	r := Receipt{Date: "2025-03-15"}
	assert.True(t, r.InPeriod(0, 0), "no filter at all")
	assert.True(t, r.InPeriod(2025, 0), "zero month matches the whole year")
	assert.True(t, r.InPeriod(2025, 3))
	assert.False(t, r.InPeriod(2025, 4))
	assert.False(t, r.InPeriod(2024, 3))

	// A month filter stays active even without a year.
	assert.True(t, r.InPeriod(0, 3))
	assert.False(t, r.InPeriod(0, 5))
	may := Receipt{Date: "2024-05-20"}
	assert.False(t, may.InPeriod(0, 3))

	bad := Receipt{Date: "soon"}
	assert.True(t, bad.InPeriod(0, 0))
	assert.False(t, bad.InPeriod(2025, 3), "unparseable dates never match an active filter")
	assert.False(t, bad.InPeriod(0, 3))
}
