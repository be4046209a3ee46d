package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waritt/goldbooks/internal/books"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReceipt(no string) *books.Receipt {
	return &books.Receipt{
		ReceiptNo:   no,
		Date:        "2025-03-10",
		GrandTotal:  "1070",
		VAT:         "70",
		Vendor:      "Gold Supply Co",
		PaymentType: books.PayCash,
		Type:        books.KindPurchase,
	}
}

func TestAppendAndGetReceipt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := sampleReceipt("R1")
	require.NoError(t, s.AppendReceipt(ctx, r))
	assert.False(t, r.UploadedAt.IsZero(), "append assigns the upload timestamp")

	got, err := s.GetReceipt(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, "1070", got.GrandTotal)
	assert.Equal(t, books.KindPurchase, got.Type)

	_, err = s.GetReceipt(ctx, "missing")
	assert.ErrorIs(t, err, books.ErrReceiptNotFound)
}

func TestAppendReceipt_DuplicateKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendReceipt(ctx, sampleReceipt("R1")))
	err := s.AppendReceipt(ctx, sampleReceipt("R1"))
	assert.ErrorIs(t, err, books.ErrDuplicateReceipt)
}

func TestAppendReceipt_GeneratedIdentity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := sampleReceipt("")
	require.NoError(t, s.AppendReceipt(ctx, r))
	_, err := uuid.Parse(r.ID)
	require.NoError(t, err, "a receipt without a number gets a generated record ID")
	assert.Equal(t, r.ID, r.Key())

	got, err := s.GetReceipt(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.GrandTotal, got.GrandTotal)
	assert.Equal(t, r.ID, got.ID, "the record ID round-trips through the log")

	// A caller-supplied ID is kept, not regenerated.
	other := sampleReceipt("")
	other.Date = "2025-03-11"
	other.ID = "0195f1de-1f2a-7000-8000-000000000000"
	require.NoError(t, s.AppendReceipt(ctx, other))
	assert.Equal(t, "0195f1de-1f2a-7000-8000-000000000000", other.ID)
}

func TestAppendReceipt_RejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	r := sampleReceipt("R1")
	r.GrandTotal = "not-a-number"
	assert.ErrorIs(t, s.AppendReceipt(context.Background(), r), books.ErrInvalidAmount)
}

func TestUpdateReceipt_PartialPatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.AppendReceipt(ctx, sampleReceipt("R1")))

	patch := map[string]json.RawMessage{
		"grand_total": json.RawMessage(`"2140"`),
		"vat":         json.RawMessage(`"140"`),
		"id":          json.RawMessage(`"forged"`),
	}
	updated, err := s.UpdateReceipt(ctx, "R1", patch)
	require.NoError(t, err)
	assert.Equal(t, "2140", updated.GrandTotal)
	assert.Equal(t, "Gold Supply Co", updated.Vendor, "untouched fields survive the patch")
	assert.Equal(t, "R1", updated.ReceiptNo, "identity is immutable under patch")
	assert.NotEqual(t, "forged", updated.ID)

	// Invalid patched state is rejected without effect.
	_, err = s.UpdateReceipt(ctx, "R1", map[string]json.RawMessage{
		"vat": json.RawMessage(`"9999"`),
	})
	assert.ErrorIs(t, err, books.ErrVATExceedsTotal)

	got, err := s.GetReceipt(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, "140", got.VAT)
}

func TestDeleteReceipt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.AppendReceipt(ctx, sampleReceipt("R1")))

	require.NoError(t, s.DeleteReceipt(ctx, "R1"))
	_, err := s.GetReceipt(ctx, "R1")
	assert.ErrorIs(t, err, books.ErrReceiptNotFound)

	assert.ErrorIs(t, s.DeleteReceipt(ctx, "R1"), books.ErrReceiptNotFound)
}

func TestListReceipts_FilterAndOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	second := sampleReceipt("R2")
	second.Date = "2025-03-20"
	sale := sampleReceipt("S1")
	sale.Type = books.KindSale
	sale.Date = "2025-04-02"
	require.NoError(t, s.AppendReceipt(ctx, second))
	require.NoError(t, s.AppendReceipt(ctx, sampleReceipt("R1")))
	require.NoError(t, s.AppendReceipt(ctx, sale))

	all, err := s.ListReceipts(ctx, ReceiptFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "R1", all[0].ReceiptNo, "date order")

	march, err := s.ListReceipts(ctx, ReceiptFilter{Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.Len(t, march, 2)

	sales, err := s.ListReceipts(ctx, ReceiptFilter{Type: books.KindSale})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "S1", sales[0].ReceiptNo)
}

func TestListReceipts_SkipsMalformedRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.AppendReceipt(ctx, sampleReceipt("R1")))

	// Corrupt one stored document directly.
	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO receipts (key, receipt_no, date, type, uploaded_at, doc)
		 VALUES ('bad', 'bad', '2025-03-11', 'purchase', '2025-03-11T00:00:00Z', '{truncated')`)
	require.NoError(t, err)

	receipts, err := s.ListReceipts(ctx, ReceiptFilter{})
	require.NoError(t, err, "a malformed record must not fail the read")
	require.Len(t, receipts, 1)
	assert.Equal(t, "R1", receipts[0].ReceiptNo)
}
