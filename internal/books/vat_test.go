package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVATSales(t *testing.T) {
	receipts := []Receipt{
		{ReceiptNo: "S2", Date: "2025-03-20", GrandTotal: "214", VAT: "14", Type: KindSale},
		{ReceiptNo: "S1", Date: "2025-03-02", GrandTotal: "107", VAT: "7", Type: KindSale},
		{ReceiptNo: "S3", Date: "2025-04-01", GrandTotal: "107", VAT: "7", Type: KindSale},  // wrong month
		{ReceiptNo: "S4", Date: "2025-03-05", GrandTotal: "100", VAT: "0", Type: KindSale},  // zero VAT
		{ReceiptNo: "P1", Date: "2025-03-06", GrandTotal: "107", VAT: "7", Type: KindPurchase},
		{ReceiptNo: "S5", Date: "2025-03-07", GrandTotal: "107", VAT: "x", Type: KindSale},  // unparseable VAT
	}

	sales := VATSales(receipts, companyTaxID, 2025, 3)
	require.Len(t, sales, 2)
	assert.Equal(t, "S1", sales[0].ReceiptNo, "sorted ascending by date")
	assert.Equal(t, "S2", sales[1].ReceiptNo)
}

func TestVATPurchases_UsesClassifier(t *testing.T) {
	receipts := []Receipt{
		// No explicit type; company is the buyer.
		{ReceiptNo: "P1", Date: "2025-03-02", GrandTotal: "107", VAT: "7", BuyerTaxID: companyTaxID},
		// Company is the vendor: a sale, not a purchase.
		{ReceiptNo: "S1", Date: "2025-03-03", GrandTotal: "107", VAT: "7", VendorTaxID: companyTaxID},
	}

	purchases := VATPurchases(receipts, companyTaxID, 2025, 3)
	require.Len(t, purchases, 1)
	assert.Equal(t, "P1", purchases[0].ReceiptNo)

	sales := VATSales(receipts, companyTaxID, 2025, 3)
	require.Len(t, sales, 1)
	assert.Equal(t, "S1", sales[0].ReceiptNo)
}

func TestVATFilter_EmptyNotNil(t *testing.T) {
	assert.NotNil(t, VATSales(nil, companyTaxID, 2025, 3))
}

func TestVATSales_ZeroYearDoesNotDisableFilter(t *testing.T) {
	receipts := []Receipt{
		{ReceiptNo: "S1", Date: "2024-05-20", GrandTotal: "107", VAT: "7", Type: KindSale},
		{ReceiptNo: "S2", Date: "2025-03-02", GrandTotal: "107", VAT: "7", Type: KindSale},
	}

	sales := VATSales(receipts, companyTaxID, 0, 3)
	require.Len(t, sales, 1)
	assert.Equal(t, "S2", sales[0].ReceiptNo, "a May receipt must not leak into a March report")
}
