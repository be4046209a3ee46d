package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const companyTaxID = "0105561234567"

func TestClassify_ExplicitTypeWins(t *testing.T) {
	r := Receipt{
		Type:        KindSale,
		VendorTaxID: "9999999999999",
		BuyerTaxID:  companyTaxID, // would infer purchase
	}
	assert.Equal(t, KindSale, Classify(r, companyTaxID))

	r.Type = KindCapital
	assert.Equal(t, KindCapital, Classify(r, companyTaxID))
}

func TestClassify_ByTaxID(t *testing.T) {
	tests := []struct {
		name    string
		receipt Receipt
		want    ReceiptType
	}{
		{"company is vendor", Receipt{VendorTaxID: companyTaxID}, KindSale},
		{"company is buyer", Receipt{BuyerTaxID: companyTaxID}, KindPurchase},
		{"neither matches", Receipt{VendorTaxID: "1", BuyerTaxID: "2"}, ""},
		{"no tax ids on receipt", Receipt{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.receipt, companyTaxID))
		})
	}
}

func TestClassify_NoCompanyTaxID(t *testing.T) {
	r := Receipt{VendorTaxID: companyTaxID}
	assert.Equal(t, ReceiptType(""), Classify(r, ""), "missing company tax id degrades to unknown")
}

func TestClassify_Pure(t *testing.T) {
	r := Receipt{BuyerTaxID: companyTaxID}
	first := Classify(r, companyTaxID)
	second := Classify(r, companyTaxID)
	assert.Equal(t, first, second)
	assert.Equal(t, KindPurchase, first)
}
