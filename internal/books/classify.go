package books

// Classify decides whether a receipt records a sale or a purchase from the
// company's point of view. An explicit type on the receipt always wins.
// Otherwise the company tax ID is compared against the vendor and buyer tax
// IDs: the company selling means a sale, the company buying means a purchase.
// When neither side matches, or no tax ID is available, the result is the
// empty type and the receipt stays out of journal derivation until corrected.
func Classify(r Receipt, companyTaxID string) ReceiptType {
	switch r.Type {
	case KindSale, KindPurchase, KindCapital:
		return r.Type
	}
	if companyTaxID == "" {
		return ""
	}
	if r.VendorTaxID == companyTaxID {
		return KindSale
	}
	if r.BuyerTaxID == companyTaxID {
		return KindPurchase
	}
	return ""
}
