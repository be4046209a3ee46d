package books

import "sort"

// VATSales selects the receipts that belong on the period's output-VAT
// report: classified as sales, dated in the month, carrying strictly positive
// VAT. Sorted ascending by date.
func VATSales(receipts []Receipt, companyTaxID string, year, month int) []Receipt {
	return vatFilter(receipts, companyTaxID, KindSale, year, month)
}

// VATPurchases is the input-VAT counterpart of VATSales.
func VATPurchases(receipts []Receipt, companyTaxID string, year, month int) []Receipt {
	return vatFilter(receipts, companyTaxID, KindPurchase, year, month)
}

func vatFilter(receipts []Receipt, companyTaxID string, kind ReceiptType, year, month int) []Receipt {
	out := []Receipt{}
	for _, r := range receipts {
		if Classify(r, companyTaxID) != kind {
			continue
		}
		if !r.InPeriod(year, month) {
			continue
		}
		if !parseAmount(r.VAT).IsPositive() {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, _ := out[i].ParsedDate()
		dj, _ := out[j].ParsedDate()
		return di.Before(dj)
	})
	return out
}
