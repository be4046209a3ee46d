package books

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/waritt/goldbooks/internal/stock"
)

// JournalEntry is one derived debit-or-credit line. Entries are recomputed
// per report request and never stored.
type JournalEntry struct {
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// Period filters receipts to a calendar month and/or year before derivation.
// The zero Period covers everything.
type Period struct {
	Year  int
	Month int
}

// DeriveJournal turns classified receipts into balanced double-entry rows
// against the chart's posting rules, ordered ascending by date with ties kept
// in original receipt order.
//
// Per kind:
//   - purchase: debit inventory with net, debit VAT input with vat, credit
//     the payment account with the grand total.
//   - sale: debit the payment account with the grand total, credit sales with
//     net, credit VAT output with vat; when the stock movement feed carries
//     sale movements for this receipt number, a COGS pair (debit COGS, credit
//     inventory) is added for the summed qty × weighted-average cost.
//   - capital: debit bank, credit owner's equity, both with the grand total.
//
// Receipts without one of the three kinds contribute nothing.
func DeriveJournal(receipts []Receipt, chart *Chart, movements []stock.Movement, p Period) []JournalEntry {
	selected := make([]Receipt, 0, len(receipts))
	for _, r := range receipts {
		if !r.InPeriod(p.Year, p.Month) {
			continue
		}
		selected = append(selected, r)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		di, _ := selected[i].ParsedDate()
		dj, _ := selected[j].ParsedDate()
		return di.Before(dj)
	})

	cogs := cogsByReceipt(movements)

	var entries []JournalEntry
	for _, r := range selected {
		switch r.Type {
		case KindPurchase:
			entries = append(entries, derivePurchase(r, chart)...)
		case KindSale:
			entries = append(entries, deriveSale(r, chart, cogs)...)
		case KindCapital:
			entries = append(entries, deriveCapital(r, chart)...)
		}
	}
	return entries
}

// cogsByReceipt sums qty × weighted-average cost of the feed's sale movements
// per embedded receipt number.
func cogsByReceipt(movements []stock.Movement) map[string]decimal.Decimal {
	costs := make(map[string]decimal.Decimal)
	for _, m := range movements {
		if m.Type != string(KindSale) {
			continue
		}
		docNo := stock.DocNo(m.Desc)
		if docNo == "" {
			continue
		}
		costs[docNo] = costs[docNo].Add(m.Cost())
	}
	return costs
}

func derivePurchase(r Receipt, chart *Chart) []JournalEntry {
	gross, vat, net := r.Amounts()
	rules := chart.Rules
	inventory := rules.debitFor(rules.Purchase, "net", DefaultInventoryAccount)
	vatInput := rules.debitFor(rules.Purchase, "vat", DefaultVATInputAccount)
	payment := rules.PaymentAccount(r.PaymentType)
	desc := describe("Purchase", r.Vendor, r.ReceiptNo)

	return []JournalEntry{
		leg(r.Date, desc, inventory, chart, net, decimal.Zero),
		leg(r.Date, desc, vatInput, chart, vat, decimal.Zero),
		leg(r.Date, desc, payment, chart, decimal.Zero, gross),
	}
}

func deriveSale(r Receipt, chart *Chart, cogs map[string]decimal.Decimal) []JournalEntry {
	gross, vat, net := r.Amounts()
	rules := chart.Rules
	payment := rules.PaymentAccount(r.PaymentType)
	sales := rules.creditFor(rules.Sale, "net", DefaultSalesAccount)
	vatOutput := rules.creditFor(rules.Sale, "vat", DefaultVATOutputAccount)
	desc := describe("Sale", r.BuyerName, r.ReceiptNo)

	entries := []JournalEntry{
		leg(r.Date, desc, payment, chart, gross, decimal.Zero),
		leg(r.Date, desc, sales, chart, decimal.Zero, net),
		leg(r.Date, desc, vatOutput, chart, decimal.Zero, vat),
	}

	// Inventory draw only when the feed knows this receipt; an absent or
	// zero cost must not force a synthetic COGS pair.
	if r.ReceiptNo != "" {
		if cost, ok := cogs[r.ReceiptNo]; ok && cost.IsPositive() {
			cogsAcct := rules.debitFor(rules.Sale, "cogs", DefaultCOGSAccount)
			inventory := rules.creditFor(rules.Sale, "cogs", DefaultInventoryAccount)
			cogsDesc := describe("Cost of goods sold", "", r.ReceiptNo)
			entries = append(entries,
				leg(r.Date, cogsDesc, cogsAcct, chart, cost, decimal.Zero),
				leg(r.Date, cogsDesc, inventory, chart, decimal.Zero, cost),
			)
		}
	}
	return entries
}

func deriveCapital(r Receipt, chart *Chart) []JournalEntry {
	gross, _, _ := r.Amounts()
	rules := chart.Rules
	bank := rules.debitFor(rules.Capital, "", DefaultBankAccount)
	equity := rules.creditFor(rules.Capital, "", DefaultEquityAccount)
	desc := describe("Capital injection", r.Notes, r.ReceiptNo)

	return []JournalEntry{
		leg(r.Date, desc, bank, chart, gross, decimal.Zero),
		leg(r.Date, desc, equity, chart, decimal.Zero, gross),
	}
}

func leg(date, desc, account string, chart *Chart, debit, credit decimal.Decimal) JournalEntry {
	return JournalEntry{
		Date:          date,
		Description:   desc,
		AccountNumber: account,
		AccountName:   chart.AccountName(account),
		Debit:         debit,
		Credit:        credit,
	}
}

func describe(kind, party, receiptNo string) string {
	desc := kind
	if party != "" {
		desc += " - " + party
	}
	if receiptNo != "" {
		desc += " (" + receiptNo + ")"
	}
	return desc
}
