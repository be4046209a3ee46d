package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountRefResolve(t *testing.T) {
	payMap := map[PaymentType]string{PayCash: "1000", PayTransfer: "1010"}

	single := Ref("1100")
	assert.Equal(t, "1100", single.Resolve(payMap, PayCash))

	disjunct := Ref("1000", "1010")
	assert.Equal(t, "1000", disjunct.Resolve(payMap, PayCash))
	assert.Equal(t, "1010", disjunct.Resolve(payMap, PayTransfer))

	// Unknown payment type falls back to the first alternative.
	assert.Equal(t, "1000", disjunct.Resolve(payMap, "voucher"))
	assert.Equal(t, "", AccountRef{}.Resolve(payMap, PayCash))
}

func TestRulesPaymentAccount(t *testing.T) {
	rules := Rules{PaymentTypeMap: map[PaymentType]string{PayCash: "1005"}}
	assert.Equal(t, "1005", rules.PaymentAccount(PayCash))
	// Unmapped payment types fall back to the built-in defaults.
	assert.Equal(t, DefaultBankAccount, rules.PaymentAccount(PayTransfer))
	assert.Equal(t, DefaultCashAccount, Rules{}.PaymentAccount(PayCash))
}

func TestChartAccountName(t *testing.T) {
	chart := DefaultChart()
	assert.Equal(t, "Inventory", chart.AccountName("1100"))
	assert.Equal(t, "Unknown", chart.AccountName("0000"))
}

func TestChartTypeMap(t *testing.T) {
	chart := &Chart{Accounts: []Account{
		{Number: "1000", Name: "Cash", Type: TypeAsset},
		{Number: "9000", Name: "Untyped"},
	}}
	m := chart.TypeMap()
	assert.Equal(t, TypeAsset, m["1000"])
	_, ok := m["9000"]
	assert.False(t, ok, "blank types are omitted so the default convention applies")
}

func TestDefaultChartRulesResolvable(t *testing.T) {
	chart := DefaultChart()
	for _, rule := range chart.Rules.Purchase {
		assertRuleAccounts(t, chart, rule)
	}
	for _, rule := range chart.Rules.Sale {
		assertRuleAccounts(t, chart, rule)
	}
	for _, rule := range chart.Rules.Capital {
		assertRuleAccounts(t, chart, rule)
	}
}

func assertRuleAccounts(t *testing.T, chart *Chart, rule PostingRule) {
	t.Helper()
	for _, side := range []AccountRef{rule.Debit, rule.Credit} {
		for _, number := range side.Alternatives {
			_, ok := chart.Account(number)
			assert.True(t, ok, "rule references account %s missing from chart", number)
		}
	}
}
