package books

// Role account defaults used when the chart's posting rules leave a leg
// unconfigured.
const (
	DefaultCashAccount      = "1000"
	DefaultBankAccount      = "1010"
	DefaultInventoryAccount = "1100"
	DefaultVATOutputAccount = "2200"
	DefaultVATInputAccount  = "2210"
	DefaultEquityAccount    = "3000"
	DefaultSalesAccount     = "4000"
	DefaultCOGSAccount      = "5000"
)

// AccountRef names the account a posting leg books to. More than one
// alternative means the leg is payment-type dependent and is resolved against
// the chart's payment type map at posting time.
type AccountRef struct {
	Alternatives []string `json:"alternatives"`
}

// Ref builds a single-account reference.
func Ref(numbers ...string) AccountRef {
	return AccountRef{Alternatives: numbers}
}

// Resolve picks one account number from the alternatives. A lone alternative
// wins outright; otherwise the payment type map's choice is taken when it is
// among the alternatives, falling back to the first alternative.
func (r AccountRef) Resolve(paymentMap map[PaymentType]string, pt PaymentType) string {
	if len(r.Alternatives) == 0 {
		return ""
	}
	if len(r.Alternatives) == 1 {
		return r.Alternatives[0]
	}
	if mapped, ok := paymentMap[pt]; ok {
		for _, alt := range r.Alternatives {
			if alt == mapped {
				return mapped
			}
		}
	}
	return r.Alternatives[0]
}

// PostingRule is one debit/credit pairing for a transaction kind. Condition
// labels which amount the pairing carries ("net", "vat", "cogs"); an empty
// condition means the full grand total.
type PostingRule struct {
	Debit     AccountRef `json:"debit"`
	Credit    AccountRef `json:"credit"`
	Condition string     `json:"condition,omitempty"`
}

// Rules holds the posting configuration for the three transaction kinds.
type Rules struct {
	PaymentTypeMap map[PaymentType]string `json:"paymentTypeMap"`
	Purchase       []PostingRule          `json:"purchase"`
	Sale           []PostingRule          `json:"sale"`
	Capital        []PostingRule          `json:"capital"`
}

// PaymentAccount resolves the cash/bank account for a payment type.
func (r Rules) PaymentAccount(pt PaymentType) string {
	if acct, ok := r.PaymentTypeMap[pt]; ok && acct != "" {
		return acct
	}
	if pt == PayTransfer {
		return DefaultBankAccount
	}
	return DefaultCashAccount
}

func findRule(rules []PostingRule, condition string) (PostingRule, bool) {
	for _, rule := range rules {
		if rule.Condition == condition {
			return rule, true
		}
	}
	return PostingRule{}, false
}

// debitFor returns the debit account of the rule matching condition, or the
// fallback when the rule list does not configure one.
func (r Rules) debitFor(rules []PostingRule, condition, fallback string) string {
	if rule, ok := findRule(rules, condition); ok {
		if acct := rule.Debit.Resolve(r.PaymentTypeMap, ""); acct != "" {
			return acct
		}
	}
	return fallback
}

func (r Rules) creditFor(rules []PostingRule, condition, fallback string) string {
	if rule, ok := findRule(rules, condition); ok {
		if acct := rule.Credit.Resolve(r.PaymentTypeMap, ""); acct != "" {
			return acct
		}
	}
	return fallback
}

// Chart is the chart-of-accounts document: account definitions plus posting
// rules and display labels for the account types.
type Chart struct {
	Accounts   []Account              `json:"accounts"`
	Rules      Rules                  `json:"rules"`
	TypeLabels map[AccountType]string `json:"typeLabels,omitempty"`
}

// Account looks up an account by number.
func (c *Chart) Account(number string) (Account, bool) {
	for _, a := range c.Accounts {
		if a.Number == number {
			return a, true
		}
	}
	return Account{}, false
}

// AccountName returns the account's display name, or "Unknown" when the
// number is not in the chart. A missing account must never drop a posting
// leg; it surfaces as a placeholder instead.
func (c *Chart) AccountName(number string) string {
	if a, ok := c.Account(number); ok {
		return a.Name
	}
	return "Unknown"
}

// TypeMap returns account number → account type for every account in the
// chart. Accounts with a blank type are omitted so they pick up the default
// convention downstream.
func (c *Chart) TypeMap() map[string]AccountType {
	m := make(map[string]AccountType, len(c.Accounts))
	for _, a := range c.Accounts {
		if a.Type != "" {
			m[a.Number] = a.Type
		}
	}
	return m
}

// DefaultChart is the seed chart for a new set of books: a minimal retail
// chart of accounts and the standard posting rules for the three kinds.
func DefaultChart() *Chart {
	return &Chart{
		Accounts: []Account{
			{Number: "1000", Name: "Cash", Type: TypeAsset},
			{Number: "1010", Name: "Bank", Type: TypeAsset},
			{Number: "1100", Name: "Inventory", Type: TypeAsset, Note: "Goods held for sale"},
			{Number: "1200", Name: "Accounts Receivable", Type: TypeAsset},
			{Number: "2100", Name: "Accounts Payable", Type: TypeLiability},
			{Number: "2200", Name: "VAT Output", Type: TypeLiability, Note: "VAT collected on sales"},
			{Number: "2210", Name: "VAT Input", Type: TypeAsset, Note: "VAT paid on purchases"},
			{Number: "3000", Name: "Owner's Equity", Type: TypeEquity},
			{Number: "4000", Name: "Sales", Type: TypeRevenue},
			{Number: "5000", Name: "Cost of Goods Sold", Type: TypeExpense},
			{Number: "5100", Name: "Operating Expenses", Type: TypeExpense},
		},
		Rules: Rules{
			PaymentTypeMap: map[PaymentType]string{
				PayCash:     DefaultCashAccount,
				PayTransfer: DefaultBankAccount,
			},
			Purchase: []PostingRule{
				{Debit: Ref(DefaultInventoryAccount), Credit: Ref(DefaultCashAccount, DefaultBankAccount), Condition: "net"},
				{Debit: Ref(DefaultVATInputAccount), Credit: Ref(DefaultCashAccount, DefaultBankAccount), Condition: "vat"},
			},
			Sale: []PostingRule{
				{Debit: Ref(DefaultCashAccount, DefaultBankAccount), Credit: Ref(DefaultSalesAccount), Condition: "net"},
				{Debit: Ref(DefaultCashAccount, DefaultBankAccount), Credit: Ref(DefaultVATOutputAccount), Condition: "vat"},
				{Debit: Ref(DefaultCOGSAccount), Credit: Ref(DefaultInventoryAccount), Condition: "cogs"},
			},
			Capital: []PostingRule{
				{Debit: Ref(DefaultBankAccount), Credit: Ref(DefaultEquityAccount)},
			},
		},
		TypeLabels: map[AccountType]string{
			TypeAsset:       TypeLabel(TypeAsset),
			TypeLiability:   TypeLabel(TypeLiability),
			TypeEquity:      TypeLabel(TypeEquity),
			TypeRevenue:     TypeLabel(TypeRevenue),
			TypeExpense:     TypeLabel(TypeExpense),
			TypeContraAsset: TypeLabel(TypeContraAsset),
			TypeOther:       TypeLabel(TypeOther),
		},
	}
}
