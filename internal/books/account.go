package books

type AccountType string

const (
	TypeAsset       AccountType = "asset"
	TypeLiability   AccountType = "liability"
	TypeEquity      AccountType = "equity"
	TypeRevenue     AccountType = "revenue"
	TypeExpense     AccountType = "expense"
	TypeContraAsset AccountType = "contra-asset"
	TypeOther       AccountType = "other"
)

var AllTypes = []AccountType{
	TypeAsset,
	TypeLiability,
	TypeEquity,
	TypeRevenue,
	TypeExpense,
	TypeContraAsset,
	TypeOther,
}

type Account struct {
	Number string      `json:"accountNumber"`
	Name   string      `json:"accountName"`
	Type   AccountType `json:"type"`
	Note   string      `json:"note,omitempty"`
}

// Validate checks account invariants.
func (a *Account) Validate() error {
	if a.Number == "" {
		return ErrInvalidAccountNumber
	}
	if a.Name == "" {
		return ErrInvalidAccountName
	}
	if a.Type != "" && !ValidType(a.Type) {
		return ErrInvalidAccountType
	}
	return nil
}

// ValidType checks if an account type string is valid.
func ValidType(t AccountType) bool {
	for _, v := range AllTypes {
		if v == t {
			return true
		}
	}
	return false
}

// TypeLabel returns a human-readable label for an account type.
func TypeLabel(t AccountType) string {
	switch t {
	case TypeAsset:
		return "Assets"
	case TypeLiability:
		return "Liabilities"
	case TypeEquity:
		return "Equity"
	case TypeRevenue:
		return "Revenue"
	case TypeExpense:
		return "Expenses"
	case TypeContraAsset:
		return "Contra Assets"
	case TypeOther:
		return "Other"
	default:
		return string(t)
	}
}

// CreditNormal reports whether a positive balance of the given type sits in
// the credit column. Assets and expenses are debit-normal; liabilities,
// equity, revenue, and contra-assets are credit-normal. Unrecognized types
// fall back to the asset convention.
func CreditNormal(t AccountType) bool {
	switch t {
	case TypeLiability, TypeEquity, TypeRevenue, TypeContraAsset:
		return true
	default:
		return false
	}
}
