package books

import "errors"

var (
	ErrInvalidAccountNumber = errors.New("account number is required")
	ErrInvalidAccountName   = errors.New("account name is required")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidReceipt       = errors.New("invalid receipt")
	ErrInvalidChart         = errors.New("invalid chart patch")
	ErrInvalidAmount        = errors.New("amount is not a valid decimal")
	ErrVATExceedsTotal      = errors.New("vat exceeds grand total")
	ErrInvalidPaymentType   = errors.New("invalid payment type")
	ErrInvalidPeriod        = errors.New("invalid reporting period")
	ErrReceiptNotFound      = errors.New("receipt not found")
	ErrDuplicateReceipt     = errors.New("receipt already exists")
	ErrAccountNotFound      = errors.New("account not found")
)
