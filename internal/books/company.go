package books

// CompanyProfile identifies the business whose books these are. The tax ID is
// what the classifier matches receipt tax IDs against.
type CompanyProfile struct {
	TaxID                 string   `json:"tax_id"`
	CompanyName           string   `json:"company_name"`
	AddressLine           string   `json:"address_line,omitempty"`
	PaymentTypes          []string `json:"paymentTypes,omitempty"`
	ProductCategoryShorts []string `json:"productCategoryShorts,omitempty"`
}

// DefaultCompanyProfile seeds a blank profile; classification degrades to
// unknown until a tax ID is configured.
func DefaultCompanyProfile() *CompanyProfile {
	return &CompanyProfile{
		PaymentTypes: []string{string(PayCash), string(PayTransfer)},
	}
}
