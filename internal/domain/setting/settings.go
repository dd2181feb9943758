// Package setting holds the application-wide mutable configuration record.
package setting

// CompanyProfile is the issuer block printed on documents
type CompanyProfile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Website        string `json:"website"`
	TaxNumber      string `json:"taxNumber"`
	AddressStreet1 string `json:"addressStreet1"`
	AddressStreet2 string `json:"addressStreet2"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Zip            string `json:"zip"`
	Logo           string `json:"logo"`
}

// Settings is the single configuration record. It is never validated;
// whatever the caller writes is stored as-is.
type Settings struct {
	EstimatePrefix  string         `json:"estimatePrefix"`
	InvoicePrefix   string         `json:"invoicePrefix"`
	PaymentPrefix   string         `json:"paymentPrefix"`
	Currency        string         `json:"currency"`
	TaxPerItem      bool           `json:"taxPerItem"`
	DiscountPerItem bool           `json:"discountPerItem"`
	Company         CompanyProfile `json:"company"`
}

// Default prefixes and currency
const (
	DefaultEstimatePrefix = "EST"
	DefaultInvoicePrefix  = "INV"
	DefaultPaymentPrefix  = "PAY"
	DefaultCurrency       = "USD"
)

// Default returns the settings a fresh installation starts with
func Default() Settings {
	return Settings{
		EstimatePrefix: DefaultEstimatePrefix,
		InvoicePrefix:  DefaultInvoicePrefix,
		PaymentPrefix:  DefaultPaymentPrefix,
		Currency:       DefaultCurrency,
	}
}
