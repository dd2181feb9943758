package setting

import (
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/setting"
)

// UpdateSettingsInput is a shallow patch of the settings record. Nil fields
// are kept; a non-nil Company replaces the whole profile.
type UpdateSettingsInput struct {
	EstimatePrefix  *string                 `json:"estimatePrefix"`
	InvoicePrefix   *string                 `json:"invoicePrefix"`
	PaymentPrefix   *string                 `json:"paymentPrefix"`
	Currency        *string                 `json:"currency"`
	TaxPerItem      *bool                   `json:"taxPerItem"`
	DiscountPerItem *bool                   `json:"discountPerItem"`
	Company         *setting.CompanyProfile `json:"company"`
}

// SettingsService reads and merges the settings record
type SettingsService struct{}

// NewSettingsService creates a new SettingsService
func NewSettingsService() *SettingsService {
	return &SettingsService{}
}

// Get returns the current settings
func (s *SettingsService) Get(st state.State) setting.Settings {
	return st.Settings
}

// Update merges the patch onto the current settings. Values are stored as
// given, without validation.
func (s *SettingsService) Update(st state.State, in UpdateSettingsInput) (*setting.Settings, state.Delta) {
	next := st.Settings

	if in.EstimatePrefix != nil {
		next.EstimatePrefix = *in.EstimatePrefix
	}
	if in.InvoicePrefix != nil {
		next.InvoicePrefix = *in.InvoicePrefix
	}
	if in.PaymentPrefix != nil {
		next.PaymentPrefix = *in.PaymentPrefix
	}
	if in.Currency != nil {
		next.Currency = *in.Currency
	}
	if in.TaxPerItem != nil {
		next.TaxPerItem = *in.TaxPerItem
	}
	if in.DiscountPerItem != nil {
		next.DiscountPerItem = *in.DiscountPerItem
	}
	if in.Company != nil {
		next.Company = *in.Company
	}

	return &next, state.Delta{Settings: &next}
}
