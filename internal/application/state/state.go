// Package state owns the single authoritative application state and the
// deltas that services produce against it.
package state

import (
	"encoding/json"
	"fmt"

	"github.com/erp/invoicing/internal/domain/catalog"
	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/erp/invoicing/internal/domain/partner"
	"github.com/erp/invoicing/internal/domain/setting"
	"github.com/erp/invoicing/internal/domain/trade"
)

// State holds every collection plus the settings record. Collections are
// treated as immutable: services return replacements through a Delta
// instead of editing them.
type State struct {
	Customers []partner.Customer `json:"customers"`
	Items     []catalog.Item     `json:"items"`
	Taxes     []finance.Tax      `json:"taxes"`
	Expenses  []finance.Expense  `json:"expenses"`
	Payments  []finance.Payment  `json:"payments"`
	Estimates []trade.Estimate   `json:"estimates"`
	Invoices  []trade.Invoice    `json:"invoices"`
	Settings  setting.Settings   `json:"settings"`
}

// Default returns empty collections and default settings
func Default() State {
	return State{
		Customers: []partner.Customer{},
		Items:     []catalog.Item{},
		Taxes:     []finance.Tax{},
		Expenses:  []finance.Expense{},
		Payments:  []finance.Payment{},
		Estimates: []trade.Estimate{},
		Invoices:  []trade.Invoice{},
		Settings:  setting.Default(),
	}
}

// Apply returns a copy of s with every collection named by d replaced
func (s State) Apply(d Delta) State {
	if d.Customers != nil {
		s.Customers = d.Customers
	}
	if d.Items != nil {
		s.Items = d.Items
	}
	if d.Taxes != nil {
		s.Taxes = d.Taxes
	}
	if d.Expenses != nil {
		s.Expenses = d.Expenses
	}
	if d.Payments != nil {
		s.Payments = d.Payments
	}
	if d.Estimates != nil {
		s.Estimates = d.Estimates
	}
	if d.Invoices != nil {
		s.Invoices = d.Invoices
	}
	if d.Settings != nil {
		s.Settings = *d.Settings
	}
	return s
}

// Encode serializes the whole state as one JSON document
func Encode(s State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Decode reads a stored state over Default so that any missing field keeps
// its default value
func Decode(data []byte) (State, error) {
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to decode state: %w", err)
	}
	s.fillEmpty()
	return s, nil
}

// fillEmpty replaces collections stored as null with empty ones
func (s *State) fillEmpty() {
	if s.Customers == nil {
		s.Customers = []partner.Customer{}
	}
	if s.Items == nil {
		s.Items = []catalog.Item{}
	}
	if s.Taxes == nil {
		s.Taxes = []finance.Tax{}
	}
	if s.Expenses == nil {
		s.Expenses = []finance.Expense{}
	}
	if s.Payments == nil {
		s.Payments = []finance.Payment{}
	}
	if s.Estimates == nil {
		s.Estimates = []trade.Estimate{}
	}
	if s.Invoices == nil {
		s.Invoices = []trade.Invoice{}
	}
}
