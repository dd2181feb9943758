package trade

import (
	"time"
)

// EstimateStatus represents the status of an estimate
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "DRAFT"
	EstimateStatusSent     EstimateStatus = "SENT"
	EstimateStatusAccepted EstimateStatus = "ACCEPTED"
	EstimateStatusRejected EstimateStatus = "REJECTED"
)

// IsValid checks if the status is a valid EstimateStatus
func (s EstimateStatus) IsValid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusSent, EstimateStatusAccepted, EstimateStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of EstimateStatus
func (s EstimateStatus) String() string {
	return string(s)
}

// Estimate is a priced offer sent to a customer before invoicing
type Estimate struct {
	Document
	ExpiryDate time.Time      `json:"expiryDate"`
	Status     EstimateStatus `json:"status"`
}

// NewEstimate wraps a fresh document as a draft estimate
func NewEstimate(doc Document) Estimate {
	return Estimate{
		Document:   doc,
		ExpiryDate: doc.Date,
		Status:     EstimateStatusDraft,
	}
}

// Clone returns a deep copy of the estimate
func (e Estimate) Clone() Estimate {
	e.Document = e.Document.Clone()
	return e
}

// SetStatus overwrites the status. Estimate transitions are unguarded: any
// status may follow any other.
func (e *Estimate) SetStatus(status EstimateStatus, now time.Time) {
	e.Status = status
	e.Touch(now)
}
