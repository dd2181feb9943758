package trade

import (
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/domain/trade"
)

// EstimateService handles estimate-related business operations
type EstimateService struct {
	documentEngine
}

// NewEstimateService creates a new EstimateService. A nil calculator uses
// the default calculation rules.
func NewEstimateService(calc *trade.Calculator, clock shared.Clock, ids shared.IDGenerator) *EstimateService {
	return &EstimateService{documentEngine: newDocumentEngine(calc, clock, ids)}
}

// List returns the estimates ordered by creation time
func (s *EstimateService) List(st state.State, includeDeleted bool) []trade.Estimate {
	if includeDeleted {
		return shared.Sorted(st.Estimates)
	}
	return shared.Sorted(shared.Active(st.Estimates))
}

// Get returns an estimate by ID, or nil
func (s *EstimateService) Get(st state.State, id string) *trade.Estimate {
	est, ok := shared.Find(st.Estimates, id)
	if !ok {
		return nil
	}
	return &est
}

// Create materializes a draft estimate numbered after the current count
func (s *EstimateService) Create(st state.State, in CreateEstimateInput) (*trade.Estimate, state.Delta) {
	number := shared.SequenceNumber(st.Settings.EstimatePrefix, len(st.Estimates))
	est := trade.NewEstimate(s.newDocument(st, number, in.DocumentInput))
	if in.ExpiryDate != nil {
		est.ExpiryDate = *in.ExpiryDate
	}
	return &est, state.Delta{Estimates: shared.Append(st.Estimates, est)}
}

// Update applies the present fields and recalculates every derived amount
func (s *EstimateService) Update(st state.State, in UpdateEstimateInput) (*trade.Estimate, state.Delta) {
	return s.edit(st, in.ID, func(est *trade.Estimate) bool {
		applyPatch(&est.Document, in.DocumentPatch)
		if in.ExpiryDate != nil {
			est.ExpiryDate = *in.ExpiryDate
		}
		if in.Status != nil {
			est.Status = *in.Status
		}
		return true
	})
}

// AddLineItem prices a new line, appends it and recalculates the estimate
func (s *EstimateService) AddLineItem(st state.State, estimateID string, in LineItemInput) (*trade.Estimate, state.Delta) {
	return s.edit(st, estimateID, func(est *trade.Estimate) bool {
		s.addLine(st, &est.Document, in)
		return true
	})
}

// UpdateLineItem edits one line and recalculates the estimate. It returns
// nil when either the estimate or the line does not exist.
func (s *EstimateService) UpdateLineItem(st state.State, estimateID, lineID string, in UpdateLineItemInput) (*trade.Estimate, state.Delta) {
	return s.edit(st, estimateID, func(est *trade.Estimate) bool {
		return s.updateLine(&est.Document, lineID, in)
	})
}

// RemoveLineItem drops one line and recalculates the estimate
func (s *EstimateService) RemoveLineItem(st state.State, estimateID, lineID string) (*trade.Estimate, state.Delta) {
	return s.edit(st, estimateID, func(est *trade.Estimate) bool {
		return est.RemoveLine(lineID)
	})
}

// edit runs fn on a private clone of the estimate and, when fn reports a
// change, recalculates and splices it back
func (s *EstimateService) edit(st state.State, id string, fn func(*trade.Estimate) bool) (*trade.Estimate, state.Delta) {
	found, ok := shared.Find(st.Estimates, id)
	if !ok {
		return nil, state.Delta{}
	}
	est := found.Clone()
	if !fn(&est) {
		return nil, state.Delta{}
	}
	s.recalculate(st, &est.Document)
	return &est, state.Delta{Estimates: shared.Replace(st.Estimates, est)}
}

// Remove soft-deletes the matching estimates
func (s *EstimateService) Remove(st state.State, ids []string) ([]trade.Estimate, state.Delta) {
	next, removed := shared.SoftDelete(st.Estimates, ids, s.clock.Now())
	if removed == nil {
		return nil, state.Delta{}
	}
	return removed, state.Delta{Estimates: next}
}

// UndoRemove restores soft-deleted estimates
func (s *EstimateService) UndoRemove(st state.State, ids []string) ([]trade.Estimate, state.Delta) {
	next, restored := shared.Restore(st.Estimates, ids, s.clock.Now())
	if restored == nil {
		return nil, state.Delta{}
	}
	return restored, state.Delta{Estimates: next}
}

// MarkSent sets SENT on every matching estimate
func (s *EstimateService) MarkSent(st state.State, ids []string) ([]trade.Estimate, state.Delta) {
	return s.mark(st, ids, trade.EstimateStatusSent)
}

// MarkAccepted sets ACCEPTED on every matching estimate, whatever its
// current status
func (s *EstimateService) MarkAccepted(st state.State, ids []string) ([]trade.Estimate, state.Delta) {
	return s.mark(st, ids, trade.EstimateStatusAccepted)
}

// MarkRejected sets REJECTED on every matching estimate
func (s *EstimateService) MarkRejected(st state.State, ids []string) ([]trade.Estimate, state.Delta) {
	return s.mark(st, ids, trade.EstimateStatusRejected)
}

// mark overwrites the status of the matching estimates. Unknown IDs are
// ignored; no match yields an empty list.
func (s *EstimateService) mark(st state.State, ids []string, status trade.EstimateStatus) ([]trade.Estimate, state.Delta) {
	now := s.clock.Now()
	next, changed := shared.Modify(st.Estimates, ids, func(est *trade.Estimate) bool {
		est.SetStatus(status, now)
		return true
	})
	if changed == nil {
		return []trade.Estimate{}, state.Delta{}
	}
	return changed, state.Delta{Estimates: next}
}
