package finance

import (
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/domain/finance"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense-related business operations
type ExpenseService struct {
	clock shared.Clock
	ids   shared.IDGenerator
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(clock shared.Clock, ids shared.IDGenerator) *ExpenseService {
	return &ExpenseService{
		clock: clock,
		ids:   ids,
	}
}

func expenseDefaults(rec shared.Record, in AddExpenseInput) finance.Expense {
	date := in.ExpenseDate
	if date.IsZero() {
		date = rec.CreatedAt
	}
	return finance.Expense{
		Record:            rec,
		Amount:            in.Amount,
		ExpenseCategoryID: in.ExpenseCategoryID,
		ExpenseDate:       date,
		CustomerID:        in.CustomerID,
		Notes:             in.Notes,
		AttachmentReceipt: in.AttachmentReceipt,
	}
}

// List returns the expenses ordered by creation time
func (s *ExpenseService) List(st state.State, includeDeleted bool) []finance.Expense {
	if includeDeleted {
		return shared.Sorted(st.Expenses)
	}
	return shared.Sorted(shared.Active(st.Expenses))
}

// Get returns an expense by ID, or nil
func (s *ExpenseService) Get(st state.State, id string) *finance.Expense {
	e, ok := shared.Find(st.Expenses, id)
	if !ok {
		return nil
	}
	return &e
}

// Total sums the amounts of the active expenses
func (s *ExpenseService) Total(st state.State) decimal.Decimal {
	total := decimal.Zero
	for _, e := range shared.Active(st.Expenses) {
		total = total.Add(e.Amount)
	}
	return total
}

// Add records a new expense
func (s *ExpenseService) Add(st state.State, in AddExpenseInput) (*finance.Expense, state.Delta) {
	e := expenseDefaults(shared.NewRecord(s.ids, s.clock), in)
	return &e, state.Delta{Expenses: shared.Append(st.Expenses, e)}
}

// Update overwrites the fields present in the input
func (s *ExpenseService) Update(st state.State, in UpdateExpenseInput) (*finance.Expense, state.Delta) {
	e, ok := shared.Find(st.Expenses, in.ID)
	if !ok {
		return nil, state.Delta{}
	}

	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.ExpenseCategoryID != nil {
		e.ExpenseCategoryID = *in.ExpenseCategoryID
	}
	if in.ExpenseDate != nil {
		e.ExpenseDate = *in.ExpenseDate
	}
	if in.CustomerID != nil {
		e.CustomerID = *in.CustomerID
	}
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
	if in.AttachmentReceipt != nil {
		e.AttachmentReceipt = *in.AttachmentReceipt
	}
	e.Touch(s.clock.Now())

	return &e, state.Delta{Expenses: shared.Replace(st.Expenses, e)}
}

// Remove soft-deletes the matching expenses
func (s *ExpenseService) Remove(st state.State, ids []string) ([]finance.Expense, state.Delta) {
	next, removed := shared.SoftDelete(st.Expenses, ids, s.clock.Now())
	if removed == nil {
		return nil, state.Delta{}
	}
	return removed, state.Delta{Expenses: next}
}

// UndoRemove restores soft-deleted expenses
func (s *ExpenseService) UndoRemove(st state.State, ids []string) ([]finance.Expense, state.Delta) {
	next, restored := shared.Restore(st.Expenses, ids, s.clock.Now())
	if restored == nil {
		return nil, state.Delta{}
	}
	return restored, state.Delta{Expenses: next}
}
