package catalog

import (
	"github.com/shopspring/decimal"
)

// AddItemInput represents a request to add an item
type AddItemInput struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit" binding:"max=50"`
	Description string          `json:"description"`
	Taxes       []string        `json:"taxes"`
}

// UpdateItemInput represents a partial item update
type UpdateItemInput struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Price       *decimal.Decimal `json:"price"`
	Unit        *string          `json:"unit" binding:"omitempty,max=50"`
	Description *string          `json:"description"`
	Taxes       []string         `json:"taxes"`
}
