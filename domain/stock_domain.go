package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferencePolicy decides what happens when a recipe points at a record that
// no longer resolves.
type ReferencePolicy string

const (
	PolicyLenient ReferencePolicy = "lenient"
	PolicyStrict  ReferencePolicy = "strict"

	MovementSale = "sale"
)

var (
	MessageSuccessGetMovements = "stock movements retrieved successfully"
	MessageFailedGetMovements  = "failed to retrieve stock movements"
)

func ParseReferencePolicy(s string) ReferencePolicy {
	if ReferencePolicy(s) == PolicyStrict {
		return PolicyStrict
	}
	return PolicyLenient
}

type (
	StockMovement struct {
		ID           string          `json:"id"`
		IngredientID string          `json:"ingredient_id"`
		OrderID      *string         `json:"order_id,omitempty"`
		Type         string          `json:"type"`
		Quantity     decimal.Decimal `json:"quantity"`
		PreviousQty  decimal.Decimal `json:"previous_qty"`
		NewQty       decimal.Decimal `json:"new_qty"`
		Reference    string          `json:"reference"`
		CreatedAt    time.Time       `json:"created_at"`
	}

	// Deduction summarises one stock deduction run for an order.
	Deduction struct {
		OrderID   string           `json:"order_id"`
		Movements []*StockMovement `json:"movements"`
		Skipped   []SkippedRef     `json:"skipped,omitempty"`
		LowStock  []*LowStockAlert `json:"low_stock,omitempty"`
	}

	SkippedRef struct {
		Kind string `json:"kind"`
		ID   string `json:"id"`
	}

	LowStockAlert struct {
		IngredientID string          `json:"ingredient_id"`
		Name         string          `json:"name"`
		Unit         string          `json:"unit"`
		CurrentStock decimal.Decimal `json:"current_stock"`
		MinStock     decimal.Decimal `json:"min_stock"`
	}
)
