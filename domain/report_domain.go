package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CogsStrategy names how cost of goods sold is derived for a summary.
type CogsStrategy string

const (
	CogsRecipe CogsStrategy = "recipe"
	CogsFlat   CogsStrategy = "flat"

	PrimeCostHealthy  = "healthy"
	PrimeCostWarning  = "warning"
	PrimeCostCritical = "critical"
)

var (
	MessageSuccessGetReport = "report retrieved successfully"
	MessageFailedGetReport  = "failed to retrieve report"

	ErrLocationNotFound = NewError(KindNotFound, "location not found")
	ErrUnknownCogs      = NewError(KindInvalid, "unknown cogs strategy")
)

func ParseCogsStrategy(s string) (CogsStrategy, error) {
	switch CogsStrategy(s) {
	case CogsRecipe, CogsFlat:
		return CogsStrategy(s), nil
	default:
		return "", Errorf(ErrUnknownCogs, "%q", s)
	}
}

type (
	ReportFilter struct {
		Range      DateRange
		StaffID    string
		LocationID string
		Cogs       CogsStrategy
	}

	ItemProfitability struct {
		MenuItemID    string          `json:"menu_item_id"`
		Name          string          `json:"name"`
		CategoryID    string          `json:"category_id,omitempty"`
		Quantity      int             `json:"quantity"`
		Revenue       decimal.Decimal `json:"revenue"`
		Cost          decimal.Decimal `json:"cost"`
		Profit        decimal.Decimal `json:"profit"`
		MarginPercent decimal.Decimal `json:"margin_percent"`
	}

	CategoryProfitability struct {
		CategoryID    string          `json:"category_id"`
		Name          string          `json:"name"`
		Quantity      int             `json:"quantity"`
		Revenue       decimal.Decimal `json:"revenue"`
		Cost          decimal.Decimal `json:"cost"`
		Profit        decimal.Decimal `json:"profit"`
		MarginPercent decimal.Decimal `json:"margin_percent"`
	}

	ProfitabilitySummary struct {
		CogsStrategy        string          `json:"cogs_strategy"`
		TotalRevenue        decimal.Decimal `json:"total_revenue"`
		TotalCost           decimal.Decimal `json:"total_cost"`
		GrossProfit         decimal.Decimal `json:"gross_profit"`
		ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`
		TotalOrders         int             `json:"total_orders"`
	}

	PrimeCost struct {
		Revenue             decimal.Decimal `json:"revenue"`
		FoodCost            decimal.Decimal `json:"food_cost"`
		LabourCost          decimal.Decimal `json:"labour_cost"`
		PrimeCostAmount     decimal.Decimal `json:"prime_cost_amount"`
		PrimeCostPercentage decimal.Decimal `json:"prime_cost_percentage"`
		TargetPercentage    decimal.Decimal `json:"target_percentage"`
		Status              string          `json:"status"`
	}

	DailyProfit struct {
		Date                string          `json:"date"`
		Revenue             decimal.Decimal `json:"revenue"`
		Cost                decimal.Decimal `json:"cost"`
		Profit              decimal.Decimal `json:"profit"`
		ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`
		Orders              int             `json:"orders"`
	}

	DailyPrimeCost struct {
		Date string `json:"date"`
		PrimeCost
	}

	LocationReport struct {
		LocationID          string          `json:"location_id"`
		LocationName        string          `json:"location_name"`
		Revenue             decimal.Decimal `json:"revenue"`
		FoodCost            decimal.Decimal `json:"food_cost"`
		LabourCost          decimal.Decimal `json:"labour_cost"`
		GrossProfit         decimal.Decimal `json:"gross_profit"`
		NetProfit           decimal.Decimal `json:"net_profit"`
		ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`
		TotalOrders         int             `json:"total_orders"`
	}

	ConsolidatedReport struct {
		Locations []*LocationReport `json:"locations"`
		Totals    LocationReport    `json:"totals"`
		From      *time.Time        `json:"date_from,omitempty"`
		To        *time.Time        `json:"date_to,omitempty"`
	}
)
