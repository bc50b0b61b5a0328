package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGenerateZReport = "z-report generated successfully"
	MessageSuccessGetZReports     = "z-reports retrieved successfully"
	MessageSuccessDeleteZReport   = "z-report deleted successfully"

	MessageFailedGenerateZReport = "failed to generate z-report"
	MessageFailedGetZReports     = "failed to retrieve z-reports"
	MessageFailedDeleteZReport   = "failed to delete z-report"

	ErrZReportNotFound = NewError(KindNotFound, "z-report not found")
	ErrZReportConflict = NewError(KindInvalidState, "z-report for this date and location is being generated concurrently")
)

type (
	GenerateZReportRequest struct {
		Date       string `json:"date" validate:"required,datetime=2006-01-02"`
		LocationID string `json:"location_id" validate:"omitempty,uuid"`
	}

	PaymentBreakdown struct {
		Method string          `json:"method"`
		Orders int             `json:"orders"`
		Amount decimal.Decimal `json:"amount"`
	}

	ZReport struct {
		ID            string              `json:"id"`
		BusinessDate  string              `json:"business_date"`
		LocationID    *string             `json:"location_id,omitempty"`
		OrderCount    int                 `json:"order_count"`
		VoidedCount   int                 `json:"voided_count"`
		GrossSales    decimal.Decimal     `json:"gross_sales"`
		NetSales      decimal.Decimal     `json:"net_sales"`
		TaxTotal      decimal.Decimal     `json:"tax_total"`
		TipTotal      decimal.Decimal     `json:"tip_total"`
		DiscountTotal decimal.Decimal     `json:"discount_total"`
		Payments      []*PaymentBreakdown `json:"payments"`
		ArchiveKey    string              `json:"archive_key,omitempty"`
		GeneratedBy   string              `json:"generated_by"`
		CreatedAt     time.Time           `json:"created_at"`
	}
)
