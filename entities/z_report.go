package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"time"
)

const ZReportAllLocations = "all"

type ZReportPayment struct {
	Method string          `json:"method"`
	Orders int             `json:"orders"`
	Amount decimal.Decimal `json:"amount"`
}

// ZReport is the stored end-of-day reconciliation for one business date and location.
//
// ScopeKey is the location id, or ZReportAllLocations for a report that spans
// every location. A NULL location would not collide in a unique index.
type ZReport struct {
	ID            uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessDate  time.Time                            `gorm:"not null;uniqueIndex:idx_z_reports_day_scope,priority:1" json:"business_date"`
	LocationID    *uuid.UUID                           `gorm:"type:uuid;index" json:"location_id,omitempty"`
	ScopeKey      string                               `gorm:"size:36;not null;uniqueIndex:idx_z_reports_day_scope,priority:2" json:"-"`
	OrderCount    int                                  `gorm:"not null;default:0" json:"order_count"`
	VoidedCount   int                                  `gorm:"not null;default:0" json:"voided_count"`
	GrossSales    decimal.Decimal                      `gorm:"type:decimal(14,2);not null;default:0" json:"gross_sales"`
	NetSales      decimal.Decimal                      `gorm:"type:decimal(14,2);not null;default:0" json:"net_sales"`
	TaxTotal      decimal.Decimal                      `gorm:"type:decimal(14,2);not null;default:0" json:"tax_total"`
	TipTotal      decimal.Decimal                      `gorm:"type:decimal(14,2);not null;default:0" json:"tip_total"`
	DiscountTotal decimal.Decimal                      `gorm:"type:decimal(14,2);not null;default:0" json:"discount_total"`
	Payments      datatypes.JSONType[[]ZReportPayment] `json:"payments"`
	ArchiveKey    string                               `json:"archive_key,omitempty"`
	GeneratedBy   string                               `gorm:"size:64;not null" json:"generated_by"`

	Timestamp
}

func (z *ZReport) BeforeCreate(tx *gorm.DB) error {
	ensureID(&z.ID)
	return nil
}
