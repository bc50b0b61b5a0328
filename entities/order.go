package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"time"
)

type Order struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string     `gorm:"size:32;uniqueIndex;not null" json:"order_number"`
	Type        string     `gorm:"size:20;not null" json:"type"`         // dine_in, takeaway, delivery, collection, online
	Status      string     `gorm:"size:20;index;not null" json:"status"` // pending, preparing, ready, served, completed, cancelled, voided
	TableID     *uuid.UUID `gorm:"type:uuid" json:"table_id,omitempty"`
	StaffID     *uuid.UUID `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	CustomerID  *uuid.UUID `gorm:"type:uuid" json:"customer_id,omitempty"`
	LocationID  *uuid.UUID `gorm:"type:uuid;index" json:"location_id,omitempty"`
	Notes       string     `json:"notes,omitempty"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	ServiceCharge  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"service_charge"`
	TipAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tip_amount"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	PaymentMethod  string          `gorm:"size:20" json:"payment_method,omitempty"`
	PaymentStatus  string          `gorm:"size:20;not null;default:unpaid" json:"payment_status"`

	VoidStatus      string     `gorm:"size:20;index;not null;default:none" json:"void_status"`
	VoidReason      string     `json:"void_reason,omitempty"`
	VoidNotes       string     `json:"void_notes,omitempty"`
	VoidRequestedAt *time.Time `json:"void_requested_at,omitempty"`
	VoidRequestedBy string     `gorm:"size:64" json:"void_requested_by,omitempty"`
	VoidApprovedAt  *time.Time `json:"void_approved_at,omitempty"`
	VoidApprovedBy  string     `gorm:"size:64" json:"void_approved_by,omitempty"`
	VoidRejectedAt  *time.Time `json:"void_rejected_at,omitempty"`
	VoidRejectedBy  string     `gorm:"size:64" json:"void_rejected_by,omitempty"`
	RefundMethod    string     `gorm:"size:20" json:"refund_method,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Items    []*OrderItem `gorm:"foreignKey:OrderID"`
	Location *Location    `gorm:"foreignKey:LocationID"`
	Timestamp
}

type OrderItemModifier struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderItem.Name is a snapshot of the menu item name at order time.
type OrderItem struct {
	ID              uuid.UUID                               `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         uuid.UUID                               `gorm:"type:uuid;index;not null" json:"order_id"`
	MenuItemID      uuid.UUID                               `gorm:"type:uuid;index;not null" json:"menu_item_id"`
	Name            string                                  `gorm:"size:255;not null" json:"name"`
	Quantity        int                                     `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal                         `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice      decimal.Decimal                         `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Modifiers       datatypes.JSONType[[]OrderItemModifier] `json:"modifiers"`
	Status          string                                  `gorm:"size:20;index;not null" json:"status"` // pending, preparing, ready, served, voided
	Station         string                                  `gorm:"size:50" json:"station,omitempty"`
	Notes           string                                  `json:"notes,omitempty"`
	SentToKitchenAt *time.Time                              `json:"sent_to_kitchen_at,omitempty"`
	ReadyAt         *time.Time                              `json:"ready_at,omitempty"`

	Order    *Order    `gorm:"foreignKey:OrderID"`
	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
	Timestamp
}

// VoidAuditLog rows are append-only.
type VoidAuditLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	Action       string    `gorm:"size:20;not null" json:"action"` // request, approve, reject
	FromStatus   string    `gorm:"size:20;not null" json:"from_status"`
	ToStatus     string    `gorm:"size:20;not null" json:"to_status"`
	Actor        string    `gorm:"size:64;not null" json:"actor"`
	Reason       string    `json:"reason,omitempty"`
	RefundMethod string    `gorm:"size:20" json:"refund_method,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

func (v *VoidAuditLog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
