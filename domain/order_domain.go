package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	OrderType     string
	OrderStatus   string
	ItemStatus    string
	PaymentStatus string
)

const (
	OrderTypeDineIn     OrderType = "dine_in"
	OrderTypeTakeaway   OrderType = "takeaway"
	OrderTypeDelivery   OrderType = "delivery"
	OrderTypeCollection OrderType = "collection"
	OrderTypeOnline     OrderType = "online"

	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderVoided    OrderStatus = "voided"

	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemReady     ItemStatus = "ready"
	ItemServed    ItemStatus = "served"
	ItemVoided    ItemStatus = "voided"

	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentDisputed PaymentStatus = "disputed"
)

var (
	MessageSuccessCreateOrder        = "order created successfully"
	MessageSuccessGetOrder           = "order retrieved successfully"
	MessageSuccessGetOrders          = "orders retrieved successfully"
	MessageSuccessUpdateOrderStatus  = "order status updated successfully"
	MessageSuccessUpdateOrderCharges = "order charges updated successfully"
	MessageSuccessRecordPayment      = "payment recorded successfully"
	MessageSuccessAddOrderItem       = "order item added successfully"
	MessageSuccessUpdateItemStatus   = "order item status updated successfully"

	MessageFailedCreateOrder        = "failed to create order"
	MessageFailedGetOrder           = "failed to retrieve order"
	MessageFailedGetOrders          = "failed to retrieve orders"
	MessageFailedUpdateOrderStatus  = "failed to update order status"
	MessageFailedUpdateOrderCharges = "failed to update order charges"
	MessageFailedRecordPayment      = "failed to record payment"
	MessageFailedAddOrderItem       = "failed to add order item"
	MessageFailedUpdateItemStatus   = "failed to update order item status"

	ErrOrderNotFound          = NewError(KindNotFound, "order not found")
	ErrOrderItemNotFound      = NewError(KindNotFound, "order item not found")
	ErrInvalidTransition      = NewError(KindInvalidState, "invalid order status transition")
	ErrInvalidItemTransition  = NewError(KindInvalidState, "invalid order item status transition")
	ErrOrderTerminal          = NewError(KindInvalidState, "order is no longer open")
	ErrOrderItemVoided        = NewError(KindInvalidState, "order item is voided")
	ErrOrderAlreadyCompleted  = NewError(KindInvalidState, "order already completed")
	ErrVoidRequiresApproval   = NewError(KindInvalidState, "orders are voided through the void approval workflow")
	ErrTotalPriceMismatch     = NewError(KindInvalid, "total price must equal quantity times unit price")
	ErrNegativeAmount         = NewError(KindInvalid, "amounts must not be negative")
	ErrOrderStatusUnknown     = NewError(KindInvalid, "unknown order status")
	ErrOrderItemStatusUnknown = NewError(KindInvalid, "unknown order item status")
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled || s == OrderVoided
}

type (
	CreateOrderRequest struct {
		Type       string `json:"type" validate:"required,oneof=dine_in takeaway delivery collection online"`
		TableID    string `json:"table_id" validate:"omitempty,uuid"`
		StaffID    string `json:"staff_id" validate:"omitempty,uuid"`
		CustomerID string `json:"customer_id" validate:"omitempty,uuid"`
		LocationID string `json:"location_id" validate:"omitempty,uuid"`
		Notes      string `json:"notes" validate:"omitempty,max=500"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=pending preparing ready served completed cancelled voided"`
	}

	UpdateOrderChargesRequest struct {
		DiscountAmount decimal.Decimal `json:"discount_amount"`
		ServiceCharge  decimal.Decimal `json:"service_charge"`
		TipAmount      decimal.Decimal `json:"tip_amount"`
	}

	RecordPaymentRequest struct {
		PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card online store_credit"`
		PaymentStatus string `json:"payment_status" validate:"required,oneof=unpaid paid refunded disputed"`
	}

	AddOrderItemRequest struct {
		MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
		Name       string `json:"name" validate:"omitempty,max=255"`
		Quantity   int    `json:"quantity" validate:"required,gt=0"`
		// nil falls back to the menu price; zero comps the item
		UnitPrice  *decimal.Decimal `json:"unit_price"`
		TotalPrice decimal.Decimal  `json:"total_price"`
		Modifiers  []Modifier       `json:"modifiers" validate:"omitempty,dive"`
		Notes      string           `json:"notes" validate:"omitempty,max=500"`
	}

	Modifier struct {
		Name  string          `json:"name" validate:"required"`
		Price decimal.Decimal `json:"price"`
	}

	UpdateOrderItemStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=pending preparing ready served voided"`
	}

	OrderFilter struct {
		Status     string
		LocationID string
		StaffID    string
		Range      DateRange
		Page       int
		Limit      int
	}

	Order struct {
		ID             string          `json:"id"`
		OrderNumber    string          `json:"order_number"`
		Type           string          `json:"type"`
		Status         string          `json:"status"`
		TableID        *string         `json:"table_id,omitempty"`
		StaffID        *string         `json:"staff_id,omitempty"`
		CustomerID     *string         `json:"customer_id,omitempty"`
		LocationID     *string         `json:"location_id,omitempty"`
		Notes          string          `json:"notes,omitempty"`
		Subtotal       decimal.Decimal `json:"subtotal"`
		TaxAmount      decimal.Decimal `json:"tax_amount"`
		DiscountAmount decimal.Decimal `json:"discount_amount"`
		ServiceCharge  decimal.Decimal `json:"service_charge"`
		TipAmount      decimal.Decimal `json:"tip_amount"`
		Total          decimal.Decimal `json:"total"`
		PaymentMethod  string          `json:"payment_method,omitempty"`
		PaymentStatus  string          `json:"payment_status"`
		Void           *VoidInfo       `json:"void,omitempty"`
		Items          []*OrderItem    `json:"items"`
		CreatedAt      time.Time       `json:"created_at"`
		UpdatedAt      time.Time       `json:"updated_at"`
		CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	}

	OrderItem struct {
		ID              string          `json:"id"`
		OrderID         string          `json:"order_id"`
		MenuItemID      string          `json:"menu_item_id"`
		Name            string          `json:"name"`
		Quantity        int             `json:"quantity"`
		UnitPrice       decimal.Decimal `json:"unit_price"`
		TotalPrice      decimal.Decimal `json:"total_price"`
		Modifiers       []Modifier      `json:"modifiers"`
		Status          string          `json:"status"`
		Station         string          `json:"station,omitempty"`
		Notes           string          `json:"notes,omitempty"`
		SentToKitchenAt *time.Time      `json:"sent_to_kitchen_at,omitempty"`
		ReadyAt         *time.Time      `json:"ready_at,omitempty"`
	}

	// OrderEvent is published after an order transition commits.
	OrderEvent struct {
		OrderID     string    `json:"order_id"`
		OrderNumber string    `json:"order_number"`
		Status      string    `json:"status"`
		VoidStatus  string    `json:"void_status,omitempty"`
		Actor       string    `json:"actor,omitempty"`
		Total       string    `json:"total"`
		OccurredAt  time.Time `json:"occurred_at"`
	}
)
