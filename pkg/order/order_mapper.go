package order

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"github.com/google/uuid"
)

func ToOrder(order *entities.Order) *domain.Order {
	result := &domain.Order{
		ID:             order.ID.String(),
		OrderNumber:    order.OrderNumber,
		Type:           order.Type,
		Status:         order.Status,
		TableID:        uuidString(order.TableID),
		StaffID:        uuidString(order.StaffID),
		CustomerID:     uuidString(order.CustomerID),
		LocationID:     uuidString(order.LocationID),
		Notes:          order.Notes,
		Subtotal:       order.Subtotal,
		TaxAmount:      order.TaxAmount,
		DiscountAmount: order.DiscountAmount,
		ServiceCharge:  order.ServiceCharge,
		TipAmount:      order.TipAmount,
		Total:          order.Total,
		PaymentMethod:  order.PaymentMethod,
		PaymentStatus:  order.PaymentStatus,
		Items:          make([]*domain.OrderItem, 0, len(order.Items)),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
		CompletedAt:    order.CompletedAt,
	}

	if order.VoidStatus != "" && order.VoidStatus != string(domain.VoidNone) {
		result.Void = &domain.VoidInfo{
			Status:       order.VoidStatus,
			Reason:       order.VoidReason,
			Notes:        order.VoidNotes,
			RequestedAt:  order.VoidRequestedAt,
			RequestedBy:  order.VoidRequestedBy,
			ApprovedAt:   order.VoidApprovedAt,
			ApprovedBy:   order.VoidApprovedBy,
			RejectedAt:   order.VoidRejectedAt,
			RejectedBy:   order.VoidRejectedBy,
			RefundMethod: order.RefundMethod,
		}
	}

	for _, item := range order.Items {
		result.Items = append(result.Items, ToOrderItem(item))
	}
	return result
}

func ToOrderItem(item *entities.OrderItem) *domain.OrderItem {
	modifiers := make([]domain.Modifier, 0)
	for _, m := range item.Modifiers.Data() {
		modifiers = append(modifiers, domain.Modifier{Name: m.Name, Price: m.Price})
	}

	return &domain.OrderItem{
		ID:              item.ID.String(),
		OrderID:         item.OrderID.String(),
		MenuItemID:      item.MenuItemID.String(),
		Name:            item.Name,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		TotalPrice:      item.TotalPrice,
		Modifiers:       modifiers,
		Status:          item.Status,
		Station:         item.Station,
		Notes:           item.Notes,
		SentToKitchenAt: item.SentToKitchenAt,
		ReadyAt:         item.ReadyAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
