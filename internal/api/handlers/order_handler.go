package handlers

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/api/presenters"
	"Restaurant-POS-Backend/pkg/order"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	OrderHandler interface {
		CreateOrder(c *fiber.Ctx) error
		ListOrders(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		UpdateOrderStatus(c *fiber.Ctx) error
		UpdateOrderCharges(c *fiber.Ctx) error
		RecordPayment(c *fiber.Ctx) error
		AddOrderItem(c *fiber.Ctx) error
		UpdateOrderItemStatus(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) CreateOrder(c *fiber.Ctx) error {
	req := new(domain.CreateOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	// orders default to the authenticated staff member
	if req.StaffID == "" {
		if _, err := uuid.Parse(principalFrom(c).UserID); err == nil {
			req.StaffID = principalFrom(c).UserID
		}
	}

	res, err := h.orderService.CreateOrder(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *orderHandler) ListOrders(c *fiber.Ctx) error {
	dateRange, err := dateRangeQuery(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}
	locationID, err := optionalUUIDQuery(c, "location_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}
	staffID, err := optionalUUIDQuery(c, "staff_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}
	page, limit := pageQuery(c, 20)

	orders, count, err := h.orderService.ListOrders(c.Context(), domain.OrderFilter{
		Status:     c.Query("status"),
		LocationID: locationID,
		StaffID:    staffID,
		Range:      dateRange,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrder, err)
	}

	res, err := h.orderService.GetOrder(c.Context(), orderID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *orderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrderStatus, err)
	}

	req := new(domain.UpdateOrderStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrderStatus, err)
	}

	res, err := h.orderService.UpdateOrderStatus(c.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateOrderStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateOrderStatus)
}

func (h *orderHandler) UpdateOrderCharges(c *fiber.Ctx) error {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrderCharges, err)
	}

	req := new(domain.UpdateOrderChargesRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.orderService.UpdateOrderCharges(c.Context(), orderID, *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateOrderCharges, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateOrderCharges)
}

func (h *orderHandler) RecordPayment(c *fiber.Ctx) error {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordPayment, err)
	}

	req := new(domain.RecordPaymentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordPayment, err)
	}

	res, err := h.orderService.RecordPayment(c.Context(), orderID, *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedRecordPayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRecordPayment)
}

func (h *orderHandler) AddOrderItem(c *fiber.Ctx) error {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddOrderItem, err)
	}

	req := new(domain.AddOrderItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddOrderItem, err)
	}

	res, err := h.orderService.AddOrderItem(c.Context(), orderID, *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAddOrderItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddOrderItem)
}

func (h *orderHandler) UpdateOrderItemStatus(c *fiber.Ctx) error {
	itemID, err := uuidParam(c, "itemId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateItemStatus, err)
	}

	req := new(domain.UpdateOrderItemStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateItemStatus, err)
	}

	res, err := h.orderService.UpdateOrderItemStatus(c.Context(), itemID, domain.ItemStatus(req.Status))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateItemStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateItemStatus)
}
