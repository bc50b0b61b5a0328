package handlers

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/api/presenters"
	"Restaurant-POS-Backend/pkg/void"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	VoidHandler interface {
		RequestVoid(c *fiber.Ctx) error
		ApproveVoid(c *fiber.Ctx) error
		RejectVoid(c *fiber.Ctx) error
		GetVoidAudit(c *fiber.Ctx) error
		GetPendingVoids(c *fiber.Ctx) error
	}

	voidHandler struct {
		voidService void.VoidService
		validator   *validator.Validate
	}
)

func NewVoidHandler(voidService void.VoidService, validator *validator.Validate) VoidHandler {
	return &voidHandler{
		voidService: voidService,
		validator:   validator,
	}
}

func (h *voidHandler) RequestVoid(c *fiber.Ctx) error {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestVoid, err)
	}

	req := new(domain.RequestVoidRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestVoid, err)
	}

	res, err := h.voidService.RequestVoid(c.Context(), orderID, *req, principalFrom(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedRequestVoid, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRequestVoid)
}

func (h *voidHandler) ApproveVoid(c *fiber.Ctx) error {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApproveVoid, err)
	}

	req := new(domain.ApproveVoidRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApproveVoid, err)
	}

	res, err := h.voidService.ApproveVoid(c.Context(), orderID, *req, principalFrom(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedApproveVoid, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApproveVoid)
}

func (h *voidHandler) RejectVoid(c *fiber.Ctx) error {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRejectVoid, err)
	}

	req := new(domain.RejectVoidRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRejectVoid, err)
	}

	res, err := h.voidService.RejectVoid(c.Context(), orderID, *req, principalFrom(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedRejectVoid, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRejectVoid)
}

func (h *voidHandler) GetVoidAudit(c *fiber.Ctx) error {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetVoidAudit, err)
	}

	res, err := h.voidService.GetVoidAudit(c.Context(), orderID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetVoidAudit, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetVoidAudit)
}

func (h *voidHandler) GetPendingVoids(c *fiber.Ctx) error {
	res, err := h.voidService.GetPendingVoids(c.Context(), principalFrom(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetPendingVoids, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPendingVoids)
}
