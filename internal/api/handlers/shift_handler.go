package handlers

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/api/presenters"
	"Restaurant-POS-Backend/pkg/shift"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ShiftHandler interface {
		ClockIn(c *fiber.Ctx) error
		ClockOut(c *fiber.Ctx) error
		ListShifts(c *fiber.Ctx) error
	}

	shiftHandler struct {
		shiftService shift.ShiftService
		validator    *validator.Validate
	}
)

func NewShiftHandler(shiftService shift.ShiftService, validator *validator.Validate) ShiftHandler {
	return &shiftHandler{
		shiftService: shiftService,
		validator:    validator,
	}
}

func (h *shiftHandler) ClockIn(c *fiber.Ctx) error {
	req := new(domain.ClockInRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClockIn, err)
	}

	res, err := h.shiftService.ClockIn(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedClockIn, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessClockIn)
}

func (h *shiftHandler) ClockOut(c *fiber.Ctx) error {
	req := new(domain.ClockOutRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClockOut, err)
	}

	res, err := h.shiftService.ClockOut(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedClockOut, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClockOut)
}

func (h *shiftHandler) ListShifts(c *fiber.Ctx) error {
	dateRange, err := dateRangeQuery(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetShifts, err)
	}
	staffID, err := optionalUUIDQuery(c, "staff_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetShifts, err)
	}
	locationID, err := optionalUUIDQuery(c, "location_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetShifts, err)
	}

	res, err := h.shiftService.ListShifts(c.Context(), principalFrom(c), domain.ShiftFilter{
		Range:      dateRange,
		StaffID:    staffID,
		LocationID: locationID,
	})
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetShifts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShifts)
}
