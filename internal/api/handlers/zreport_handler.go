package handlers

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/api/presenters"
	"Restaurant-POS-Backend/pkg/zreport"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ZReportHandler interface {
		GenerateZReport(c *fiber.Ctx) error
		ListZReports(c *fiber.Ctx) error
		DeleteZReport(c *fiber.Ctx) error
	}

	zReportHandler struct {
		zReportService zreport.ZReportService
		validator      *validator.Validate
	}
)

func NewZReportHandler(zReportService zreport.ZReportService, validator *validator.Validate) ZReportHandler {
	return &zReportHandler{
		zReportService: zReportService,
		validator:      validator,
	}
}

func (h *zReportHandler) GenerateZReport(c *fiber.Ctx) error {
	req := new(domain.GenerateZReportRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateZReport, err)
	}

	res, err := h.zReportService.GenerateZReport(c.Context(), principalFrom(c), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGenerateZReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessGenerateZReport)
}

func (h *zReportHandler) ListZReports(c *fiber.Ctx) error {
	dateRange, err := dateRangeQuery(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetZReports, err)
	}
	locationID, err := optionalUUIDQuery(c, "location_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetZReports, err)
	}

	res, err := h.zReportService.ListZReports(c.Context(), dateRange, locationID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetZReports, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetZReports)
}

func (h *zReportHandler) DeleteZReport(c *fiber.Ctx) error {
	reportID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteZReport, err)
	}

	if err := h.zReportService.DeleteZReport(c.Context(), principalFrom(c), reportID); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteZReport, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteZReport)
}
