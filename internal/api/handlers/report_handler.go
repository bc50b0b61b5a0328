package handlers

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/api/presenters"
	"Restaurant-POS-Backend/pkg/report"

	"github.com/gofiber/fiber/v2"
)

type (
	ReportHandler interface {
		ProfitabilityByItem(c *fiber.Ctx) error
		ProfitabilityByCategory(c *fiber.Ctx) error
		ProfitabilitySummary(c *fiber.Ctx) error
		TopProfitableItems(c *fiber.Ctx) error
		BottomProfitableItems(c *fiber.Ctx) error
		PrimeCost(c *fiber.Ctx) error
		PrimeCostTrend(c *fiber.Ctx) error
		DailyProfitTrend(c *fiber.Ctx) error
		ConsolidatedReport(c *fiber.Ctx) error
	}

	reportHandler struct {
		reportService report.ReportService
	}
)

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandler{
		reportService: reportService,
	}
}

func (h *reportHandler) filter(c *fiber.Ctx) (domain.ReportFilter, error) {
	var filter domain.ReportFilter
	dateRange, err := reportRangeQuery(c)
	if err != nil {
		return filter, err
	}
	filter.Range = dateRange

	if filter.StaffID, err = optionalUUIDQuery(c, "staff_id"); err != nil {
		return filter, err
	}
	if filter.LocationID, err = optionalUUIDQuery(c, "location_id"); err != nil {
		return filter, err
	}
	if v := c.Query("cogs"); v != "" {
		if filter.Cogs, err = domain.ParseCogsStrategy(v); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func (h *reportHandler) ProfitabilityByItem(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	res, err := h.reportService.ProfitabilityByItem(c.Context(), filter)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *reportHandler) ProfitabilityByCategory(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	res, err := h.reportService.ProfitabilityByCategory(c.Context(), filter)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *reportHandler) ProfitabilitySummary(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	res, err := h.reportService.ProfitabilitySummary(c.Context(), filter)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *reportHandler) TopProfitableItems(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	res, err := h.reportService.TopProfitableItems(c.Context(), filter, c.QueryInt("limit", report.DefaultRankLimit))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *reportHandler) BottomProfitableItems(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	res, err := h.reportService.BottomProfitableItems(c.Context(), filter, c.QueryInt("limit", report.DefaultRankLimit))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *reportHandler) PrimeCost(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	res, err := h.reportService.PrimeCost(c.Context(), filter)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *reportHandler) PrimeCostTrend(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	res, err := h.reportService.PrimeCostTrend(c.Context(), filter)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *reportHandler) DailyProfitTrend(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	res, err := h.reportService.DailyProfitTrend(c.Context(), filter)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *reportHandler) ConsolidatedReport(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	locationIDs, err := uuidListQuery(c, "location_ids")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	res, err := h.reportService.ConsolidatedReport(c.Context(), filter, locationIDs)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}
