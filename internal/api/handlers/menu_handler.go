package handlers

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/api/presenters"
	"Restaurant-POS-Backend/pkg/costing"
	"Restaurant-POS-Backend/pkg/menu"
	"Restaurant-POS-Backend/pkg/stock"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		CreateCategory(c *fiber.Ctx) error
		CreateMenuItem(c *fiber.Ctx) error
		UpdateMenuItem(c *fiber.Ctx) error
		GetMenuItem(c *fiber.Ctx) error
		GetMenuItems(c *fiber.Ctx) error

		CreateIngredient(c *fiber.Ctx) error
		UpdateIngredient(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
		GetStockMovements(c *fiber.Ctx) error

		CreateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error

		CalculateMenuItemCost(c *fiber.Ctx) error
		UpdateMenuItemCost(c *fiber.Ctx) error
		UpdateAllMenuItemCosts(c *fiber.Ctx) error
		GetMenuItemCostAnalysis(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService    menu.MenuService
		costingService costing.CostingService
		stockLedger    stock.StockLedger
		validator      *validator.Validate
	}
)

func NewMenuHandler(
	menuService menu.MenuService,
	costingService costing.CostingService,
	stockLedger stock.StockLedger,
	validator *validator.Validate,
) MenuHandler {
	return &menuHandler{
		menuService:    menuService,
		costingService: costingService,
		stockLedger:    stockLedger,
		validator:      validator,
	}
}

func (h *menuHandler) CreateCategory(c *fiber.Ctx) error {
	req := new(domain.CreateCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCategory, err)
	}

	res, err := h.menuService.CreateCategory(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateCategory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCategory)
}

func (h *menuHandler) CreateMenuItem(c *fiber.Ctx) error {
	req := new(domain.CreateMenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenuItem, err)
	}

	res, err := h.menuService.CreateMenuItem(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenuItem)
}

func (h *menuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	menuItemID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	req := new(domain.UpdateMenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	res, err := h.menuService.UpdateMenuItem(c.Context(), menuItemID, *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuItem)
}

func (h *menuHandler) GetMenuItem(c *fiber.Ctx) error {
	menuItemID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenuItem, err)
	}

	res, err := h.menuService.GetMenuItem(c.Context(), menuItemID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuItem)
}

func (h *menuHandler) GetMenuItems(c *fiber.Ctx) error {
	categoryID, err := optionalUUIDQuery(c, "category_id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenuItems, err)
	}

	res, err := h.menuService.GetMenuItems(c.Context(), categoryID, c.QueryBool("available_only", false))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetMenuItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuItems)
}

func (h *menuHandler) CreateIngredient(c *fiber.Ctx) error {
	req := new(domain.CreateIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	res, err := h.menuService.CreateIngredient(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}

func (h *menuHandler) UpdateIngredient(c *fiber.Ctx) error {
	ingredientID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	req := new(domain.UpdateIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	res, err := h.menuService.UpdateIngredient(c.Context(), ingredientID, *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateIngredient)
}

func (h *menuHandler) DeleteIngredient(c *fiber.Ctx) error {
	ingredientID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteIngredient, err)
	}

	if err := h.menuService.DeleteIngredient(c.Context(), ingredientID); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteIngredient)
}

func (h *menuHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.menuService.GetIngredients(c.Context(), c.QueryBool("low_stock", false))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *menuHandler) GetStockMovements(c *fiber.Ctx) error {
	ingredientID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMovements, err)
	}
	page, limit := pageQuery(c, 50)

	movements, count, err := h.stockLedger.GetMovements(c.Context(), ingredientID, page, limit)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetMovements, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"movements": movements,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetMovements)
}

func (h *menuHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.menuService.CreateRecipe(c.Context(), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *menuHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.menuService.DeleteRecipe(c.Context(), recipeID); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *menuHandler) CalculateMenuItemCost(c *fiber.Ctx) error {
	menuItemID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCalculateCost, err)
	}

	cost, err := h.costingService.CalculateMenuItemCost(c.Context(), menuItemID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCalculateCost, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"menu_item_id": menuItemID,
		"cost":         cost,
	}, fiber.StatusOK, domain.MessageSuccessCalculateCost)
}

func (h *menuHandler) UpdateMenuItemCost(c *fiber.Ctx) error {
	menuItemID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCost, err)
	}

	cost, err := h.costingService.UpdateMenuItemCost(c.Context(), menuItemID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateCost, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"menu_item_id": menuItemID,
		"cost":         cost,
	}, fiber.StatusOK, domain.MessageSuccessUpdateCost)
}

func (h *menuHandler) UpdateAllMenuItemCosts(c *fiber.Ctx) error {
	updated, err := h.costingService.UpdateAllMenuItemCosts(c.Context())
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateAllCosts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"updated": updated}, fiber.StatusOK, domain.MessageSuccessUpdateAllCosts)
}

func (h *menuHandler) GetMenuItemCostAnalysis(c *fiber.Ctx) error {
	menuItemID, err := uuidParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCostAnalysis, err)
	}

	res, err := h.costingService.GetMenuItemCostAnalysis(c.Context(), menuItemID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCostAnalysis, err)
	}

	// unknown menu items yield a null analysis rather than an error
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCostAnalysis)
}
