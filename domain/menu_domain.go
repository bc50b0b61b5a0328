package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessCreateCategory   = "category created successfully"
	MessageSuccessCreateMenuItem   = "menu item created successfully"
	MessageSuccessUpdateMenuItem   = "menu item updated successfully"
	MessageSuccessGetMenuItem      = "menu item retrieved successfully"
	MessageSuccessGetMenuItems     = "menu items retrieved successfully"
	MessageSuccessCreateIngredient = "ingredient created successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessDeleteRecipe     = "recipe deleted successfully"
	MessageSuccessCalculateCost    = "menu item cost calculated successfully"
	MessageSuccessUpdateCost       = "menu item cost updated successfully"
	MessageSuccessUpdateAllCosts   = "menu item costs recalculated successfully"
	MessageSuccessCostAnalysis     = "menu item cost analysis retrieved successfully"

	MessageFailedCreateCategory   = "failed to create category"
	MessageFailedCreateMenuItem   = "failed to create menu item"
	MessageFailedUpdateMenuItem   = "failed to update menu item"
	MessageFailedGetMenuItem      = "failed to retrieve menu item"
	MessageFailedGetMenuItems     = "failed to retrieve menu items"
	MessageFailedCreateIngredient = "failed to create ingredient"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"
	MessageFailedGetIngredients   = "failed to retrieve ingredients"
	MessageFailedCreateRecipe     = "failed to create recipe"
	MessageFailedDeleteRecipe     = "failed to delete recipe"
	MessageFailedCalculateCost    = "failed to calculate menu item cost"
	MessageFailedUpdateCost       = "failed to update menu item cost"
	MessageFailedUpdateAllCosts   = "failed to recalculate menu item costs"
	MessageFailedCostAnalysis     = "failed to retrieve menu item cost analysis"

	ErrMenuItemNotFound   = NewError(KindNotFound, "menu item not found")
	ErrCategoryNotFound   = NewError(KindNotFound, "category not found")
	ErrIngredientNotFound = NewError(KindNotFound, "ingredient not found")
	ErrRecipeNotFound     = NewError(KindNotFound, "recipe not found")
	ErrMissingReference   = NewError(KindPartialFailure, "referenced record no longer exists")
)

type (
	CreateCategoryRequest struct {
		Name      string `json:"name" validate:"required,max=100"`
		SortOrder int    `json:"sort_order" validate:"gte=0"`
	}

	Category struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		SortOrder int    `json:"sort_order"`
	}

	CreateMenuItemRequest struct {
		CategoryID  string          `json:"category_id" validate:"omitempty,uuid"`
		Name        string          `json:"name" validate:"required,max=255"`
		Price       decimal.Decimal `json:"price"`
		TaxRate     decimal.Decimal `json:"tax_rate"`
		IsAvailable *bool           `json:"is_available"`
		Station     string          `json:"station" validate:"omitempty,max=50"`
		SortOrder   int             `json:"sort_order" validate:"gte=0"`
	}

	UpdateMenuItemRequest struct {
		CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
		Name        *string          `json:"name" validate:"omitempty,max=255"`
		Price       *decimal.Decimal `json:"price"`
		TaxRate     *decimal.Decimal `json:"tax_rate"`
		IsAvailable *bool            `json:"is_available"`
		Station     *string          `json:"station" validate:"omitempty,max=50"`
		SortOrder   *int             `json:"sort_order" validate:"omitempty,gte=0"`
	}

	MenuItem struct {
		ID          string          `json:"id"`
		CategoryID  *string         `json:"category_id,omitempty"`
		Name        string          `json:"name"`
		Price       decimal.Decimal `json:"price"`
		Cost        decimal.Decimal `json:"cost"`
		TaxRate     decimal.Decimal `json:"tax_rate"`
		IsAvailable bool            `json:"is_available"`
		Station     string          `json:"station,omitempty"`
		SortOrder   int             `json:"sort_order"`
		CreatedAt   time.Time       `json:"created_at"`
		UpdatedAt   time.Time       `json:"updated_at"`
	}

	CreateIngredientRequest struct {
		Name         string          `json:"name" validate:"required,max=255"`
		Unit         string          `json:"unit" validate:"required,max=20"`
		CurrentStock decimal.Decimal `json:"current_stock"`
		MinStock     decimal.Decimal `json:"min_stock"`
		CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	}

	UpdateIngredientRequest struct {
		Name        *string          `json:"name" validate:"omitempty,max=255"`
		Unit        *string          `json:"unit" validate:"omitempty,max=20"`
		MinStock    *decimal.Decimal `json:"min_stock"`
		CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
		IsActive    *bool            `json:"is_active"`
	}

	Ingredient struct {
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		Unit         string          `json:"unit"`
		CurrentStock decimal.Decimal `json:"current_stock"`
		MinStock     decimal.Decimal `json:"min_stock"`
		CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
		IsActive     bool            `json:"is_active"`
	}

	CreateRecipeRequest struct {
		MenuItemID   string          `json:"menu_item_id" validate:"required,uuid"`
		IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
		Quantity     decimal.Decimal `json:"quantity"`
	}

	Recipe struct {
		ID           string          `json:"id"`
		MenuItemID   string          `json:"menu_item_id"`
		IngredientID string          `json:"ingredient_id"`
		Quantity     decimal.Decimal `json:"quantity"`
	}

	CostAnalysis struct {
		MenuItemID    string               `json:"menu_item_id"`
		Name          string               `json:"name"`
		Price         decimal.Decimal      `json:"price"`
		Cost          decimal.Decimal      `json:"cost"`
		Margin        decimal.Decimal      `json:"margin"`
		MarginPercent decimal.Decimal      `json:"margin_percent"`
		Ingredients   []*CostBreakdownLine `json:"ingredients"`
	}

	CostBreakdownLine struct {
		IngredientID   string          `json:"ingredient_id"`
		IngredientName string          `json:"ingredient_name"`
		Quantity       decimal.Decimal `json:"quantity"`
		Unit           string          `json:"unit"`
		CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
		LineCost       decimal.Decimal `json:"line_cost"`
	}

	BatchCostResult struct {
		Updated int `json:"updated"`
	}
)
