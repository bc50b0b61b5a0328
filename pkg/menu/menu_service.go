package menu

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	MenuService interface {
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error)
		CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (*domain.MenuItem, error)
		UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (*domain.MenuItem, error)
		GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
		GetMenuItems(ctx context.Context, categoryID string, availableOnly bool) ([]*domain.MenuItem, error)

		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (*domain.Ingredient, error)
		UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) (*domain.Ingredient, error)
		DeleteIngredient(ctx context.Context, id string) error
		GetIngredients(ctx context.Context, lowStockOnly bool) ([]*domain.Ingredient, error)

		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (*domain.Recipe, error)
		DeleteRecipe(ctx context.Context, id string) error
	}

	menuService struct {
		menuRepository MenuRepository
	}
)

var maxTaxRate = decimal.NewFromInt(100)

func NewMenuService(menuRepository MenuRepository) MenuService {
	return &menuService{menuRepository: menuRepository}
}

func (s *menuService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error) {
	category := &entities.Category{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	}
	if err := s.menuRepository.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return &domain.Category{
		ID:        category.ID.String(),
		Name:      category.Name,
		SortOrder: category.SortOrder,
	}, nil
}

func (s *menuService) CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (*domain.MenuItem, error) {
	if req.Price.IsNegative() || req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(maxTaxRate) {
		return nil, domain.Errorf(domain.ErrInvalid, "price and tax rate must be non-negative, tax rate at most 100")
	}

	item := &entities.MenuItem{
		Name:        req.Name,
		Price:       domain.RoundMoney(req.Price),
		TaxRate:     req.TaxRate.Round(2),
		IsAvailable: true,
		Station:     req.Station,
		SortOrder:   req.SortOrder,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if req.CategoryID != "" {
		categoryID, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = &categoryID
	}

	if err := s.menuRepository.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return ToMenuItem(item), nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (*domain.MenuItem, error) {
	item, err := s.menuRepository.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}

	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = &categoryID
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, domain.ErrNegativeAmount
		}
		item.Price = domain.RoundMoney(*req.Price)
	}
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(maxTaxRate) {
			return nil, domain.Errorf(domain.ErrInvalid, "tax rate must be between 0 and 100")
		}
		item.TaxRate = req.TaxRate.Round(2)
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.Station != nil {
		item.Station = *req.Station
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := s.menuRepository.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return ToMenuItem(item), nil
}

func (s *menuService) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := s.menuRepository.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return ToMenuItem(item), nil
}

func (s *menuService) GetMenuItems(ctx context.Context, categoryID string, availableOnly bool) ([]*domain.MenuItem, error) {
	items, err := s.menuRepository.GetMenuItems(ctx, categoryID, availableOnly)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.MenuItem, 0, len(items))
	for _, item := range items {
		result = append(result, ToMenuItem(item))
	}
	return result, nil
}

func (s *menuService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (*domain.Ingredient, error) {
	if req.MinStock.IsNegative() || req.CostPerUnit.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	ingredient := &entities.Ingredient{
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: domain.RoundQuantity(req.CurrentStock),
		MinStock:     domain.RoundQuantity(req.MinStock),
		CostPerUnit:  domain.RoundCost(req.CostPerUnit),
		IsActive:     true,
	}
	if err := s.menuRepository.CreateIngredient(ctx, ingredient); err != nil {
		return nil, err
	}
	return ToIngredient(ingredient), nil
}

func (s *menuService) UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) (*domain.Ingredient, error) {
	ingredient, err := s.menuRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		ingredient.Name = *req.Name
	}
	if req.Unit != nil {
		ingredient.Unit = *req.Unit
	}
	if req.MinStock != nil {
		if req.MinStock.IsNegative() {
			return nil, domain.ErrNegativeAmount
		}
		ingredient.MinStock = domain.RoundQuantity(*req.MinStock)
	}
	if req.CostPerUnit != nil {
		if req.CostPerUnit.IsNegative() {
			return nil, domain.ErrNegativeAmount
		}
		ingredient.CostPerUnit = domain.RoundCost(*req.CostPerUnit)
	}
	if req.IsActive != nil {
		ingredient.IsActive = *req.IsActive
	}

	if err := s.menuRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return nil, err
	}
	return ToIngredient(ingredient), nil
}

func (s *menuService) DeleteIngredient(ctx context.Context, id string) error {
	if err := s.menuRepository.DeleteIngredient(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}
	return nil
}

func (s *menuService) GetIngredients(ctx context.Context, lowStockOnly bool) ([]*domain.Ingredient, error) {
	ingredients, err := s.menuRepository.GetIngredients(ctx, lowStockOnly)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, ToIngredient(ingredient))
	}
	return result, nil
}

func (s *menuService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (*domain.Recipe, error) {
	if !req.Quantity.IsPositive() {
		return nil, domain.Errorf(domain.ErrInvalid, "recipe quantity must be positive")
	}

	menuItem, err := s.menuRepository.GetMenuItemByID(ctx, req.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	ingredient, err := s.menuRepository.GetIngredientByID(ctx, req.IngredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, err
	}

	recipe := &entities.Recipe{
		MenuItemID:   menuItem.ID,
		IngredientID: ingredient.ID,
		Quantity:     domain.RoundQuantity(req.Quantity),
	}
	if err := s.menuRepository.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	return &domain.Recipe{
		ID:           recipe.ID.String(),
		MenuItemID:   recipe.MenuItemID.String(),
		IngredientID: recipe.IngredientID.String(),
		Quantity:     recipe.Quantity,
	}, nil
}

func (s *menuService) DeleteRecipe(ctx context.Context, id string) error {
	if err := s.menuRepository.DeleteRecipe(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return nil
}

func (s *menuService) resolveCategory(ctx context.Context, id string) (uuid.UUID, error) {
	category, err := s.menuRepository.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, domain.ErrCategoryNotFound
		}
		return uuid.Nil, err
	}
	return category.ID, nil
}

func ToMenuItem(item *entities.MenuItem) *domain.MenuItem {
	var categoryID *string
	if item.CategoryID != nil {
		id := item.CategoryID.String()
		categoryID = &id
	}
	return &domain.MenuItem{
		ID:          item.ID.String(),
		CategoryID:  categoryID,
		Name:        item.Name,
		Price:       item.Price,
		Cost:        item.Cost,
		TaxRate:     item.TaxRate,
		IsAvailable: item.IsAvailable,
		Station:     item.Station,
		SortOrder:   item.SortOrder,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func ToIngredient(ingredient *entities.Ingredient) *domain.Ingredient {
	return &domain.Ingredient{
		ID:           ingredient.ID.String(),
		Name:         ingredient.Name,
		Unit:         ingredient.Unit,
		CurrentStock: ingredient.CurrentStock,
		MinStock:     ingredient.MinStock,
		CostPerUnit:  ingredient.CostPerUnit,
		IsActive:     ingredient.IsActive,
	}
}
