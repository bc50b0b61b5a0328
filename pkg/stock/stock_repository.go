package stock

import (
	"Restaurant-POS-Backend/entities"
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	StockRepository interface {
		WithTx(tx *gorm.DB) StockRepository

		GetRecipesByMenuItems(ctx context.Context, menuItemIDs []uuid.UUID) ([]*entities.Recipe, error)
		LockIngredient(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error)
		UpdateIngredientStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)

		// Movements
		CreateMovement(ctx context.Context, movement *entities.StockMovement) error
		GetMovements(ctx context.Context, ingredientID string, page, limit int) ([]*entities.StockMovement, int64, error)
	}

	stockRepository struct {
		db *gorm.DB
	}
)

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) WithTx(tx *gorm.DB) StockRepository {
	return &stockRepository{db: tx}
}

func (r *stockRepository) GetRecipesByMenuItems(ctx context.Context, menuItemIDs []uuid.UUID) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if len(menuItemIDs) == 0 {
		return recipes, nil
	}
	if err := r.db.WithContext(ctx).
		Where("menu_item_id IN ?", menuItemIDs).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// LockIngredient reads the row with FOR UPDATE where the dialect supports it.
func (r *stockRepository) LockIngredient(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *stockRepository) UpdateIngredientStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("id = ?", id).
		Update("current_stock", stock).Error
}

func (r *stockRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *stockRepository) CreateMovement(ctx context.Context, movement *entities.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *stockRepository) GetMovements(ctx context.Context, ingredientID string, page, limit int) ([]*entities.StockMovement, int64, error) {
	var movements []*entities.StockMovement
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.StockMovement{}).
		Where("ingredient_id = ?", ingredientID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&movements).Error; err != nil {
		return nil, 0, err
	}

	return movements, count, nil
}
