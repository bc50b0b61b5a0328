package costing

import (
	"Restaurant-POS-Backend/entities"
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	CostingRepository interface {
		GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error)
		GetRecipesByMenuItem(ctx context.Context, menuItemID string) ([]*entities.Recipe, error)
		GetMenuItemIDs(ctx context.Context) ([]uuid.UUID, error)
		UpdateMenuItemCost(ctx context.Context, id string, cost decimal.Decimal) error
		Transaction(ctx context.Context, fn func(repo CostingRepository) error) error
	}

	costingRepository struct {
		db *gorm.DB
	}
)

func NewCostingRepository(db *gorm.DB) CostingRepository {
	return &costingRepository{db: db}
}

func (r *costingRepository) GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetRecipesByMenuItem preloads each line's ingredient. A deleted ingredient
// leaves Recipe.Ingredient nil.
func (r *costingRepository) GetRecipesByMenuItem(ctx context.Context, menuItemID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("menu_item_id = ?", menuItemID).
		Order("created_at ASC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *costingRepository) GetMenuItemIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Order("sort_order ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *costingRepository) UpdateMenuItemCost(ctx context.Context, id string, cost decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Where("id = ?", id).
		Update("cost", cost)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *costingRepository) Transaction(ctx context.Context, fn func(repo CostingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&costingRepository{db: tx})
	})
}
