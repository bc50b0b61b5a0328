package menu

import (
	"Restaurant-POS-Backend/entities"
	"context"
	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		CreateCategory(ctx context.Context, category *entities.Category) error
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)

		CreateMenuItem(ctx context.Context, item *entities.MenuItem) error
		GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error)
		GetMenuItems(ctx context.Context, categoryID string, availableOnly bool) ([]*entities.MenuItem, error)
		UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error

		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredients(ctx context.Context, lowStockOnly bool) ([]*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, id string) error

		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *menuRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateMenuItem writes is_available explicitly after insert since a false
// value would otherwise take the column default.
func (r *menuRepository) CreateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	available := item.IsAvailable
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if available {
			return nil
		}
		item.IsAvailable = false
		return tx.Model(item).Update("is_available", false).Error
	})
}

func (r *menuRepository) GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetMenuItems(ctx context.Context, categoryID string, availableOnly bool) ([]*entities.MenuItem, error) {
	var items []*entities.MenuItem
	query := r.db.WithContext(ctx).Model(&entities.MenuItem{})
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}
	if err := query.Order("sort_order ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateMenuItem never writes cost; that column belongs to the cost calculator.
func (r *menuRepository) UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).
		Model(item).
		Select("category_id", "name", "price", "tax_rate", "is_available", "station", "sort_order").
		Updates(item).Error
}

func (r *menuRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *menuRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *menuRepository) GetIngredients(ctx context.Context, lowStockOnly bool) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	query := r.db.WithContext(ctx).Model(&entities.Ingredient{})
	if lowStockOnly {
		query = query.Where("current_stock <= min_stock")
	}
	if err := query.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// UpdateIngredient never writes current_stock; stock moves only through the ledger.
func (r *menuRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).
		Model(ingredient).
		Select("name", "unit", "min_stock", "cost_per_unit", "is_active").
		Updates(ingredient).Error
}

func (r *menuRepository) DeleteIngredient(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Ingredient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *menuRepository) DeleteRecipe(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
