package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"time"
)

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`

	MenuItems []*MenuItem `gorm:"foreignKey:CategoryID"`
	Timestamp
}

// MenuItem.Cost is written only by the cost calculator.
type MenuItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Cost        decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"cost"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	Station     string          `gorm:"size:50" json:"station"`
	SortOrder   int             `gorm:"not null;default:0" json:"sort_order"`

	Category *Category `gorm:"foreignKey:CategoryID"`
	Recipes  []*Recipe `gorm:"foreignKey:MenuItemID"`
	Timestamp
}

type Ingredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Unit         string          `gorm:"size:20;not null" json:"unit"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"current_stock"`
	MinStock     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"min_stock"`
	CostPerUnit  decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"cost_per_unit"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`

	Timestamp
}

// Recipe is one ingredient line of a menu item: Quantity of the ingredient per unit sold.
type Recipe struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MenuItemID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"menu_item_id"`
	IngredientID uuid.UUID       `gorm:"type:uuid;index;not null" json:"ingredient_id"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`

	MenuItem   *MenuItem   `gorm:"foreignKey:MenuItemID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
	Timestamp
}

// StockMovement is append-only; rows are never updated.
type StockMovement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	IngredientID uuid.UUID       `gorm:"type:uuid;index;not null" json:"ingredient_id"`
	OrderID      *uuid.UUID      `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Type         string          `gorm:"size:20;not null" json:"type"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	PreviousQty  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"previous_qty"`
	NewQty       decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"new_qty"`
	Reference    string          `gorm:"size:100" json:"reference"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

func (s *StockMovement) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
