package seed

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/pkg/shift"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	adminEmail = "admin@pos.local"
	adminPin   = "1234"
	staffEmail = "cook@pos.local"
	staffPin   = "4321"
)

// Seed inserts a demo location, two staff members and the Grilled Chicken menu.
// It does nothing when the admin account already exists.
func Seed(db *gorm.DB) error {
	var existing entities.Staff
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		log.Println("seed data already present, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		location := &entities.Location{Name: "Main Street", Address: "1 Main Street"}
		if err := tx.Create(location).Error; err != nil {
			return fmt.Errorf("seed location: %w", err)
		}

		for _, s := range []struct {
			name, email, role, pin string
			rate                   string
		}{
			{"Admin", adminEmail, domain.RoleAdmin, adminPin, "25.00"},
			{"Line Cook", staffEmail, domain.RoleUser, staffPin, "15.50"},
		} {
			hash, err := shift.HashPin(s.pin)
			if err != nil {
				return err
			}
			staff := &entities.Staff{
				LocationID: &location.ID,
				Name:       s.name,
				Email:      s.email,
				Role:       s.role,
				PinHash:    hash,
				HourlyRate: decimal.RequireFromString(s.rate),
				IsActive:   true,
			}
			if err := tx.Create(staff).Error; err != nil {
				return fmt.Errorf("seed staff %s: %w", s.email, err)
			}
			log.Printf("seeded %s (%s) id=%s", s.name, s.role, staff.ID)
		}

		category := &entities.Category{Name: "Mains"}
		if err := tx.Create(category).Error; err != nil {
			return fmt.Errorf("seed category: %w", err)
		}

		chicken := &entities.Ingredient{
			Name:         "Chicken",
			Unit:         "kg",
			CurrentStock: decimal.NewFromInt(10),
			MinStock:     decimal.NewFromInt(2),
			CostPerUnit:  decimal.RequireFromString("5.50"),
			IsActive:     true,
		}
		oil := &entities.Ingredient{
			Name:         "Oil",
			Unit:         "L",
			CurrentStock: decimal.NewFromInt(5),
			MinStock:     decimal.NewFromInt(1),
			CostPerUnit:  decimal.RequireFromString("8.00"),
			IsActive:     true,
		}
		if err := tx.Create([]*entities.Ingredient{chicken, oil}).Error; err != nil {
			return fmt.Errorf("seed ingredients: %w", err)
		}

		item := &entities.MenuItem{
			CategoryID:  &category.ID,
			Name:        "Grilled Chicken",
			Price:       decimal.RequireFromString("15.99"),
			Cost:        decimal.RequireFromString("2.05"),
			TaxRate:     decimal.Zero,
			IsAvailable: true,
			Station:     "grill",
		}
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("seed menu item: %w", err)
		}

		recipes := []*entities.Recipe{
			{MenuItemID: item.ID, IngredientID: chicken.ID, Quantity: decimal.RequireFromString("0.3")},
			{MenuItemID: item.ID, IngredientID: oil.ID, Quantity: decimal.RequireFromString("0.05")},
		}
		if err := tx.Create(recipes).Error; err != nil {
			return fmt.Errorf("seed recipes: %w", err)
		}
		return nil
	})
}
