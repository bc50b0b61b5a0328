package migration

import (
	"Restaurant-POS-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"location", &entities.Location{}},
		{"staff", &entities.Staff{}},
		{"shift", &entities.Shift{}},
		{"category", &entities.Category{}},
		{"menu item", &entities.MenuItem{}},
		{"ingredient", &entities.Ingredient{}},
		{"recipe", &entities.Recipe{}},
		{"stock movement", &entities.StockMovement{}},
		{"order", &entities.Order{}},
		{"order item", &entities.OrderItem{}},
		{"void audit log", &entities.VoidAuditLog{}},
		{"z-report", &entities.ZReport{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Printf("Error migrating %s database: %v", m.name, err)
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
	}

	return nil
}
