package dbtest

import (
	"Restaurant-POS-Backend/entities"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func Location(t *testing.T, db *gorm.DB, name string) *entities.Location {
	l := &entities.Location{Name: name}
	mustCreate(t, db, l)
	return l
}

func Category(t *testing.T, db *gorm.DB, name string) *entities.Category {
	c := &entities.Category{Name: name}
	mustCreate(t, db, c)
	return c
}

// MenuItem creates an available menu item; cost is the stored plate cost.
func MenuItem(t *testing.T, db *gorm.DB, name, price, cost string, category *entities.Category) *entities.MenuItem {
	m := &entities.MenuItem{
		Name:        name,
		Price:       Dec(t, price),
		Cost:        Dec(t, cost),
		IsAvailable: true,
	}
	if category != nil {
		m.CategoryID = &category.ID
	}
	mustCreate(t, db, m)
	return m
}

func Ingredient(t *testing.T, db *gorm.DB, name, stock, minStock, costPerUnit string) *entities.Ingredient {
	i := &entities.Ingredient{
		Name:         name,
		Unit:         "kg",
		CurrentStock: Dec(t, stock),
		MinStock:     Dec(t, minStock),
		CostPerUnit:  Dec(t, costPerUnit),
		IsActive:     true,
	}
	mustCreate(t, db, i)
	return i
}

func Recipe(t *testing.T, db *gorm.DB, item *entities.MenuItem, ingredient *entities.Ingredient, qty string) *entities.Recipe {
	r := &entities.Recipe{
		MenuItemID:   item.ID,
		IngredientID: ingredient.ID,
		Quantity:     Dec(t, qty),
	}
	mustCreate(t, db, r)
	return r
}

// CompletedOrder inserts a completed order directly, bypassing the state
// machine, with one line per item. Subtotal and total are the line sum.
func CompletedOrder(t *testing.T, db *gorm.DB, createdAt time.Time, location *entities.Location, lines ...Line) *entities.Order {
	t.Helper()
	o := &entities.Order{
		OrderNumber:   "ORD-" + uuid.NewString()[:13],
		Type:          "dine_in",
		Status:        "completed",
		PaymentStatus: "paid",
		PaymentMethod: "card",
		VoidStatus:    "none",
	}
	if location != nil {
		o.LocationID = &location.ID
	}
	mustCreate(t, db, o)

	subtotal := decimal.Zero
	for _, l := range lines {
		unit := l.Item.Price
		if l.UnitPrice != "" {
			unit = Dec(t, l.UnitPrice)
		}
		status := "served"
		if l.Voided {
			status = "voided"
		}
		total := unit.Mul(decimal.NewFromInt(int64(l.Qty)))
		item := &entities.OrderItem{
			OrderID:    o.ID,
			MenuItemID: l.Item.ID,
			Name:       l.Item.Name,
			Quantity:   l.Qty,
			UnitPrice:  unit,
			TotalPrice: total,
			Status:     status,
		}
		mustCreate(t, db, item)
		if !l.Voided {
			subtotal = subtotal.Add(total)
		}
	}

	if err := db.Model(&entities.Order{}).Where("id = ?", o.ID).Updates(map[string]any{
		"subtotal":     subtotal,
		"total":        subtotal,
		"created_at":   createdAt,
		"completed_at": createdAt,
	}).Error; err != nil {
		t.Fatalf("update order: %v", err)
	}
	o.Subtotal = subtotal
	o.Total = subtotal
	o.CreatedAt = createdAt
	return o
}

type Line struct {
	Item      *entities.MenuItem
	Qty       int
	UnitPrice string
	Voided    bool
}

// ClosedShift inserts a finished shift with a fixed labour cost.
func ClosedShift(t *testing.T, db *gorm.DB, staffID uuid.UUID, location *entities.Location, clockIn time.Time, labourCost string) *entities.Shift {
	out := clockIn.Add(8 * time.Hour)
	s := &entities.Shift{
		StaffID:    staffID,
		ClockInAt:  clockIn,
		ClockOutAt: &out,
		Hours:      decimal.NewFromInt(8),
		LabourCost: Dec(t, labourCost),
	}
	if location != nil {
		s.LocationID = &location.ID
	}
	mustCreate(t, db, s)
	return s
}
