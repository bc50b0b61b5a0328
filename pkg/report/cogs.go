package report

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"github.com/shopspring/decimal"
)

// cogsFunc derives cost of goods sold for a set of completed orders.
type cogsFunc func(orders []*entities.Order) decimal.Decimal

// recipeCogs prices each sold unit at its menu item's current stored cost.
// Menu items that no longer resolve contribute nothing.
func recipeCogs(orders []*entities.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		for _, item := range o.Items {
			total = total.Add(itemCost(item))
		}
	}
	return total
}

func flatCogs(rate decimal.Decimal) cogsFunc {
	return func(orders []*entities.Order) decimal.Decimal {
		total := decimal.Zero
		for _, o := range orders {
			total = total.Add(o.Subtotal.Mul(rate))
		}
		return total
	}
}

func itemCost(item *entities.OrderItem) decimal.Decimal {
	if item.MenuItem == nil {
		return decimal.Zero
	}
	return item.MenuItem.Cost.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func (s *reportService) cogs(strategy domain.CogsStrategy) cogsFunc {
	if strategy == "" {
		strategy = s.options.DefaultCogs
	}
	if strategy == domain.CogsFlat {
		return flatCogs(s.options.FlatCogsRate)
	}
	return recipeCogs
}
