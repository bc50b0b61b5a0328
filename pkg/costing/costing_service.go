package costing

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	CostingService interface {
		CalculateMenuItemCost(ctx context.Context, menuItemID string) (decimal.Decimal, error)
		UpdateMenuItemCost(ctx context.Context, menuItemID string) (decimal.Decimal, error)
		UpdateAllMenuItemCosts(ctx context.Context) (int, error)
		GetMenuItemCostAnalysis(ctx context.Context, menuItemID string) (*domain.CostAnalysis, error)
	}

	costingService struct {
		costingRepository CostingRepository
		policy            domain.ReferencePolicy
		log               *logger.Logger
	}
)

func NewCostingService(costingRepository CostingRepository, policy domain.ReferencePolicy, log *logger.Logger) CostingService {
	return &costingService{
		costingRepository: costingRepository,
		policy:            policy,
		log:               log.WithComponent("costing"),
	}
}

func (s *costingService) CalculateMenuItemCost(ctx context.Context, menuItemID string) (decimal.Decimal, error) {
	if _, err := s.getMenuItem(ctx, s.costingRepository, menuItemID); err != nil {
		return decimal.Zero, err
	}

	cost, _, err := s.plateCost(ctx, s.costingRepository, menuItemID)
	return cost, err
}

func (s *costingService) UpdateMenuItemCost(ctx context.Context, menuItemID string) (decimal.Decimal, error) {
	var cost decimal.Decimal
	err := s.costingRepository.Transaction(ctx, func(repo CostingRepository) error {
		var err error
		cost, err = s.recompute(ctx, repo, menuItemID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return cost, nil
}

func (s *costingService) UpdateAllMenuItemCosts(ctx context.Context) (int, error) {
	updated := 0
	err := s.costingRepository.Transaction(ctx, func(repo CostingRepository) error {
		ids, err := repo.GetMenuItemIDs(ctx)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if _, err := s.recompute(ctx, repo, id.String()); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("menu item costs recalculated", "updated", updated)
	return updated, nil
}

// GetMenuItemCostAnalysis returns nil without error for an unknown menu item.
func (s *costingService) GetMenuItemCostAnalysis(ctx context.Context, menuItemID string) (*domain.CostAnalysis, error) {
	item, err := s.getMenuItem(ctx, s.costingRepository, menuItemID)
	if err != nil {
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			return nil, nil
		}
		return nil, err
	}

	cost, lines, err := s.plateCost(ctx, s.costingRepository, menuItemID)
	if err != nil {
		return nil, err
	}

	margin := item.Price.Sub(cost)
	return &domain.CostAnalysis{
		MenuItemID:    item.ID.String(),
		Name:          item.Name,
		Price:         item.Price,
		Cost:          domain.RoundCost(cost),
		Margin:        domain.RoundMoney(margin),
		MarginPercent: domain.Percent(margin, item.Price),
		Ingredients:   lines,
	}, nil
}

func (s *costingService) recompute(ctx context.Context, repo CostingRepository, menuItemID string) (decimal.Decimal, error) {
	if _, err := s.getMenuItem(ctx, repo, menuItemID); err != nil {
		return decimal.Zero, err
	}

	cost, _, err := s.plateCost(ctx, repo, menuItemID)
	if err != nil {
		return decimal.Zero, err
	}

	cost = domain.RoundCost(cost)
	if err := repo.UpdateMenuItemCost(ctx, menuItemID, cost); err != nil {
		return decimal.Zero, err
	}
	return cost, nil
}

// plateCost sums costPerUnit x quantity over the menu item's recipe lines.
func (s *costingService) plateCost(ctx context.Context, repo CostingRepository, menuItemID string) (decimal.Decimal, []*domain.CostBreakdownLine, error) {
	recipes, err := repo.GetRecipesByMenuItem(ctx, menuItemID)
	if err != nil {
		return decimal.Zero, nil, err
	}

	total := decimal.Zero
	lines := make([]*domain.CostBreakdownLine, 0, len(recipes))
	for _, recipe := range recipes {
		if recipe.Ingredient == nil {
			if s.policy == domain.PolicyStrict {
				return decimal.Zero, nil, domain.Errorf(domain.ErrMissingReference, "ingredient %s in recipe for menu item %s", recipe.IngredientID, menuItemID)
			}
			s.log.Warn("skipping unresolved ingredient", "menu_item_id", menuItemID, "ingredient_id", recipe.IngredientID.String())
			continue
		}

		lineCost := recipe.Ingredient.CostPerUnit.Mul(recipe.Quantity)
		total = total.Add(lineCost)
		lines = append(lines, &domain.CostBreakdownLine{
			IngredientID:   recipe.Ingredient.ID.String(),
			IngredientName: recipe.Ingredient.Name,
			Quantity:       recipe.Quantity,
			Unit:           recipe.Ingredient.Unit,
			CostPerUnit:    recipe.Ingredient.CostPerUnit,
			LineCost:       domain.RoundCost(lineCost),
		})
	}

	return total, lines, nil
}

func (s *costingService) getMenuItem(ctx context.Context, repo CostingRepository, menuItemID string) (*entities.MenuItem, error) {
	item, err := repo.GetMenuItemByID(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}
