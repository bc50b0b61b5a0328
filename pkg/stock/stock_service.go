package stock

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"sort"
)

type (
	// StockLedger is the only automatic path that decreases ingredient stock.
	StockLedger interface {
		DeductForOrder(ctx context.Context, tx *gorm.DB, order *entities.Order) (*domain.Deduction, error)
		GetMovements(ctx context.Context, ingredientID string, page, limit int) ([]*domain.StockMovement, int64, error)
	}

	stockLedger struct {
		stockRepository StockRepository
		policy          domain.ReferencePolicy
		log             *logger.Logger
	}
)

func NewStockLedger(stockRepository StockRepository, policy domain.ReferencePolicy, log *logger.Logger) StockLedger {
	return &stockLedger{
		stockRepository: stockRepository,
		policy:          policy,
		log:             log.WithComponent("stock"),
	}
}

// DeductForOrder decrements every recipe-linked ingredient by recipe.quantity x
// item.quantity over the order's non-voided items. It runs inside the caller's
// transaction; any write error aborts it. Stock is allowed to go negative.
func (s *stockLedger) DeductForOrder(ctx context.Context, tx *gorm.DB, order *entities.Order) (*domain.Deduction, error) {
	repo := s.stockRepository.WithTx(tx)
	result := &domain.Deduction{
		OrderID:   order.ID.String(),
		Movements: []*domain.StockMovement{},
	}

	sold := make(map[uuid.UUID]int)
	for _, item := range order.Items {
		if item.Status == string(domain.ItemVoided) {
			continue
		}
		sold[item.MenuItemID] += item.Quantity
	}
	if len(sold) == 0 {
		return result, nil
	}

	menuItemIDs := make([]uuid.UUID, 0, len(sold))
	for id := range sold {
		menuItemIDs = append(menuItemIDs, id)
	}

	recipes, err := repo.GetRecipesByMenuItems(ctx, menuItemIDs)
	if err != nil {
		return nil, err
	}

	required := make(map[uuid.UUID]decimal.Decimal)
	for _, recipe := range recipes {
		qty := recipe.Quantity.Mul(decimal.NewFromInt(int64(sold[recipe.MenuItemID])))
		required[recipe.IngredientID] = required[recipe.IngredientID].Add(qty)
	}

	// ingredients are always locked in id order
	ingredientIDs := make([]uuid.UUID, 0, len(required))
	for id := range required {
		ingredientIDs = append(ingredientIDs, id)
	}
	sort.Slice(ingredientIDs, func(i, j int) bool {
		return ingredientIDs[i].String() < ingredientIDs[j].String()
	})

	orderID := order.ID
	for _, ingredientID := range ingredientIDs {
		ingredient, err := repo.LockIngredient(ctx, ingredientID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if s.policy == domain.PolicyStrict {
				return nil, domain.Errorf(domain.ErrMissingReference, "ingredient %s for order %s", ingredientID, order.OrderNumber)
			}
			s.log.Warn("skipping unresolved ingredient during deduction",
				"order_id", order.ID.String(),
				"ingredient_id", ingredientID.String())
			result.Skipped = append(result.Skipped, domain.SkippedRef{Kind: "ingredient", ID: ingredientID.String()})
			continue
		}

		deducted := domain.RoundQuantity(required[ingredientID])
		previous := ingredient.CurrentStock
		next := domain.RoundQuantity(previous.Sub(deducted))

		if err := repo.UpdateIngredientStock(ctx, ingredientID, next); err != nil {
			return nil, err
		}

		movement := &entities.StockMovement{
			IngredientID: ingredientID,
			OrderID:      &orderID,
			Type:         domain.MovementSale,
			Quantity:     deducted.Neg(),
			PreviousQty:  previous,
			NewQty:       next,
			Reference:    order.OrderNumber,
		}
		if err := repo.CreateMovement(ctx, movement); err != nil {
			return nil, err
		}
		result.Movements = append(result.Movements, ToStockMovement(movement))

		if previous.GreaterThan(ingredient.MinStock) && next.LessThanOrEqual(ingredient.MinStock) {
			result.LowStock = append(result.LowStock, &domain.LowStockAlert{
				IngredientID: ingredientID.String(),
				Name:         ingredient.Name,
				Unit:         ingredient.Unit,
				CurrentStock: next,
				MinStock:     ingredient.MinStock,
			})
		}
	}

	return result, nil
}

func (s *stockLedger) GetMovements(ctx context.Context, ingredientID string, page, limit int) ([]*domain.StockMovement, int64, error) {
	if _, err := s.stockRepository.GetIngredientByID(ctx, ingredientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrIngredientNotFound
		}
		return nil, 0, err
	}

	movements, count, err := s.stockRepository.GetMovements(ctx, ingredientID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.StockMovement, 0, len(movements))
	for _, m := range movements {
		result = append(result, ToStockMovement(m))
	}
	return result, count, nil
}

func ToStockMovement(m *entities.StockMovement) *domain.StockMovement {
	var orderID *string
	if m.OrderID != nil {
		id := m.OrderID.String()
		orderID = &id
	}
	return &domain.StockMovement{
		ID:           m.ID.String(),
		IngredientID: m.IngredientID.String(),
		OrderID:      orderID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		PreviousQty:  m.PreviousQty,
		NewQty:       m.NewQty,
		Reference:    m.Reference,
		CreatedAt:    m.CreatedAt,
	}
}

type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, alerts []*domain.LowStockAlert) error
}

type NoopNotifier struct{}

func (NoopNotifier) NotifyLowStock(context.Context, []*domain.LowStockAlert) error { return nil }
