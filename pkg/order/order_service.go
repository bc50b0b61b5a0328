package order

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/pkg/events"
	"Restaurant-POS-Backend/pkg/logger"
	"Restaurant-POS-Backend/pkg/stock"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"time"
)

const orderNumberAttempts = 3

type (
	OrderService interface {
		CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
		GetOrder(ctx context.Context, id string) (*domain.Order, error)
		ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, int64, error)
		UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
		UpdateOrderCharges(ctx context.Context, id string, req domain.UpdateOrderChargesRequest) (*domain.Order, error)
		RecordPayment(ctx context.Context, id string, req domain.RecordPaymentRequest) (*domain.Order, error)
		AddOrderItem(ctx context.Context, orderID string, req domain.AddOrderItemRequest) (*domain.OrderItem, error)
		UpdateOrderItemStatus(ctx context.Context, itemID string, status domain.ItemStatus) (*domain.OrderItem, error)
	}

	orderService struct {
		orderRepository OrderRepository
		stockLedger     stock.StockLedger
		publisher       events.Publisher
		notifier        stock.LowStockNotifier
		log             *logger.Logger
		now             func() time.Time
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	stockLedger stock.StockLedger,
	publisher events.Publisher,
	notifier stock.LowStockNotifier,
	log *logger.Logger,
) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		stockLedger:     stockLedger,
		publisher:       publisher,
		notifier:        notifier,
		log:             log.WithComponent("order"),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	order := &entities.Order{
		Type:          req.Type,
		Status:        string(domain.OrderPending),
		Notes:         req.Notes,
		PaymentStatus: string(domain.PaymentUnpaid),
		VoidStatus:    string(domain.VoidNone),
	}

	var err error
	if order.TableID, err = parseOptionalUUID(req.TableID); err != nil {
		return nil, err
	}
	if order.StaffID, err = parseOptionalUUID(req.StaffID); err != nil {
		return nil, err
	}
	if order.CustomerID, err = parseOptionalUUID(req.CustomerID); err != nil {
		return nil, err
	}
	if order.LocationID, err = parseOptionalUUID(req.LocationID); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		err = s.orderRepository.Transaction(ctx, func(_ *gorm.DB, repo OrderRepository) error {
			prefix := fmt.Sprintf("ORD-%s-", s.now().Format("20060102"))
			count, err := repo.CountOrderNumbersWithPrefix(ctx, prefix)
			if err != nil {
				return err
			}

			order.ID = uuid.Nil
			order.OrderNumber = fmt.Sprintf("%s%04d", prefix, count+1)
			return repo.CreateOrder(ctx, order)
		})
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == orderNumberAttempts {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	return ToOrder(order), nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return ToOrder(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	orders, count, err := s.orderRepository.GetOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, ToOrder(order))
	}
	return result, count, nil
}

// UpdateOrderStatus moves an order along its lifecycle. Completion stamps
// completedAt and deducts stock in the same transaction as the status write.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	var (
		order     *entities.Order
		deduction *domain.Deduction
	)

	err := s.orderRepository.Transaction(ctx, func(tx *gorm.DB, repo OrderRepository) error {
		var err error
		order, err = repo.LockOrder(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		from := domain.OrderStatus(order.Status)
		if err := checkOrderTransition(from, status); err != nil {
			return err
		}
		// a pending void must be approved or rejected first
		if status == domain.OrderCancelled && domain.VoidStatus(order.VoidStatus) == domain.VoidRequested {
			return domain.ErrVoidPending
		}

		var completedAt *time.Time
		if status == domain.OrderCompleted {
			now := s.now()
			completedAt = &now
		}

		ok, err := repo.UpdateStatusGuard(ctx, order.ID, string(from), string(status), completedAt)
		if err != nil {
			return err
		}
		if !ok {
			if status == domain.OrderCompleted {
				return domain.ErrOrderAlreadyCompleted
			}
			return domain.Errorf(domain.ErrInvalidTransition, "order %s changed concurrently", order.OrderNumber)
		}
		order.Status = string(status)
		order.CompletedAt = completedAt

		if status == domain.OrderCompleted {
			deduction, err = s.stockLedger.DeductForOrder(ctx, tx, order)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.OrderCompleted:
		s.publish(ctx, events.OrderCompleted, order, "")
		if deduction != nil && len(deduction.LowStock) > 0 {
			if err := s.notifier.NotifyLowStock(ctx, deduction.LowStock); err != nil {
				s.log.Error("low stock notification failed", "order_id", order.ID.String(), "error", err)
			}
		}
	case domain.OrderCancelled:
		s.publish(ctx, events.OrderCancelled, order, "")
	}

	return s.GetOrder(ctx, id)
}

func (s *orderService) UpdateOrderCharges(ctx context.Context, id string, req domain.UpdateOrderChargesRequest) (*domain.Order, error) {
	if req.DiscountAmount.IsNegative() || req.ServiceCharge.IsNegative() || req.TipAmount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	err := s.orderRepository.Transaction(ctx, func(_ *gorm.DB, repo OrderRepository) error {
		order, err := s.lockOpenOrder(ctx, repo, id)
		if err != nil {
			return err
		}

		order.DiscountAmount = domain.RoundMoney(req.DiscountAmount)
		order.ServiceCharge = domain.RoundMoney(req.ServiceCharge)
		order.TipAmount = domain.RoundMoney(req.TipAmount)
		return s.recalculateTotals(ctx, repo, order)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, id)
}

func (s *orderService) RecordPayment(ctx context.Context, id string, req domain.RecordPaymentRequest) (*domain.Order, error) {
	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.orderRepository.UpdatePayment(ctx, order.ID, req.PaymentMethod, req.PaymentStatus); err != nil {
		return nil, err
	}

	order.PaymentMethod = req.PaymentMethod
	order.PaymentStatus = req.PaymentStatus
	return ToOrder(order), nil
}

func (s *orderService) AddOrderItem(ctx context.Context, orderID string, req domain.AddOrderItemRequest) (*domain.OrderItem, error) {
	if req.Quantity <= 0 {
		return nil, domain.Errorf(domain.ErrInvalid, "quantity must be positive")
	}
	if (req.UnitPrice != nil && req.UnitPrice.IsNegative()) || req.TotalPrice.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	var item *entities.OrderItem
	err := s.orderRepository.Transaction(ctx, func(_ *gorm.DB, repo OrderRepository) error {
		order, err := s.lockOpenOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}

		menuItem, err := repo.GetMenuItemByID(ctx, req.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMenuItemNotFound
			}
			return err
		}

		unitPrice := menuItem.Price
		if req.UnitPrice != nil {
			unitPrice = domain.RoundMoney(*req.UnitPrice)
		}
		totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		if !req.TotalPrice.IsZero() && !domain.RoundMoney(req.TotalPrice).Equal(totalPrice) {
			return domain.Errorf(domain.ErrTotalPriceMismatch, "%d x %s != %s", req.Quantity, unitPrice, req.TotalPrice)
		}

		name := req.Name
		if name == "" {
			name = menuItem.Name
		}

		modifiers := make([]entities.OrderItemModifier, 0, len(req.Modifiers))
		for _, m := range req.Modifiers {
			modifiers = append(modifiers, entities.OrderItemModifier{Name: m.Name, Price: domain.RoundMoney(m.Price)})
		}

		item = &entities.OrderItem{
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Name:       name,
			Quantity:   req.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
			Modifiers:  datatypes.NewJSONType(modifiers),
			Status:     string(domain.ItemPending),
			Station:    menuItem.Station,
			Notes:      req.Notes,
		}
		if err := repo.CreateOrderItem(ctx, item); err != nil {
			return err
		}

		return s.recalculateTotals(ctx, repo, order)
	})
	if err != nil {
		return nil, err
	}

	return ToOrderItem(item), nil
}

// UpdateOrderItemStatus tracks kitchen progress per item. Moving to preparing
// stamps sentToKitchenAt, moving to ready stamps readyAt.
func (s *orderService) UpdateOrderItemStatus(ctx context.Context, itemID string, status domain.ItemStatus) (*domain.OrderItem, error) {
	var item *entities.OrderItem
	err := s.orderRepository.Transaction(ctx, func(_ *gorm.DB, repo OrderRepository) error {
		var err error
		item, err = repo.GetOrderItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderItemNotFound
			}
			return err
		}

		order, err := s.lockOpenOrder(ctx, repo, item.OrderID.String())
		if err != nil {
			return err
		}

		from := domain.ItemStatus(item.Status)
		if err := checkItemTransition(from, status); err != nil {
			return err
		}

		now := s.now()
		if status != domain.ItemVoided {
			if itemFlow[status] >= itemFlow[domain.ItemPreparing] && item.SentToKitchenAt == nil {
				item.SentToKitchenAt = &now
			}
			if itemFlow[status] >= itemFlow[domain.ItemReady] && item.ReadyAt == nil {
				item.ReadyAt = &now
			}
		}
		item.Status = string(status)

		ok, err := repo.UpdateOrderItemStatusGuard(ctx, item, string(from))
		if err != nil {
			return err
		}
		if !ok {
			return domain.Errorf(domain.ErrInvalidItemTransition, "item %s changed concurrently", item.ID)
		}

		if status == domain.ItemVoided {
			return s.recalculateTotals(ctx, repo, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ToOrderItem(item), nil
}

func (s *orderService) lockOpenOrder(ctx context.Context, repo OrderRepository, id string) (*entities.Order, error) {
	order, err := repo.LockOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if domain.OrderStatus(order.Status).IsTerminal() {
		return nil, domain.Errorf(domain.ErrOrderTerminal, "order %s is %s", order.OrderNumber, order.Status)
	}
	return order, nil
}

// recalculateTotals derives subtotal and tax from the non-voided items, then
// applies the order's own adjustments. The total never drops below zero.
func (s *orderService) recalculateTotals(ctx context.Context, repo OrderRepository, order *entities.Order) error {
	items, err := repo.GetOrderItemsWithMenu(ctx, order.ID)
	if err != nil {
		return err
	}

	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, item := range items {
		if item.Status == string(domain.ItemVoided) {
			continue
		}
		subtotal = subtotal.Add(item.TotalPrice)
		if item.MenuItem != nil {
			tax = tax.Add(item.TotalPrice.Mul(item.MenuItem.TaxRate).Div(decimal.NewFromInt(100)))
		}
	}

	order.Subtotal = domain.RoundMoney(subtotal)
	order.TaxAmount = domain.RoundMoney(tax)
	total := order.Subtotal.
		Add(order.TaxAmount).
		Add(order.ServiceCharge).
		Add(order.TipAmount).
		Sub(order.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	order.Total = domain.RoundMoney(total)

	return repo.UpdateOrderAmounts(ctx, order)
}

func (s *orderService) publish(ctx context.Context, routingKey string, order *entities.Order, actor string) {
	event := domain.OrderEvent{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		VoidStatus:  order.VoidStatus,
		Actor:       actor,
		Total:       order.Total.StringFixed(2),
		OccurredAt:  s.now(),
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.log.Error("event publish failed", "routing_key", routingKey, "order_id", event.OrderID, "error", err)
	}
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return &id, nil
}
