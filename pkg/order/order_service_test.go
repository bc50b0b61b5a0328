package order

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/internal/utils/dbtest"
	"Restaurant-POS-Backend/pkg/events"
	"Restaurant-POS-Backend/pkg/logger"
	"Restaurant-POS-Backend/pkg/stock"
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type notifierSpy struct {
	mu     sync.Mutex
	alerts []*domain.LowStockAlert
}

func (n *notifierSpy) NotifyLowStock(_ context.Context, alerts []*domain.LowStockAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alerts...)
	return nil
}

type fixture struct {
	db       *gorm.DB
	svc      OrderService
	recorder *events.Recorder
	notifier *notifierSpy
	item     *entities.MenuItem
	chicken  *entities.Ingredient
	oil      *entities.Ingredient
}

func newFixture(t *testing.T, policy domain.ReferencePolicy) *fixture {
	db := dbtest.New(t)
	item := dbtest.MenuItem(t, db, "Grilled Chicken", "15.99", "2.05", nil)
	chicken := dbtest.Ingredient(t, db, "Chicken", "10", "2", "5.50")
	oil := dbtest.Ingredient(t, db, "Oil", "5", "1", "8.00")
	dbtest.Recipe(t, db, item, chicken, "0.3")
	dbtest.Recipe(t, db, item, oil, "0.05")

	log := logger.Discard()
	recorder := &events.Recorder{}
	notifier := &notifierSpy{}
	ledger := stock.NewStockLedger(stock.NewStockRepository(db), policy, log)
	svc := NewOrderService(NewOrderRepository(db), ledger, recorder, notifier, log)

	return &fixture{
		db:       db,
		svc:      svc,
		recorder: recorder,
		notifier: notifier,
		item:     item,
		chicken:  chicken,
		oil:      oil,
	}
}

func (f *fixture) newOrder(t *testing.T, qty int) *domain.Order {
	t.Helper()
	ctx := context.Background()
	o, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{Type: string(domain.OrderTypeDineIn)})
	require.NoError(t, err)

	price := dbtest.Dec(t, "15.99")
	_, err = f.svc.AddOrderItem(ctx, o.ID, domain.AddOrderItemRequest{
		MenuItemID: f.item.ID.String(),
		Quantity:   qty,
		UnitPrice:  &price,
		TotalPrice: dbtest.Dec(t, "15.99").Mul(decimal.NewFromInt(int64(qty))),
	})
	require.NoError(t, err)
	return o
}

func (f *fixture) stock(t *testing.T, id uuid.UUID) string {
	t.Helper()
	var ing entities.Ingredient
	require.NoError(t, f.db.First(&ing, "id = ?", id).Error)
	return ing.CurrentStock.StringFixed(3)
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()

	first, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{Type: string(domain.OrderTypeTakeaway)})
	require.NoError(t, err)
	second, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{Type: string(domain.OrderTypeDineIn)})
	require.NoError(t, err)

	assert.Equal(t, string(domain.OrderPending), first.Status)
	assert.Equal(t, string(domain.PaymentUnpaid), first.PaymentStatus)
	assert.Regexp(t, `^ORD-\d{8}-0001$`, first.OrderNumber)
	assert.Regexp(t, `^ORD-\d{8}-0002$`, second.OrderNumber)
	assert.True(t, first.Total.IsZero())

	_, err = f.svc.CreateOrder(ctx, domain.CreateOrderRequest{Type: string(domain.OrderTypeDineIn), StaffID: "nope"})
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestAddOrderItemTotals(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	require.NoError(t, f.db.Model(f.item).Update("tax_rate", dbtest.Dec(t, "10")).Error)

	o, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{Type: string(domain.OrderTypeDineIn)})
	require.NoError(t, err)

	item, err := f.svc.AddOrderItem(ctx, o.ID, domain.AddOrderItemRequest{
		MenuItemID: f.item.ID.String(),
		Quantity:   2,
		Modifiers:  []domain.Modifier{{Name: "extra sauce", Price: dbtest.Dec(t, "0.50")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Grilled Chicken", item.Name)
	assert.Equal(t, "15.99", item.UnitPrice.StringFixed(2))
	assert.Equal(t, "31.98", item.TotalPrice.StringFixed(2))
	require.Len(t, item.Modifiers, 1)

	got, err := f.svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "31.98", got.Subtotal.StringFixed(2))
	assert.Equal(t, "3.20", got.TaxAmount.StringFixed(2))
	assert.Equal(t, "35.18", got.Total.StringFixed(2))

	charged, err := f.svc.UpdateOrderCharges(ctx, o.ID, domain.UpdateOrderChargesRequest{
		DiscountAmount: dbtest.Dec(t, "100"),
		TipAmount:      dbtest.Dec(t, "2"),
	})
	require.NoError(t, err)
	assert.True(t, charged.Total.IsZero(), "total is floored at zero")

	_, err = f.svc.UpdateOrderCharges(ctx, o.ID, domain.UpdateOrderChargesRequest{TipAmount: dbtest.Dec(t, "-1")})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestAddOrderItemValidation(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	o, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{Type: string(domain.OrderTypeDineIn)})
	require.NoError(t, err)

	price := dbtest.Dec(t, "15.99")
	_, err = f.svc.AddOrderItem(ctx, o.ID, domain.AddOrderItemRequest{
		MenuItemID: f.item.ID.String(),
		Quantity:   2,
		UnitPrice:  &price,
		TotalPrice: dbtest.Dec(t, "30.00"),
	})
	assert.ErrorIs(t, err, domain.ErrTotalPriceMismatch)

	_, err = f.svc.AddOrderItem(ctx, o.ID, domain.AddOrderItemRequest{MenuItemID: uuid.NewString(), Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)

	_, err = f.svc.AddOrderItem(ctx, uuid.NewString(), domain.AddOrderItemRequest{MenuItemID: f.item.ID.String(), Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCancelled)
	require.NoError(t, err)
	_, err = f.svc.AddOrderItem(ctx, o.ID, domain.AddOrderItemRequest{MenuItemID: f.item.ID.String(), Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrOrderTerminal)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
}

func TestAddOrderItemComped(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	o, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{Type: string(domain.OrderTypeDineIn)})
	require.NoError(t, err)

	zero := decimal.Zero
	comped, err := f.svc.AddOrderItem(ctx, o.ID, domain.AddOrderItemRequest{
		MenuItemID: f.item.ID.String(),
		Quantity:   2,
		UnitPrice:  &zero,
	})
	require.NoError(t, err)
	assert.True(t, comped.UnitPrice.IsZero())
	assert.True(t, comped.TotalPrice.IsZero())

	menuPriced, err := f.svc.AddOrderItem(ctx, o.ID, domain.AddOrderItemRequest{MenuItemID: f.item.ID.String(), Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "15.99", menuPriced.UnitPrice.StringFixed(2))

	got, err := f.svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "15.99", got.Subtotal.StringFixed(2))
}

func TestCancelRefusedWhileVoidPending(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	o := f.newOrder(t, 1)
	require.NoError(t, f.db.Model(&entities.Order{}).Where("id = ?", o.ID).Update("void_status", string(domain.VoidRequested)).Error)

	_, err := f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCancelled)
	assert.ErrorIs(t, err, domain.ErrVoidPending)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))

	got, err := f.svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderPending), got.Status)
	assert.NotContains(t, f.recorder.Keys(), events.OrderCancelled)

	require.NoError(t, f.db.Model(&entities.Order{}).Where("id = ?", o.ID).Update("void_status", string(domain.VoidRejected)).Error)
	cancelled, err := f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderCancelled), cancelled.Status)
}

func TestCompleteOrderDeductsStock(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	o := f.newOrder(t, 2)

	_, err := f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderPreparing)
	require.NoError(t, err)

	completed, err := f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderCompleted), completed.Status)
	require.NotNil(t, completed.CompletedAt)

	assert.Equal(t, "9.400", f.stock(t, f.chicken.ID))
	assert.Equal(t, "4.900", f.stock(t, f.oil.ID))
	assert.Equal(t, []string{events.OrderCompleted}, f.recorder.Keys())

	t.Run("second completion is rejected without a second deduction", func(t *testing.T) {
		_, err := f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCompleted)
		assert.ErrorIs(t, err, domain.ErrOrderAlreadyCompleted)
		assert.Equal(t, "9.400", f.stock(t, f.chicken.ID))

		var movements int64
		require.NoError(t, f.db.Model(&entities.StockMovement{}).Where("ingredient_id = ?", f.chicken.ID).Count(&movements).Error)
		assert.EqualValues(t, 1, movements)
	})

	t.Run("completed orders are terminal", func(t *testing.T) {
		_, err := f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCancelled)
		assert.ErrorIs(t, err, domain.ErrOrderTerminal)
	})
}

func TestConcurrentCompletionDeductsOnce(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	o := f.newOrder(t, 2)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCompleted)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, "9.400", f.stock(t, f.chicken.ID))
}

func TestCompleteOrderSkipsVoidedItems(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	o := f.newOrder(t, 2)

	extra, err := f.svc.AddOrderItem(ctx, o.ID, domain.AddOrderItemRequest{MenuItemID: f.item.ID.String(), Quantity: 3})
	require.NoError(t, err)
	_, err = f.svc.UpdateOrderItemStatus(ctx, extra.ID, domain.ItemVoided)
	require.NoError(t, err)

	got, err := f.svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "31.98", got.Subtotal.StringFixed(2))

	_, err = f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, "9.400", f.stock(t, f.chicken.ID))
}

func TestCompleteOrderLowStockAlert(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	require.NoError(t, f.db.Model(f.chicken).Update("current_stock", dbtest.Dec(t, "2.5")).Error)

	o := f.newOrder(t, 2)
	_, err := f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCompleted)
	require.NoError(t, err)

	require.Len(t, f.notifier.alerts, 1)
	assert.Equal(t, "Chicken", f.notifier.alerts[0].Name)
	assert.Equal(t, "1.900", f.notifier.alerts[0].CurrentStock.StringFixed(3))
}

func TestCompleteOrderStrictRollsBack(t *testing.T) {
	f := newFixture(t, domain.PolicyStrict)
	ctx := context.Background()
	o := f.newOrder(t, 2)
	require.NoError(t, f.db.Delete(f.oil).Error)

	_, err := f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCompleted)
	assert.ErrorIs(t, err, domain.ErrMissingReference)

	got, err := f.svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderPending), got.Status)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, "10.000", f.stock(t, f.chicken.ID))
	assert.Empty(t, f.recorder.Keys())
}

func TestUpdateOrderStatusRejectsVoid(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	o := f.newOrder(t, 1)

	_, err := f.svc.UpdateOrderStatus(context.Background(), o.ID, domain.OrderVoided)
	assert.ErrorIs(t, err, domain.ErrVoidRequiresApproval)

	_, err = f.svc.UpdateOrderStatus(context.Background(), uuid.NewString(), domain.OrderReady)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderItemStatusStamps(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	o := f.newOrder(t, 1)

	got, err := f.svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	itemID := got.Items[0].ID

	preparing, err := f.svc.UpdateOrderItemStatus(ctx, itemID, domain.ItemPreparing)
	require.NoError(t, err)
	require.NotNil(t, preparing.SentToKitchenAt)
	assert.Nil(t, preparing.ReadyAt)

	ready, err := f.svc.UpdateOrderItemStatus(ctx, itemID, domain.ItemReady)
	require.NoError(t, err)
	require.NotNil(t, ready.ReadyAt)
	assert.Equal(t, preparing.SentToKitchenAt.Unix(), ready.SentToKitchenAt.Unix())

	_, err = f.svc.UpdateOrderItemStatus(ctx, itemID, domain.ItemPending)
	assert.ErrorIs(t, err, domain.ErrInvalidItemTransition)

	_, err = f.svc.UpdateOrderItemStatus(ctx, uuid.NewString(), domain.ItemReady)
	assert.ErrorIs(t, err, domain.ErrOrderItemNotFound)
}

func TestRecordPaymentAndListOrders(t *testing.T) {
	f := newFixture(t, domain.PolicyLenient)
	ctx := context.Background()
	o := f.newOrder(t, 1)
	f.newOrder(t, 1)

	paid, err := f.svc.RecordPayment(ctx, o.ID, domain.RecordPaymentRequest{
		PaymentMethod: "card",
		PaymentStatus: string(domain.PaymentPaid),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentPaid), paid.PaymentStatus)

	_, err = f.svc.UpdateOrderStatus(ctx, o.ID, domain.OrderCompleted)
	require.NoError(t, err)

	all, total, err := f.svc.ListOrders(ctx, domain.OrderFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	completed, total, err := f.svc.ListOrders(ctx, domain.OrderFilter{Status: string(domain.OrderCompleted)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, completed, 1)
	assert.Equal(t, o.ID, completed[0].ID)
}
