package routes_test

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/api/handlers"
	"Restaurant-POS-Backend/internal/api/routes"
	"Restaurant-POS-Backend/internal/middleware"
	"Restaurant-POS-Backend/internal/utils"
	"Restaurant-POS-Backend/internal/utils/dbtest"
	"Restaurant-POS-Backend/internal/utils/storage"
	"Restaurant-POS-Backend/pkg/costing"
	"Restaurant-POS-Backend/pkg/events"
	"Restaurant-POS-Backend/pkg/jwt"
	"Restaurant-POS-Backend/pkg/logger"
	"Restaurant-POS-Backend/pkg/menu"
	"Restaurant-POS-Backend/pkg/order"
	"Restaurant-POS-Backend/pkg/report"
	"Restaurant-POS-Backend/pkg/shift"
	"Restaurant-POS-Backend/pkg/stock"
	"Restaurant-POS-Backend/pkg/void"
	"Restaurant-POS-Backend/pkg/zreport"
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiTest struct {
	t       *testing.T
	app     *fiber.App
	admin   string
	cashier string
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newAPITest(t *testing.T) *apiTest {
	db := dbtest.New(t)
	log := logger.Discard()
	utils.InitValidator()

	jwtService := jwt.NewJWTServiceWithSecret("test-secret")
	stockLedger := stock.NewStockLedger(stock.NewStockRepository(db), domain.PolicyLenient, log)
	orderService := order.NewOrderService(order.NewOrderRepository(db), stockLedger, &events.Recorder{}, stock.NoopNotifier{}, log)
	costingService := costing.NewCostingService(costing.NewCostingRepository(db), domain.PolicyLenient, log)

	app := fiber.New()
	cfg := routes.Config{
		App:            app,
		OrderHandler:   handlers.NewOrderHandler(orderService, utils.Validate),
		VoidHandler:    handlers.NewVoidHandler(void.NewVoidService(void.NewVoidRepository(db), &events.Recorder{}, log), utils.Validate),
		MenuHandler:    handlers.NewMenuHandler(menu.NewMenuService(menu.NewMenuRepository(db)), costingService, stockLedger, utils.Validate),
		ReportHandler:  handlers.NewReportHandler(report.NewReportService(report.NewReportRepository(db), report.DefaultOptions(), log)),
		ShiftHandler:   handlers.NewShiftHandler(shift.NewShiftService(shift.NewShiftRepository(db), log), utils.Validate),
		ZReportHandler: handlers.NewZReportHandler(zreport.NewZReportService(zreport.NewZReportRepository(db), storage.NewAwsS3(), log), utils.Validate),
		Middleware:     middleware.NewMiddleware(),
		JWTService:     jwtService,
	}
	cfg.Setup()

	return &apiTest{
		t:       t,
		app:     app,
		admin:   jwtService.GenerateTokenUser(uuid.NewString(), domain.RoleAdmin),
		cashier: jwtService.GenerateTokenUser(uuid.NewString(), domain.RoleUser),
	}
}

func (a *apiTest) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(a.t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), "data: %s", env.Data)
	return v
}

func TestAuthAndRoles(t *testing.T) {
	a := newAPITest(t)

	status, _ := a.do(fiber.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = a.do(fiber.MethodGet, "/api/v1/orders", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = a.do(fiber.MethodGet, "/api/v1/orders", a.cashier, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, env := a.do(fiber.MethodPost, "/api/v1/menu-items", a.cashier, map[string]any{"name": "Soup", "price": "5"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.False(t, env.Status)

	status, _ = a.do(fiber.MethodGet, "/api/v1/reports/profitability/summary", a.cashier, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestOrderToVoidFlow(t *testing.T) {
	a := newAPITest(t)

	status, env := a.do(fiber.MethodPost, "/api/v1/menu-items", a.admin, map[string]any{"name": "Grilled Chicken", "price": "15.99"})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	item := decode[domain.MenuItem](t, env)

	status, env = a.do(fiber.MethodPost, "/api/v1/ingredients", a.admin, map[string]any{
		"name": "Chicken", "unit": "kg", "current_stock": "10", "min_stock": "2", "cost_per_unit": "5.50",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	chicken := decode[domain.Ingredient](t, env)

	status, env = a.do(fiber.MethodPost, "/api/v1/recipes", a.admin, map[string]any{
		"menu_item_id": item.ID, "ingredient_id": chicken.ID, "quantity": "0.3",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)

	status, env = a.do(fiber.MethodPost, "/api/v1/orders", a.cashier, map[string]any{"type": "dine_in"})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	o := decode[domain.Order](t, env)
	assert.Equal(t, "pending", o.Status)

	status, env = a.do(fiber.MethodPost, "/api/v1/orders/"+o.ID+"/items", a.cashier, map[string]any{
		"menu_item_id": item.ID, "quantity": 2, "unit_price": "15.99", "total_price": "31.00",
	})
	assert.Equal(t, fiber.StatusBadRequest, status, "total must equal quantity x unit price")

	status, env = a.do(fiber.MethodPost, "/api/v1/orders/"+o.ID+"/items", a.cashier, map[string]any{
		"menu_item_id": item.ID, "quantity": 2,
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)

	status, env = a.do(fiber.MethodPatch, "/api/v1/orders/"+o.ID+"/status", a.cashier, map[string]any{"status": "voided"})
	assert.Equal(t, fiber.StatusConflict, status)

	status, env = a.do(fiber.MethodPatch, "/api/v1/orders/"+o.ID+"/status", a.cashier, map[string]any{"status": "completed"})
	require.Equal(t, fiber.StatusOK, status, env.Error)

	status, env = a.do(fiber.MethodGet, "/api/v1/ingredients/"+chicken.ID+"/movements", a.cashier, nil)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	movements := decode[struct {
		Movements []domain.StockMovement `json:"movements"`
	}](t, env)
	require.Len(t, movements.Movements, 1)
	assert.Equal(t, "-0.600", movements.Movements[0].Quantity.StringFixed(3))

	status, _ = a.do(fiber.MethodPatch, "/api/v1/orders/"+o.ID+"/status", a.cashier, map[string]any{"status": "completed"})
	assert.Equal(t, fiber.StatusConflict, status)

	status, env = a.do(fiber.MethodPost, "/api/v1/orders/"+o.ID+"/void", a.cashier, map[string]any{"reason": "wrong table"})
	require.Equal(t, fiber.StatusOK, status, env.Error)

	status, _ = a.do(fiber.MethodPost, "/api/v1/orders/"+o.ID+"/void/approve", a.cashier, map[string]any{"refund_method": "cash"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = a.do(fiber.MethodPost, "/api/v1/orders/"+o.ID+"/void/approve", a.admin, map[string]any{"refund_method": "cheque"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = a.do(fiber.MethodPost, "/api/v1/orders/"+o.ID+"/void/approve", a.admin, map[string]any{"refund_method": "cash"})
	require.Equal(t, fiber.StatusOK, status, env.Error)
	result := decode[domain.VoidResult](t, env)
	assert.Equal(t, "voided", result.Order.Status)
	assert.Equal(t, "cash", result.Order.Void.RefundMethod)

	status, env = a.do(fiber.MethodGet, "/api/v1/orders/"+o.ID+"/void/audit", a.cashier, nil)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	audit := decode[[]domain.VoidAuditEntry](t, env)
	require.Len(t, audit, 2)
	assert.Equal(t, domain.VoidActionRequest, audit[0].Action)
	assert.Equal(t, domain.VoidActionApprove, audit[1].Action)

	status, env = a.do(fiber.MethodGet, "/api/v1/orders/"+uuid.NewString(), a.cashier, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestReportEndpoints(t *testing.T) {
	a := newAPITest(t)

	status, env := a.do(fiber.MethodGet, "/api/v1/reports/profitability/summary?cogs=flat", a.admin, nil)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	summary := decode[domain.ProfitabilitySummary](t, env)
	assert.Equal(t, "flat", summary.CogsStrategy)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.True(t, summary.ProfitMarginPercent.IsZero())

	status, _ = a.do(fiber.MethodGet, "/api/v1/reports/profitability/summary?cogs=magic", a.admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = a.do(fiber.MethodGet, "/api/v1/reports/profit-trend?date_from=2026-13-01", a.admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = a.do(fiber.MethodGet, "/api/v1/reports/profit-trend?date_from=2026-03-01&date_to=2026-03-07", a.admin, nil)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	trend := decode[[]domain.DailyProfit](t, env)
	assert.Len(t, trend, 7)

	status, _ = a.do(fiber.MethodGet, "/api/v1/reports/consolidated?location_ids="+uuid.NewString(), a.admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = a.do(fiber.MethodGet, "/api/v1/reports/consolidated?location_ids="+uuid.NewString()+",abc", a.admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = a.do(fiber.MethodGet, "/api/v1/reports/profit-trend?date_from=1900-01-01&date_to=2999-12-31", a.admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = a.do(fiber.MethodGet, "/api/v1/reports/profit-trend?date_from=2026-03-07&date_to=2026-03-01", a.admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// listings take long ranges but not inverted ones
	status, env = a.do(fiber.MethodGet, "/api/v1/orders?date_from=2020-01-01&date_to=2026-12-31", a.cashier, nil)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	status, _ = a.do(fiber.MethodGet, "/api/v1/orders?date_from=2026-03-07&date_to=2026-03-01", a.cashier, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPing(t *testing.T) {
	a := newAPITest(t)

	res, err := a.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
