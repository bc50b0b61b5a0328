package routes

import (
	"Restaurant-POS-Backend/internal/api/handlers"
	"Restaurant-POS-Backend/internal/middleware"
	"Restaurant-POS-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	OrderHandler   handlers.OrderHandler
	VoidHandler    handlers.VoidHandler
	MenuHandler    handlers.MenuHandler
	ReportHandler  handlers.ReportHandler
	ShiftHandler   handlers.ShiftHandler
	ZReportHandler handlers.ZReportHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Orders()
	c.Voids()
	c.Menu()
	c.Reports()
	c.Shifts()
	c.ZReports()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) Orders() {
	orders := c.App.Group("/api/v1/orders", c.auth())

	orders.Post("", c.OrderHandler.CreateOrder)
	orders.Get("", c.OrderHandler.ListOrders)
	orders.Get("/:id", c.OrderHandler.GetOrder)
	orders.Patch("/:id/status", c.OrderHandler.UpdateOrderStatus)
	orders.Patch("/:id/charges", c.OrderHandler.UpdateOrderCharges)
	orders.Patch("/:id/payment", c.OrderHandler.RecordPayment)
	orders.Post("/:id/items", c.OrderHandler.AddOrderItem)
	orders.Patch("/items/:itemId/status", c.OrderHandler.UpdateOrderItemStatus)

	// void workflow
	orders.Post("/:id/void", c.VoidHandler.RequestVoid)
	orders.Post("/:id/void/approve", c.Middleware.AdminOnly(), c.VoidHandler.ApproveVoid)
	orders.Post("/:id/void/reject", c.Middleware.AdminOnly(), c.VoidHandler.RejectVoid)
	orders.Get("/:id/void/audit", c.VoidHandler.GetVoidAudit)
}

func (c *Config) Voids() {
	voids := c.App.Group("/api/v1/voids", c.auth(), c.Middleware.AdminOnly())
	voids.Get("/pending", c.VoidHandler.GetPendingVoids)
}

func (c *Config) Menu() {
	admin := c.Middleware.AdminOnly()

	categories := c.App.Group("/api/v1/categories", c.auth())
	categories.Post("", admin, c.MenuHandler.CreateCategory)

	menuItems := c.App.Group("/api/v1/menu-items", c.auth())
	menuItems.Get("", c.MenuHandler.GetMenuItems)
	menuItems.Post("", admin, c.MenuHandler.CreateMenuItem)
	menuItems.Post("/costs/recalculate", admin, c.MenuHandler.UpdateAllMenuItemCosts)
	menuItems.Get("/:id", c.MenuHandler.GetMenuItem)
	menuItems.Put("/:id", admin, c.MenuHandler.UpdateMenuItem)
	menuItems.Get("/:id/cost", c.MenuHandler.CalculateMenuItemCost)
	menuItems.Post("/:id/cost", c.MenuHandler.UpdateMenuItemCost)
	menuItems.Get("/:id/cost-analysis", c.MenuHandler.GetMenuItemCostAnalysis)

	ingredients := c.App.Group("/api/v1/ingredients", c.auth())
	ingredients.Get("", c.MenuHandler.GetIngredients)
	ingredients.Post("", admin, c.MenuHandler.CreateIngredient)
	ingredients.Put("/:id", admin, c.MenuHandler.UpdateIngredient)
	ingredients.Delete("/:id", admin, c.MenuHandler.DeleteIngredient)
	ingredients.Get("/:id/movements", c.MenuHandler.GetStockMovements)

	recipes := c.App.Group("/api/v1/recipes", c.auth(), admin)
	recipes.Post("", c.MenuHandler.CreateRecipe)
	recipes.Delete("/:id", c.MenuHandler.DeleteRecipe)
}

func (c *Config) Reports() {
	reports := c.App.Group("/api/v1/reports", c.auth(), c.Middleware.AdminOnly())

	reports.Get("/profitability/items", c.ReportHandler.ProfitabilityByItem)
	reports.Get("/profitability/categories", c.ReportHandler.ProfitabilityByCategory)
	reports.Get("/profitability/summary", c.ReportHandler.ProfitabilitySummary)
	reports.Get("/profitability/top", c.ReportHandler.TopProfitableItems)
	reports.Get("/profitability/bottom", c.ReportHandler.BottomProfitableItems)
	reports.Get("/prime-cost", c.ReportHandler.PrimeCost)
	reports.Get("/prime-cost/trend", c.ReportHandler.PrimeCostTrend)
	reports.Get("/profit-trend", c.ReportHandler.DailyProfitTrend)
	reports.Get("/consolidated", c.ReportHandler.ConsolidatedReport)
}

func (c *Config) Shifts() {
	shifts := c.App.Group("/api/v1/shifts", c.auth())

	shifts.Post("/clock-in", c.ShiftHandler.ClockIn)
	shifts.Post("/clock-out", c.ShiftHandler.ClockOut)
	shifts.Get("", c.Middleware.AdminOnly(), c.ShiftHandler.ListShifts)
}

func (c *Config) ZReports() {
	zReports := c.App.Group("/api/v1/z-reports", c.auth())

	zReports.Get("", c.ZReportHandler.ListZReports)
	zReports.Post("", c.Middleware.AdminOnly(), c.ZReportHandler.GenerateZReport)
	zReports.Delete("/:id", c.Middleware.AdminOnly(), c.ZReportHandler.DeleteZReport)
}
