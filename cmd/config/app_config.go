package config

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/api/handlers"
	"Restaurant-POS-Backend/internal/api/routes"
	"Restaurant-POS-Backend/internal/middleware"
	"Restaurant-POS-Backend/internal/utils"
	"Restaurant-POS-Backend/internal/utils/mailing"
	"Restaurant-POS-Backend/internal/utils/storage"
	"Restaurant-POS-Backend/pkg/costing"
	"Restaurant-POS-Backend/pkg/events"
	"Restaurant-POS-Backend/pkg/jwt"
	applog "Restaurant-POS-Backend/pkg/logger"
	"Restaurant-POS-Backend/pkg/menu"
	"Restaurant-POS-Backend/pkg/order"
	"Restaurant-POS-Backend/pkg/report"
	"Restaurant-POS-Backend/pkg/shift"
	"Restaurant-POS-Backend/pkg/stock"
	"Restaurant-POS-Backend/pkg/void"
	"Restaurant-POS-Backend/pkg/zreport"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NewApp wires every repository, service and handler onto one fiber app. The
// returned cleanup closes the event publisher.
func NewApp(db *gorm.DB, appLog *applog.Logger) (*fiber.App, func(), error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        50,
		Expiration: 1 * time.Second,
	}))

	// behaviour settings
	policy := domain.ParseReferencePolicy(utils.GetConfig("STOCK_POLICY"))
	reportOptions, err := loadReportOptions()
	if err != nil {
		return nil, nil, err
	}

	// utils
	s3 := storage.NewAwsS3()
	publisher := newPublisher(appLog)
	var notifier stock.LowStockNotifier = stock.NoopNotifier{}
	if to := utils.GetConfig("LOW_STOCK_ALERT_EMAIL"); to != "" {
		notifier = mailing.NewLowStockMailer(to)
	}

	// Repository
	orderRepository := order.NewOrderRepository(db)
	stockRepository := stock.NewStockRepository(db)
	costingRepository := costing.NewCostingRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	voidRepository := void.NewVoidRepository(db)
	reportRepository := report.NewReportRepository(db)
	shiftRepository := shift.NewShiftRepository(db)
	zReportRepository := zreport.NewZReportRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	stockLedger := stock.NewStockLedger(stockRepository, policy, appLog)
	orderService := order.NewOrderService(orderRepository, stockLedger, publisher, notifier, appLog)
	costingService := costing.NewCostingService(costingRepository, policy, appLog)
	menuService := menu.NewMenuService(menuRepository)
	voidService := void.NewVoidService(voidRepository, publisher, appLog)
	reportService := report.NewReportService(reportRepository, reportOptions, appLog)
	shiftService := shift.NewShiftService(shiftRepository, appLog)
	zReportService := zreport.NewZReportService(zReportRepository, s3, appLog)

	// Handler
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	voidHandler := handlers.NewVoidHandler(voidService, validator)
	menuHandler := handlers.NewMenuHandler(menuService, costingService, stockLedger, validator)
	reportHandler := handlers.NewReportHandler(reportService)
	shiftHandler := handlers.NewShiftHandler(shiftService, validator)
	zReportHandler := handlers.NewZReportHandler(zReportService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		OrderHandler:   orderHandler,
		VoidHandler:    voidHandler,
		MenuHandler:    menuHandler,
		ReportHandler:  reportHandler,
		ShiftHandler:   shiftHandler,
		ZReportHandler: zReportHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()

	cleanup := func() {
		publisher.Close()
		_ = file.Close()
	}
	return app, cleanup, nil
}

func newPublisher(appLog *applog.Logger) events.Publisher {
	url := utils.GetConfig("RABBITMQ_URL")
	if url == "" {
		return events.NoopPublisher{}
	}

	publisher, err := events.NewRabbitPublisher(url, appLog)
	if err != nil {
		appLog.Error("rabbitmq unavailable, order events disabled", "error", err)
		return events.NoopPublisher{}
	}
	return publisher
}

func loadReportOptions() (report.Options, error) {
	options := report.DefaultOptions()

	if v := utils.GetConfig("COGS_STRATEGY"); v != "" {
		strategy, err := domain.ParseCogsStrategy(v)
		if err != nil {
			return options, err
		}
		options.DefaultCogs = strategy
	}

	var err error
	if options.FlatCogsRate, err = decimalOr("FLAT_COGS_RATE", options.FlatCogsRate); err != nil {
		return options, err
	}
	if options.PrimeCostTarget, err = decimalOr("PRIME_COST_TARGET", options.PrimeCostTarget); err != nil {
		return options, err
	}
	if options.PrimeCostWarningBand, err = decimalOr("PRIME_COST_WARNING_BAND", options.PrimeCostWarningBand); err != nil {
		return options, err
	}
	return options, nil
}

func decimalOr(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v := utils.GetConfig(key)
	if v == "" {
		return fallback, nil
	}
	return decimal.NewFromString(v)
}
