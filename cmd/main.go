package main

import (
	"Restaurant-POS-Backend/cmd/config"
	migration "Restaurant-POS-Backend/cmd/database/migrate"
	"Restaurant-POS-Backend/cmd/database/seed"
	"Restaurant-POS-Backend/internal/utils"
	"Restaurant-POS-Backend/pkg/jwt"
	applog "Restaurant-POS-Backend/pkg/logger"
	"flag"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	withSeed := flag.Bool("seed", false, "insert demo data after migrating")
	tokenFor := flag.String("token", "", "print a bearer token for the given staff id and exit (use with -role)")
	role := flag.String("role", "user", "role claim for -token")
	flag.Parse()

	utils.LoadConfig()

	if *tokenFor != "" {
		fmt.Println(jwt.NewJWTService().GenerateTokenUser(*tokenFor, *role))
		return
	}

	logConfig := applog.DefaultConfig()
	logConfig.Level = applog.LogLevel(utils.GetConfigOr("LOG_LEVEL", "info"))
	logConfig.Format = utils.GetConfigOr("LOG_FORMAT", "json")
	logConfig.Component = "pos"
	appLog := applog.New(logConfig)
	defer appLog.Close()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if *withSeed {
		if err := seed.Seed(db); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	}

	app, cleanup, err := config.NewApp(db, appLog)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}
	defer cleanup()

	port := utils.GetConfigOr("APP_PORT", "8080")
	appLog.Info("server starting", "port", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
