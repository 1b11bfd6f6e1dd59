package main

import (
	"calorie-snap/cmd/config"
	migration "calorie-snap/cmd/database/migrate"
	"calorie-snap/internal/utils"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	if err := app.Listen(fmt.Sprintf(":%s", utils.GetConfig("APP_PORT"))); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
