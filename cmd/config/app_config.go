package config

import (
	"calorie-snap/internal/api/handlers"
	"calorie-snap/internal/api/routes"
	"calorie-snap/internal/middleware"
	"calorie-snap/internal/utils"
	"calorie-snap/internal/utils/mailing"
	"calorie-snap/internal/utils/storage"
	"calorie-snap/pkg/jwt"
	"calorie-snap/pkg/meal"
	"calorie-snap/pkg/setting"
	"calorie-snap/pkg/tracker"
	"calorie-snap/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	loc, err := loadLocation(utils.GetConfig("APP_TIMEZONE"))
	if err != nil {
		return nil, err
	}

	// setting up logging and limiter
	err = os.MkdirAll("./logs", os.ModePerm)
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
		TimeZone:   loc.String(),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	settingRepository := setting.NewSettingRepository(db)
	mealRepository := meal.NewMealRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	userService := user.NewUserService(userRepository, jwtService)
	settingService := setting.NewSettingService(
		settingRepository,
		utils.GetConfigInt("DEFAULT_CALORIE_GOAL", 0),
	)
	nutritionTracker := tracker.NewNutritionTracker(mealRepository, settingService, loc)
	mealService := meal.NewMealService(
		nutritionTracker,
		settingService,
		userRepository,
		s3,
		mailer,
		utils.GetConfig("APP_URL"),
		loc,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	mealHandler := handlers.NewMealHandler(mealService, validator)
	settingHandler := handlers.NewSettingHandler(settingService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		MealHandler:    mealHandler,
		SettingHandler: settingHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
