package routes

import (
	"calorie-snap/internal/api/handlers"
	"calorie-snap/internal/middleware"
	"calorie-snap/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	MealHandler    handlers.MealHandler
	SettingHandler handlers.SettingHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Meals()
	c.Settings()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}

func (c *Config) Meals() {
	meals := c.App.Group("/api/v1/meals", c.Middleware.AuthMiddleware(c.JWTService))

	// logging
	meals.Post("", c.MealHandler.LogMeal)
	meals.Post("/estimation", c.MealHandler.LogEstimatedMeal)
	meals.Post("/photo", c.MealHandler.LogMealWithPhoto)
	meals.Post("/summary", c.MealHandler.SendDailySummary)

	// aggregates
	meals.Get("/daily", c.MealHandler.GetDailyTotal)
	meals.Get("/progress", c.MealHandler.GetProgress)
	meals.Get("/dashboard", c.MealHandler.GetDashboard)
	meals.Get("/history", c.MealHandler.GetHistory)

	meals.Get("/:id", c.MealHandler.GetMeal)
}

func (c *Config) Settings() {
	settings := c.App.Group("/api/v1/settings", c.Middleware.AuthMiddleware(c.JWTService))
	settings.Get("", c.SettingHandler.GetSettings)
	settings.Put("", c.SettingHandler.UpdateSettings)
}
