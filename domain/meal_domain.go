package domain

import (
	"fmt"
	"mime/multipart"
	"time"
)

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"

	DefaultCalorieGoal = 2000
	DefaultHistoryDays = 7
	MaxHistoryDays     = 366
)

var (
	MessageSuccessLogMeal          = "meal logged successfully"
	MessageSuccessGetMeal          = "meal retrieved successfully"
	MessageSuccessGetDailyTotal    = "daily total retrieved successfully"
	MessageSuccessGetProgress      = "progress retrieved successfully"
	MessageSuccessGetDashboard     = "dashboard retrieved successfully"
	MessageSuccessGetMealHistory   = "meal history retrieved successfully"
	MessageSuccessSendDailySummary = "daily summary processed"

	MessageFailedLogMeal          = "failed to log meal"
	MessageFailedGetMeal          = "failed to retrieve meal"
	MessageFailedGetDailyTotal    = "failed to retrieve daily total"
	MessageFailedGetProgress      = "failed to retrieve progress"
	MessageFailedGetDashboard     = "failed to retrieve dashboard"
	MessageFailedGetMealHistory   = "failed to retrieve meal history"
	MessageFailedUploadMealPhoto  = "failed to upload meal photo"
	MessageFailedSendDailySummary = "failed to send daily summary"

	ErrMissingMealID     = fmt.Errorf("%w: meal id is required", ErrValidation)
	ErrMissingMealName   = fmt.Errorf("%w: meal name is required", ErrValidation)
	ErrMissingMealUser   = fmt.Errorf("%w: meal user is required", ErrValidation)
	ErrNegativeCalories  = fmt.Errorf("%w: calories must not be negative", ErrValidation)
	ErrDuplicateMealID   = fmt.Errorf("%w: meal id already exists", ErrValidation)
	ErrInvalidMealType   = fmt.Errorf("%w: meal type must be breakfast, lunch, dinner or snack", ErrValidation)
	ErrInvalidGoal       = fmt.Errorf("%w: calorie goal must be positive", ErrValidation)
	ErrInvalidDateRange  = fmt.Errorf("%w: range start is after range end", ErrValidation)
	ErrDateRangeTooLong  = fmt.Errorf("%w: range exceeds %d days", ErrValidation, MaxHistoryDays)
	ErrInvalidTimestamp  = fmt.Errorf("%w: created_at must be an RFC 3339 timestamp", ErrValidation)
	ErrInvalidConfidence = fmt.Errorf("%w: confidence must be between 0 and 1", ErrValidation)
	ErrInvalidImage      = fmt.Errorf("%w: invalid image format", ErrValidation)

	ErrMealNotFound = fmt.Errorf("meal %w", ErrNotFound)
)

func IsValidMealType(mealType string) bool {
	switch mealType {
	case "", MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

type (
	LogMealRequest struct {
		ID        string `json:"id" validate:"omitempty,max=64"`
		UserID    string `json:"user_id" validate:"omitempty,uuid"`
		Name      string `json:"name" validate:"required,max=255"`
		Calories  int    `json:"calories" validate:"min=0"`
		ImageURL  string `json:"image_url" validate:"omitempty,url"`
		Notes     string `json:"notes" validate:"omitempty,max=1000"`
		MealType  string `json:"meal_type" validate:"omitempty,meal_type"`
		CreatedAt string `json:"created_at" validate:"omitempty"`
	}

	// CalorieEstimation is the result of analysing a meal photo.
	CalorieEstimation struct {
		FoodName   string  `json:"food_name" validate:"required,max=255"`
		Calories   int     `json:"calories" validate:"min=0"`
		Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
	}

	LogEstimatedMealRequest struct {
		Estimation CalorieEstimation `json:"estimation" validate:"required"`
		ImageURL   string            `json:"image_url" validate:"omitempty,url"`
		Notes      string            `json:"notes" validate:"omitempty,max=1000"`
		MealType   string            `json:"meal_type" validate:"omitempty,meal_type"`
		CreatedAt  string            `json:"created_at" validate:"omitempty"`
	}

	LogMealWithPhotoRequest struct {
		Name     string                `form:"name" validate:"required,max=255"`
		Calories int                   `form:"calories" validate:"min=0"`
		Notes    string                `form:"notes" validate:"omitempty,max=1000"`
		MealType string                `form:"meal_type" validate:"omitempty,meal_type"`
		Image    *multipart.FileHeader `form:"image" validate:"required"`
	}

	Meal struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		Name      string    `json:"name"`
		Calories  int       `json:"calories"`
		ImageURL  string    `json:"image_url,omitempty"`
		Notes     string    `json:"notes,omitempty"`
		MealType  string    `json:"meal_type,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	// DailyCalories is derived on read; TotalCalories always equals the sum of Meals.
	DailyCalories struct {
		Date          string `json:"date"`
		TotalCalories int    `json:"total_calories"`
		Goal          int    `json:"goal"`
		Meals         []Meal `json:"meals"`
	}

	Progress struct {
		Percentage int `json:"percentage"`
		Remaining  int `json:"remaining"`
	}

	DashboardResponse struct {
		Daily    DailyCalories `json:"daily"`
		Progress Progress      `json:"progress"`
	}

	HistoryResponse struct {
		From string          `json:"from"`
		To   string          `json:"to"`
		Days []DailyCalories `json:"days"`
	}

	SendDailySummaryRequest struct {
		Date string `json:"date" validate:"omitempty"`
	}

	SendDailySummaryResponse struct {
		Sent   bool   `json:"sent"`
		Reason string `json:"reason,omitempty"`
	}
)
