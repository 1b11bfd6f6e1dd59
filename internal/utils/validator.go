package utils

import (
	"calorie-snap/domain"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("meal_type", func(fl validator.FieldLevel) bool {
		return domain.IsValidMealType(fl.Field().String())
	})
}
