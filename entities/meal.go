package entities

import (
	"github.com/google/uuid"
	"time"
)

// Meal is append-only: once stored it is never updated or deleted.
type Meal struct {
	ID        string    `gorm:"type:varchar(64);primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_meals_user_created,priority:1" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Calories  int       `gorm:"not null" json:"calories"`
	ImageURL  string    `json:"image_url,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	MealType  string    `gorm:"type:varchar(16)" json:"meal_type,omitempty"` // "breakfast", "lunch", "dinner", "snack"
	CreatedAt time.Time `gorm:"not null;index:idx_meals_user_created,priority:2" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
