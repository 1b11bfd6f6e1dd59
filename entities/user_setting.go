package entities

import (
	"github.com/google/uuid"
)

type UserSetting struct {
	UserID               uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	DailyCalorieGoal     int       `gorm:"not null" json:"daily_calorie_goal"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	DarkModeEnabled      bool      `json:"dark_mode_enabled"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
