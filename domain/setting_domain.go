package domain

var (
	MessageSuccessGetSettings    = "settings retrieved successfully"
	MessageSuccessUpdateSettings = "settings updated successfully"

	MessageFailedGetSettings    = "failed to retrieve settings"
	MessageFailedUpdateSettings = "failed to update settings"
)

type (
	SettingsResponse struct {
		DailyCalorieGoal     int  `json:"daily_calorie_goal"`
		NotificationsEnabled bool `json:"notifications_enabled"`
		DarkModeEnabled      bool `json:"dark_mode_enabled"`
	}

	// UpdateSettingsRequest leaves nil fields untouched.
	UpdateSettingsRequest struct {
		DailyCalorieGoal     *int  `json:"daily_calorie_goal" validate:"omitempty,min=1"`
		NotificationsEnabled *bool `json:"notifications_enabled"`
		DarkModeEnabled      *bool `json:"dark_mode_enabled"`
	}
)
