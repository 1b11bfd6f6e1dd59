package setting

import (
	"calorie-snap/domain"
	"calorie-snap/entities"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSettingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(&entities.User{}, &entities.UserSetting{})
	require.NoError(t, err, "Failed to migrate schema")

	return db
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestGetSettingsDefaults(t *testing.T) {
	svc := NewSettingService(NewSettingRepository(setupSettingTestDB(t)), 0)

	settings, err := svc.GetSettings(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, domain.SettingsResponse{
		DailyCalorieGoal:     2000,
		NotificationsEnabled: true,
		DarkModeEnabled:      false,
	}, settings)
}

func TestGetSettingsInvalidUser(t *testing.T) {
	svc := NewSettingService(NewSettingRepository(setupSettingTestDB(t)), 2000)

	_, err := svc.GetSettings(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingService(NewSettingRepository(setupSettingTestDB(t)), 2000)
	userID := uuid.New()

	updated, err := svc.UpdateSettings(ctx, domain.UpdateSettingsRequest{
		DailyCalorieGoal: intPtr(1800),
		DarkModeEnabled:  boolPtr(true),
	}, userID.String())
	require.NoError(t, err)
	assert.Equal(t, 1800, updated.DailyCalorieGoal)
	assert.True(t, updated.NotificationsEnabled)
	assert.True(t, updated.DarkModeEnabled)

	// second update goes through the conflict path and keeps untouched fields
	updated, err = svc.UpdateSettings(ctx, domain.UpdateSettingsRequest{
		NotificationsEnabled: boolPtr(false),
	}, userID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.SettingsResponse{
		DailyCalorieGoal:     1800,
		NotificationsEnabled: false,
		DarkModeEnabled:      true,
	}, updated)

	goal, err := svc.CalorieGoal(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1800, goal)
}

func TestUpdateSettingsRejectsNonPositiveGoal(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingService(NewSettingRepository(setupSettingTestDB(t)), 2000)
	userID := uuid.New()

	for _, goal := range []int{0, -100} {
		_, err := svc.UpdateSettings(ctx, domain.UpdateSettingsRequest{DailyCalorieGoal: intPtr(goal)}, userID.String())
		assert.ErrorIs(t, err, domain.ErrInvalidGoal)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	goal, err := svc.CalorieGoal(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2000, goal)
}

func TestCalorieGoalUsesConfiguredDefault(t *testing.T) {
	svc := NewSettingService(NewSettingRepository(setupSettingTestDB(t)), 2500)

	goal, err := svc.CalorieGoal(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2500, goal)
}
