package meal

import (
	"calorie-snap/domain"
	"calorie-snap/entities"
	"calorie-snap/pkg/tracker"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupMealTestDB creates an in-memory SQLite database for testing
func setupMealTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "Failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entities.User{}, &entities.UserSetting{}, &entities.Meal{})
	require.NoError(t, err, "Failed to migrate schema")

	return db
}

func TestMealRepositoryAppendAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(setupMealTestDB(t))
	userID := uuid.New()
	jakarta := time.FixedZone("WIB", 7*60*60)

	meal := &entities.Meal{
		ID:        "breakfast-1",
		UserID:    userID,
		Name:      "Oatmeal",
		Calories:  350,
		MealType:  domain.MealTypeBreakfast,
		Notes:     "with banana",
		CreatedAt: time.Date(2024, 6, 10, 8, 30, 0, 0, jakarta),
	}
	require.NoError(t, repo.Append(ctx, meal))

	found, err := repo.FindByID(ctx, "breakfast-1")
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)
	assert.Equal(t, "Oatmeal", found.Name)
	assert.Equal(t, 350, found.Calories)
	assert.Equal(t, domain.MealTypeBreakfast, found.MealType)
	assert.True(t, meal.CreatedAt.Equal(found.CreatedAt))

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrMealNotFound)
}

func TestMealRepositoryRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(setupMealTestDB(t))
	userID := uuid.New()
	at := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, &entities.Meal{ID: "m1", UserID: userID, Name: "Toast", Calories: 200, CreatedAt: at}))

	err := repo.Append(ctx, &entities.Meal{ID: "m1", UserID: userID, Name: "Cake", Calories: 800, CreatedAt: at})
	assert.ErrorIs(t, err, domain.ErrDuplicateMealID)

	found, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Toast", found.Name)
}

func TestMealRepositoryListBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(setupMealTestDB(t))
	alice, bob := uuid.New(), uuid.New()
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	for _, meal := range []*entities.Meal{
		{ID: "a3", UserID: alice, Name: "Dinner", Calories: 700, CreatedAt: day.Add(19 * time.Hour)},
		{ID: "a1", UserID: alice, Name: "Breakfast", Calories: 300, CreatedAt: day.Add(8 * time.Hour)},
		{ID: "a0", UserID: alice, Name: "Late snack", Calories: 150, CreatedAt: day.Add(-time.Second)},
		{ID: "a4", UserID: alice, Name: "Midnight", Calories: 90, CreatedAt: day.Add(24 * time.Hour)},
		{ID: "b1", UserID: bob, Name: "Lunch", Calories: 500, CreatedAt: day.Add(12 * time.Hour)},
	} {
		require.NoError(t, repo.Append(ctx, meal))
	}

	meals, err := repo.ListBetween(ctx, alice, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "a1", meals[0].ID)
	assert.Equal(t, "a3", meals[1].ID)
}

func TestTrackerOverRepository(t *testing.T) {
	ctx := context.Background()
	tr := tracker.NewNutritionTracker(NewMealRepository(setupMealTestDB(t)), nil, time.UTC)
	userID := uuid.New()
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	for i, calories := range []int{350, 550, 150} {
		require.NoError(t, tr.AddMeal(ctx, &entities.Meal{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      "meal",
			Calories:  calories,
			CreatedAt: day.Add(time.Duration(8+i*4) * time.Hour),
		}))
	}

	daily, err := tr.GetDailyTotal(ctx, userID, day)
	require.NoError(t, err)
	assert.Equal(t, 1050, daily.TotalCalories)

	progress, err := tr.GetProgress(ctx, userID, day, 2000)
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{Percentage: 53, Remaining: 950}, progress)

	history, err := tr.GetHistory(ctx, userID, day.AddDate(0, 0, -2), day)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 1050, history[0].TotalCalories)
	assert.Zero(t, history[1].TotalCalories)
	assert.Zero(t, history[2].TotalCalories)
}
