package tracker

import (
	"calorie-snap/domain"
	"calorie-snap/entities"
	"context"
	"github.com/google/uuid"
	"math"
	"slices"
	"sync"
	"time"
)

type (
	// GoalSource supplies the user's daily calorie goal.
	GoalSource interface {
		CalorieGoal(ctx context.Context, userID uuid.UUID) (int, error)
	}

	NutritionTracker interface {
		AddMeal(ctx context.Context, meal *entities.Meal) error
		GetMeal(ctx context.Context, userID uuid.UUID, id string) (domain.Meal, error)
		GetDailyTotal(ctx context.Context, userID uuid.UUID, date time.Time) (domain.DailyCalories, error)
		GetProgress(ctx context.Context, userID uuid.UUID, date time.Time, goal int) (domain.Progress, error)
		GetHistory(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyCalories, error)
	}

	nutritionTracker struct {
		// mu makes AddMeal atomic with respect to the read operations.
		mu    sync.RWMutex
		store MealStore
		goals GoalSource
		loc   *time.Location
		now   func() time.Time
	}
)

// NewNutritionTracker builds a tracker whose calendar days are computed in loc.
// A nil goals falls back to domain.DefaultCalorieGoal, a nil loc to time.Local.
func NewNutritionTracker(store MealStore, goals GoalSource, loc *time.Location) NutritionTracker {
	if loc == nil {
		loc = time.Local
	}
	return &nutritionTracker{
		store: store,
		goals: goals,
		loc:   loc,
		now:   time.Now,
	}
}

func (t *nutritionTracker) AddMeal(ctx context.Context, meal *entities.Meal) error {
	if err := validateMeal(meal); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = t.now()
	}

	return t.store.Append(ctx, meal)
}

func (t *nutritionTracker) GetMeal(ctx context.Context, userID uuid.UUID, id string) (domain.Meal, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	meal, err := t.store.FindByID(ctx, id)
	if err != nil {
		return domain.Meal{}, err
	}
	if meal.UserID != userID {
		return domain.Meal{}, domain.ErrMealNotFound
	}

	return t.toMeal(meal), nil
}

func (t *nutritionTracker) GetDailyTotal(ctx context.Context, userID uuid.UUID, date time.Time) (domain.DailyCalories, error) {
	goal, err := t.calorieGoal(ctx, userID)
	if err != nil {
		return domain.DailyCalories{}, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	start := t.startOfDay(date)
	meals, err := t.store.ListBetween(ctx, userID, start, nextDay(start))
	if err != nil {
		return domain.DailyCalories{}, err
	}

	return t.aggregate(start, goal, meals), nil
}

func (t *nutritionTracker) GetProgress(ctx context.Context, userID uuid.UUID, date time.Time, goal int) (domain.Progress, error) {
	if goal <= 0 {
		return domain.Progress{}, domain.ErrInvalidGoal
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	start := t.startOfDay(date)
	meals, err := t.store.ListBetween(ctx, userID, start, nextDay(start))
	if err != nil {
		return domain.Progress{}, err
	}

	return CalculateProgress(sumCalories(meals), goal), nil
}

func (t *nutritionTracker) GetHistory(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyCalories, error) {
	first := t.startOfDay(from)
	last := t.startOfDay(to)
	if first.After(last) {
		return nil, domain.ErrInvalidDateRange
	}

	days := 0
	for d := last; !d.Before(first); d = previousDay(d) {
		days++
		if days > domain.MaxHistoryDays {
			return nil, domain.ErrDateRangeTooLong
		}
	}

	goal, err := t.calorieGoal(ctx, userID)
	if err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	meals, err := t.store.ListBetween(ctx, userID, first, nextDay(last))
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]*entities.Meal, days)
	for _, meal := range meals {
		key := meal.CreatedAt.In(t.loc).Format(domain.DateFormat)
		byDay[key] = append(byDay[key], meal)
	}

	history := make([]domain.DailyCalories, 0, days)
	for d := last; !d.Before(first); d = previousDay(d) {
		history = append(history, t.aggregate(d, goal, byDay[d.Format(domain.DateFormat)]))
	}

	return history, nil
}

// CalculateProgress clamps the percentage at 100; remaining goes negative once
// the goal is exceeded.
func CalculateProgress(totalCalories, goal int) domain.Progress {
	percentage := int(math.Round(float64(totalCalories) / float64(goal) * 100))
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	return domain.Progress{
		Percentage: percentage,
		Remaining:  goal - totalCalories,
	}
}

func (t *nutritionTracker) calorieGoal(ctx context.Context, userID uuid.UUID) (int, error) {
	if t.goals == nil {
		return domain.DefaultCalorieGoal, nil
	}
	return t.goals.CalorieGoal(ctx, userID)
}

func (t *nutritionTracker) aggregate(day time.Time, goal int, meals []*entities.Meal) domain.DailyCalories {
	sorted := slices.Clone(meals)
	slices.SortStableFunc(sorted, func(a, b *entities.Meal) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	result := domain.DailyCalories{
		Date:  day.Format(domain.DateFormat),
		Goal:  goal,
		Meals: make([]domain.Meal, 0, len(sorted)),
	}
	for _, meal := range sorted {
		result.TotalCalories += meal.Calories
		result.Meals = append(result.Meals, t.toMeal(meal))
	}

	return result
}

func (t *nutritionTracker) toMeal(meal *entities.Meal) domain.Meal {
	return ToMeal(meal, t.loc)
}

// ToMeal converts a stored meal into its response form with CreatedAt in loc.
func ToMeal(meal *entities.Meal, loc *time.Location) domain.Meal {
	return domain.Meal{
		ID:        meal.ID,
		UserID:    meal.UserID.String(),
		Name:      meal.Name,
		Calories:  meal.Calories,
		ImageURL:  meal.ImageURL,
		Notes:     meal.Notes,
		MealType:  meal.MealType,
		CreatedAt: meal.CreatedAt.In(loc),
	}
}

func (t *nutritionTracker) startOfDay(date time.Time) time.Time {
	local := date.In(t.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, t.loc)
}

// nextDay and previousDay step by calendar date so DST days keep their 23 or 25 hours.
func nextDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
}

func previousDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()-1, 0, 0, 0, 0, day.Location())
}

func sumCalories(meals []*entities.Meal) int {
	total := 0
	for _, meal := range meals {
		total += meal.Calories
	}
	return total
}

func validateMeal(meal *entities.Meal) error {
	if meal == nil || meal.ID == "" {
		return domain.ErrMissingMealID
	}
	if meal.UserID == uuid.Nil {
		return domain.ErrMissingMealUser
	}
	if meal.Name == "" {
		return domain.ErrMissingMealName
	}
	if meal.Calories < 0 {
		return domain.ErrNegativeCalories
	}
	if !domain.IsValidMealType(meal.MealType) {
		return domain.ErrInvalidMealType
	}
	return nil
}
