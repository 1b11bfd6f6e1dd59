package meal

import (
	"calorie-snap/domain"
	"calorie-snap/entities"
	"calorie-snap/pkg/tracker"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type (
	// MealRepository persists meals for the tracker.
	MealRepository interface {
		tracker.MealStore
	}

	mealRepository struct {
		db *gorm.DB
	}
)

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Append(ctx context.Context, meal *entities.Meal) error {
	// timestamps are stored in UTC so range queries compare consistently across drivers
	row := *meal
	row.CreatedAt = row.CreatedAt.UTC()
	row.User = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Meal{}).Where("id = ?", row.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateMealID
		}

		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateMealID
			}
			return err
		}
		return nil
	})
}

func (r *mealRepository) FindByID(ctx context.Context, id string) (*entities.Meal, error) {
	var meal entities.Meal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entities.Meal, error) {
	var meals []*entities.Meal

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from.UTC(), to.UTC()).
		Order("created_at asc").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	return meals, nil
}
