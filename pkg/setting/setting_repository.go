package setting

import (
	"calorie-snap/entities"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	SettingRepository interface {
		GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSetting, error)
		Upsert(ctx context.Context, setting *entities.UserSetting) error
	}

	settingRepository struct {
		db *gorm.DB
	}
)

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSetting, error) {
	var setting entities.UserSetting
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *entities.UserSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"daily_calorie_goal", "notifications_enabled", "dark_mode_enabled", "updated_at"}),
		}).
		Create(setting).Error
}
