package setting

import (
	"calorie-snap/domain"
	"calorie-snap/entities"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SettingService interface {
		GetSettings(ctx context.Context, userID string) (domain.SettingsResponse, error)
		UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest, userID string) (domain.SettingsResponse, error)

		// CalorieGoal lets the tracker read the user's goal.
		CalorieGoal(ctx context.Context, userID uuid.UUID) (int, error)
	}

	settingService struct {
		settingRepository SettingRepository
		defaultGoal       int
	}
)

func NewSettingService(settingRepository SettingRepository, defaultGoal int) SettingService {
	if defaultGoal <= 0 {
		defaultGoal = domain.DefaultCalorieGoal
	}
	return &settingService{
		settingRepository: settingRepository,
		defaultGoal:       defaultGoal,
	}
}

func (s *settingService) GetSettings(ctx context.Context, userID string) (domain.SettingsResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SettingsResponse{}, domain.ErrParseUUID
	}

	setting, err := s.load(ctx, userUUID)
	if err != nil {
		return domain.SettingsResponse{}, err
	}

	return toResponse(setting), nil
}

func (s *settingService) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest, userID string) (domain.SettingsResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SettingsResponse{}, domain.ErrParseUUID
	}

	setting, err := s.load(ctx, userUUID)
	if err != nil {
		return domain.SettingsResponse{}, err
	}

	if req.DailyCalorieGoal != nil {
		if *req.DailyCalorieGoal <= 0 {
			return domain.SettingsResponse{}, domain.ErrInvalidGoal
		}
		setting.DailyCalorieGoal = *req.DailyCalorieGoal
	}

	if req.NotificationsEnabled != nil {
		setting.NotificationsEnabled = *req.NotificationsEnabled
	}

	if req.DarkModeEnabled != nil {
		setting.DarkModeEnabled = *req.DarkModeEnabled
	}

	if err := s.settingRepository.Upsert(ctx, setting); err != nil {
		return domain.SettingsResponse{}, err
	}

	return toResponse(setting), nil
}

func (s *settingService) CalorieGoal(ctx context.Context, userID uuid.UUID) (int, error) {
	setting, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return setting.DailyCalorieGoal, nil
}

// load falls back to the defaults when the user has never saved settings.
func (s *settingService) load(ctx context.Context, userID uuid.UUID) (*entities.UserSetting, error) {
	setting, err := s.settingRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entities.UserSetting{
				UserID:               userID,
				DailyCalorieGoal:     s.defaultGoal,
				NotificationsEnabled: true,
				DarkModeEnabled:      false,
			}, nil
		}
		return nil, err
	}

	if setting.DailyCalorieGoal <= 0 {
		setting.DailyCalorieGoal = s.defaultGoal
	}
	return setting, nil
}

func toResponse(setting *entities.UserSetting) domain.SettingsResponse {
	return domain.SettingsResponse{
		DailyCalorieGoal:     setting.DailyCalorieGoal,
		NotificationsEnabled: setting.NotificationsEnabled,
		DarkModeEnabled:      setting.DarkModeEnabled,
	}
}
