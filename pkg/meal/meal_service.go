package meal

import (
	"calorie-snap/domain"
	"calorie-snap/entities"
	"calorie-snap/internal/utils/mailing"
	"calorie-snap/internal/utils/storage"
	"calorie-snap/pkg/setting"
	"calorie-snap/pkg/tracker"
	"calorie-snap/pkg/user"
	"context"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"html"
	"strings"
	"time"
)

type (
	MealService interface {
		LogMeal(ctx context.Context, req domain.LogMealRequest, userID string) (domain.Meal, error)
		LogEstimatedMeal(ctx context.Context, req domain.LogEstimatedMealRequest, userID string) (domain.Meal, error)
		LogMealWithPhoto(ctx context.Context, req domain.LogMealWithPhotoRequest, userID string) (domain.Meal, error)
		GetMeal(ctx context.Context, id string, userID string) (domain.Meal, error)
		GetDailyTotal(ctx context.Context, date string, userID string) (domain.DailyCalories, error)
		// GetProgress uses the user's configured goal when goal is nil.
		GetProgress(ctx context.Context, date string, goal *int, userID string) (domain.Progress, error)
		GetDashboard(ctx context.Context, date string, userID string) (domain.DashboardResponse, error)
		GetHistory(ctx context.Context, from, to string, userID string) (domain.HistoryResponse, error)
		SendDailySummary(ctx context.Context, req domain.SendDailySummaryRequest, userID string) (domain.SendDailySummaryResponse, error)
	}

	mealService struct {
		tracker        tracker.NutritionTracker
		settingService setting.SettingService
		userRepository user.UserRepository
		s3             storage.AwsS3
		mailer         mailing.Mailer
		appURL         string
		loc            *time.Location
		now            func() time.Time
	}
)

func NewMealService(
	nutritionTracker tracker.NutritionTracker,
	settingService setting.SettingService,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
	mailer mailing.Mailer,
	appURL string,
	loc *time.Location,
) MealService {
	if loc == nil {
		loc = time.Local
	}
	return &mealService{
		tracker:        nutritionTracker,
		settingService: settingService,
		userRepository: userRepository,
		s3:             s3,
		mailer:         mailer,
		appURL:         appURL,
		loc:            loc,
		now:            time.Now,
	}
}

func (s *mealService) LogMeal(ctx context.Context, req domain.LogMealRequest, userID string) (domain.Meal, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Meal{}, domain.ErrParseUUID
	}

	if req.UserID != "" && req.UserID != userUUID.String() {
		return domain.Meal{}, domain.ErrUnauthorizedAccess
	}

	createdAt, err := parseTimestamp(req.CreatedAt)
	if err != nil {
		return domain.Meal{}, err
	}

	meal := &entities.Meal{
		ID:        req.ID,
		UserID:    userUUID,
		Name:      strings.TrimSpace(req.Name),
		Calories:  req.Calories,
		ImageURL:  req.ImageURL,
		Notes:     req.Notes,
		MealType:  req.MealType,
		CreatedAt: createdAt,
	}
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}

	if err := s.tracker.AddMeal(ctx, meal); err != nil {
		return domain.Meal{}, err
	}

	return tracker.ToMeal(meal, s.loc), nil
}

func (s *mealService) LogEstimatedMeal(ctx context.Context, req domain.LogEstimatedMealRequest, userID string) (domain.Meal, error) {
	estimation := req.Estimation
	if estimation.Confidence < 0 || estimation.Confidence > 1 {
		return domain.Meal{}, domain.ErrInvalidConfidence
	}

	notes := req.Notes
	if notes == "" {
		notes = fmt.Sprintf("Estimated from photo (%.0f%% confidence)", estimation.Confidence*100)
	}

	return s.LogMeal(ctx, domain.LogMealRequest{
		Name:      estimation.FoodName,
		Calories:  estimation.Calories,
		ImageURL:  req.ImageURL,
		Notes:     notes,
		MealType:  req.MealType,
		CreatedAt: req.CreatedAt,
	}, userID)
}

func (s *mealService) LogMealWithPhoto(ctx context.Context, req domain.LogMealWithPhotoRequest, userID string) (domain.Meal, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Meal{}, domain.ErrParseUUID
	}

	if req.Image == nil {
		return domain.Meal{}, domain.ErrInvalidImage
	}

	mealID := uuid.New()
	fileName := fmt.Sprintf("meal-%s", mealID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.Image, "meals", storage.AllowImage...)
	if err != nil {
		return domain.Meal{}, err
	}

	meal := &entities.Meal{
		ID:       mealID.String(),
		UserID:   userUUID,
		Name:     strings.TrimSpace(req.Name),
		Calories: req.Calories,
		ImageURL: s.s3.GetPublicLinkKey(objectKey),
		Notes:    req.Notes,
		MealType: req.MealType,
	}

	if err := s.tracker.AddMeal(ctx, meal); err != nil {
		if deleteErr := s.s3.DeleteFile(objectKey); deleteErr != nil {
			log.Warnf("failed to remove orphaned meal photo %s: %v", objectKey, deleteErr)
		}
		return domain.Meal{}, err
	}

	return tracker.ToMeal(meal, s.loc), nil
}

func (s *mealService) GetMeal(ctx context.Context, id string, userID string) (domain.Meal, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Meal{}, domain.ErrParseUUID
	}

	return s.tracker.GetMeal(ctx, userUUID, id)
}

func (s *mealService) GetDailyTotal(ctx context.Context, date string, userID string) (domain.DailyCalories, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.DailyCalories{}, domain.ErrParseUUID
	}

	day, err := s.parseDay(date)
	if err != nil {
		return domain.DailyCalories{}, err
	}

	return s.tracker.GetDailyTotal(ctx, userUUID, day)
}

func (s *mealService) GetProgress(ctx context.Context, date string, goal *int, userID string) (domain.Progress, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Progress{}, domain.ErrParseUUID
	}

	day, err := s.parseDay(date)
	if err != nil {
		return domain.Progress{}, err
	}

	var target int
	if goal != nil {
		target = *goal
	} else {
		target, err = s.settingService.CalorieGoal(ctx, userUUID)
		if err != nil {
			return domain.Progress{}, err
		}
	}

	return s.tracker.GetProgress(ctx, userUUID, day, target)
}

func (s *mealService) GetDashboard(ctx context.Context, date string, userID string) (domain.DashboardResponse, error) {
	daily, err := s.GetDailyTotal(ctx, date, userID)
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	if daily.Goal <= 0 {
		return domain.DashboardResponse{}, domain.ErrInvalidGoal
	}

	return domain.DashboardResponse{
		Daily:    daily,
		Progress: tracker.CalculateProgress(daily.TotalCalories, daily.Goal),
	}, nil
}

func (s *mealService) GetHistory(ctx context.Context, from, to string, userID string) (domain.HistoryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.HistoryResponse{}, domain.ErrParseUUID
	}

	end, err := s.parseDay(to)
	if err != nil {
		return domain.HistoryResponse{}, err
	}

	start := time.Date(end.Year(), end.Month(), end.Day()-(domain.DefaultHistoryDays-1), 0, 0, 0, 0, s.loc)
	if from != "" {
		start, err = s.parseDay(from)
		if err != nil {
			return domain.HistoryResponse{}, err
		}
	}

	days, err := s.tracker.GetHistory(ctx, userUUID, start, end)
	if err != nil {
		return domain.HistoryResponse{}, err
	}

	return domain.HistoryResponse{
		From: start.In(s.loc).Format(domain.DateFormat),
		To:   end.In(s.loc).Format(domain.DateFormat),
		Days: days,
	}, nil
}

func (s *mealService) SendDailySummary(ctx context.Context, req domain.SendDailySummaryRequest, userID string) (domain.SendDailySummaryResponse, error) {
	settings, err := s.settingService.GetSettings(ctx, userID)
	if err != nil {
		return domain.SendDailySummaryResponse{}, err
	}

	if !settings.NotificationsEnabled {
		return domain.SendDailySummaryResponse{Sent: false, Reason: "notifications disabled"}, nil
	}

	recipient, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SendDailySummaryResponse{}, domain.ErrUserNotFound
		}
		return domain.SendDailySummaryResponse{}, err
	}

	dashboard, err := s.GetDashboard(ctx, req.Date, userID)
	if err != nil {
		return domain.SendDailySummaryResponse{}, err
	}

	subject := fmt.Sprintf("Your calories for %s", dashboard.Daily.Date)
	if err := s.mailer.SendMail(recipient.Email, subject, s.summaryBody(recipient.Name, dashboard)); err != nil {
		log.Errorf("failed to send daily summary to user %s: %v", userID, err)
		return domain.SendDailySummaryResponse{}, err
	}

	return domain.SendDailySummaryResponse{Sent: true}, nil
}

func (s *mealService) summaryBody(name string, dashboard domain.DashboardResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(name))
	fmt.Fprintf(&b, "<p>On %s you logged <strong>%d</strong> of your %d calorie goal (%d%%).</p>",
		dashboard.Daily.Date, dashboard.Daily.TotalCalories, dashboard.Daily.Goal, dashboard.Progress.Percentage)

	if dashboard.Progress.Remaining >= 0 {
		fmt.Fprintf(&b, "<p>%d calories remaining.</p>", dashboard.Progress.Remaining)
	} else {
		fmt.Fprintf(&b, "<p>%d calories over your goal.</p>", -dashboard.Progress.Remaining)
	}

	if len(dashboard.Daily.Meals) > 0 {
		b.WriteString("<ul>")
		for _, meal := range dashboard.Daily.Meals {
			fmt.Fprintf(&b, "<li>%s %s: %d cal</li>",
				meal.CreatedAt.Format("3:04 PM"), html.EscapeString(meal.Name), meal.Calories)
		}
		b.WriteString("</ul>")
	}

	if s.appURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Open CalorieSnap</a></p>`, html.EscapeString(s.appURL))
	}
	return b.String()
}

// parseDay reads a YYYY-MM-DD date in the service location; empty means today.
func (s *mealService) parseDay(date string) (time.Time, error) {
	if date == "" {
		return s.now().In(s.loc), nil
	}
	day, err := time.ParseInLocation(domain.DateFormat, date, s.loc)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return day, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	createdAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domain.ErrInvalidTimestamp
	}
	return createdAt, nil
}
