package handlers

import (
	"calorie-snap/domain"
	"calorie-snap/internal/api/presenters"
	"calorie-snap/pkg/meal"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"strconv"
)

type (
	MealHandler interface {
		LogMeal(c *fiber.Ctx) error
		LogEstimatedMeal(c *fiber.Ctx) error
		LogMealWithPhoto(c *fiber.Ctx) error
		GetMeal(c *fiber.Ctx) error
		GetDailyTotal(c *fiber.Ctx) error
		GetProgress(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
		SendDailySummary(c *fiber.Ctx) error
	}

	mealHandler struct {
		mealService meal.MealService
		validator   *validator.Validate
	}
)

func NewMealHandler(mealService meal.MealService, validator *validator.Validate) MealHandler {
	return &mealHandler{
		mealService: mealService,
		validator:   validator,
	}
}

func (h *mealHandler) LogMeal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.LogMealRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogMeal, err)
	}

	res, err := h.mealService.LogMeal(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedLogMeal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessLogMeal)
}

func (h *mealHandler) LogEstimatedMeal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.LogEstimatedMealRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogMeal, err)
	}

	res, err := h.mealService.LogEstimatedMeal(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedLogMeal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessLogMeal)
}

func (h *mealHandler) LogMealWithPhoto(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.LogMealWithPhotoRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadMealPhoto, err)
	}

	res, err := h.mealService.LogMealWithPhoto(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUploadMealPhoto, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessLogMeal)
}

func (h *mealHandler) GetMeal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	mealID := c.Params("id")

	res, err := h.mealService.GetMeal(c.Context(), mealID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetMeal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMeal)
}

func (h *mealHandler) GetDailyTotal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.mealService.GetDailyTotal(c.Context(), c.Query("date"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetDailyTotal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDailyTotal)
}

func (h *mealHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var goal *int
	if raw := c.Query("goal"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProgress, domain.ErrInvalidGoal)
		}
		goal = &value
	}

	res, err := h.mealService.GetProgress(c.Context(), c.Query("date"), goal, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetProgress, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProgress)
}

func (h *mealHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.mealService.GetDashboard(c.Context(), c.Query("date"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *mealHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.mealService.GetHistory(c.Context(), c.Query("from"), c.Query("to"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetMealHistory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMealHistory)
}

func (h *mealHandler) SendDailySummary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SendDailySummaryRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	res, err := h.mealService.SendDailySummary(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedSendDailySummary, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendDailySummary)
}
