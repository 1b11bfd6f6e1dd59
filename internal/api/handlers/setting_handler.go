package handlers

import (
	"calorie-snap/domain"
	"calorie-snap/internal/api/presenters"
	"calorie-snap/pkg/setting"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SettingHandler interface {
		GetSettings(c *fiber.Ctx) error
		UpdateSettings(c *fiber.Ctx) error
	}

	settingHandler struct {
		settingService setting.SettingService
		validator      *validator.Validate
	}
)

func NewSettingHandler(settingService setting.SettingService, validator *validator.Validate) SettingHandler {
	return &settingHandler{
		settingService: settingService,
		validator:      validator,
	}
}

func (h *settingHandler) GetSettings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.settingService.GetSettings(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetSettings, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSettings)
}

func (h *settingHandler) UpdateSettings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateSettingsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateSettings, err)
	}

	res, err := h.settingService.UpdateSettings(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUpdateSettings, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateSettings)
}
