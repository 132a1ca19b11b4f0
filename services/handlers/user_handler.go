package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/shared"
)

type UserHandler struct {
	userSvc UserServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

// @Summary Get profile
// @Description Return the user's profile together with quota and streak stats
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ProfileResponse}
// @Router /api/v1/users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Update profile
// @Description Update name, phone, school, language or notification preferences
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param updateRequest body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Router /api/v1/users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.userSvc.UpdateProfile(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Profile updated successfully", resp)
}

// @Summary Get study progress
// @Description Return counters, streak, per-subject progress and recent sessions
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/users/progress [get]
func (h *UserHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.userSvc.GetProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Record an asked question
// @Description Count one question against the daily quota, optionally under a subject
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param incrementRequest body dto.IncrementQuestionsRequest true "Optional subject"
// @Success 200 {object} shared.Response{data=dto.IncrementQuestionsResponse}
// @Failure 403 {object} shared.Response
// @Router /api/v1/users/increment-questions [post]
func (h *UserHandler) IncrementQuestions(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.IncrementQuestionsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return err
		}
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.userSvc.IncrementQuestionCount(userID, req.Subject)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Question recorded", resp)
}

// @Summary Deactivate account
// @Description Soft-disable the account; history is retained
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/users/account [delete]
func (h *UserHandler) DeactivateAccount(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.userSvc.DeactivateAccount(userID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Account deactivated", nil)
}
