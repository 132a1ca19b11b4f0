package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/shared"
)

type QuizHandler struct {
	quizSvc QuizServiceInterface
}

func NewQuizHandler(quizSvc QuizServiceInterface) *QuizHandler {
	return &QuizHandler{
		quizSvc: quizSvc,
	}
}

// @Summary Generate a quiz
// @Description Sample questions from the KCSE bank by subject, difficulty and topic
// @Tags quiz
// @Accept json
// @Produce json
// @Security Bearer
// @Param generateRequest body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} shared.Response{data=dto.GenerateQuizResponse}
// @Failure 403 {object} shared.Response
// @Router /api/v1/quiz/generate [post]
func (h *QuizHandler) Generate(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.quizSvc.Generate(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Quiz generated", resp)
}

// @Summary Submit quiz answers
// @Description Score a quiz against its session and complete the session
// @Tags quiz
// @Accept json
// @Produce json
// @Security Bearer
// @Param submitRequest body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} shared.Response{data=dto.SubmitQuizResponse}
// @Router /api/v1/quiz/submit [post]
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.quizSvc.Submit(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Quiz submitted", resp)
}

// @Summary Quiz history
// @Description Paginated list of completed sessions
// @Tags quiz
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.QuizHistoryResponse}
// @Router /api/v1/quiz/history [get]
func (h *QuizHandler) History(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	resp, err := h.quizSvc.History(userID, page, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
