package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/shared"
)

type StudyHandler struct {
	studySvc StudyServiceInterface
}

func NewStudyHandler(studySvc StudyServiceInterface) *StudyHandler {
	return &StudyHandler{
		studySvc: studySvc,
	}
}

// @Summary Start a study session
// @Description Open an active session for a subject and topic
// @Tags study
// @Accept json
// @Produce json
// @Security Bearer
// @Param createRequest body dto.CreateSessionRequest true "Subject and topic"
// @Success 201 {object} shared.Response{data=dto.SessionResponse}
// @Failure 403 {object} shared.Response
// @Router /api/v1/study/session [post]
func (h *StudyHandler) CreateSession(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.studySvc.CreateSession(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Study session created", resp)
}

// @Summary List study sessions
// @Description Paginated session list, filterable by subject and status
// @Tags study
// @Produce json
// @Security Bearer
// @Param subject query string false "Subject filter"
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.SessionListResponse}
// @Router /api/v1/study/sessions [get]
func (h *StudyHandler) ListSessions(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	subject := c.Query("subject")
	status := c.Query("status")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	resp, err := h.studySvc.ListSessions(userID, subject, status, page, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get a study session
// @Description Return one session with its full question log
// @Tags study
// @Produce json
// @Security Bearer
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.SessionResponse}
// @Router /api/v1/study/sessions/{sessionId} [get]
func (h *StudyHandler) GetSession(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	sessionID := c.Params("sessionId")

	resp, err := h.studySvc.GetSession(userID, sessionID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Update a study session
// @Description Replace the question log, set notes, or complete/abandon the session
// @Tags study
// @Accept json
// @Produce json
// @Security Bearer
// @Param sessionId path string true "Session ID"
// @Param updateRequest body dto.UpdateSessionRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=dto.SessionResponse}
// @Router /api/v1/study/sessions/{sessionId} [put]
func (h *StudyHandler) UpdateSession(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	sessionID := c.Params("sessionId")

	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.studySvc.UpdateSession(userID, sessionID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Session updated", resp)
}

// @Summary Add a question to a session
// @Description Append to the question log of an active session; counts against the daily quota
// @Tags study
// @Accept json
// @Produce json
// @Security Bearer
// @Param sessionId path string true "Session ID"
// @Param questionRequest body dto.AddQuestionRequest true "Question details"
// @Success 200 {object} shared.Response{data=dto.AddQuestionResponse}
// @Failure 403 {object} shared.Response
// @Router /api/v1/study/sessions/{sessionId}/questions [post]
func (h *StudyHandler) AddQuestion(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	sessionID := c.Params("sessionId")

	var req dto.AddQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.studySvc.AddQuestion(userID, sessionID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Question added", resp)
}

// @Summary Study statistics
// @Description Aggregate sessions over a trailing window of days
// @Tags study
// @Produce json
// @Security Bearer
// @Param timeframe query int false "Window in days (default 30)"
// @Success 200 {object} shared.Response{data=dto.StudyStatsResponse}
// @Router /api/v1/study/stats [get]
func (h *StudyHandler) GetStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	days := c.QueryInt("timeframe", 30)

	resp, err := h.studySvc.GetStats(userID, days)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
