package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/shared"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestCreateSession(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	resp, err := svc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "mathematics",
		Topic:   "Linear Equations",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, shared.SessionActive, resp.Status)
	assert.Equal(t, 0, resp.TotalQuestions)
	assert.Equal(t, 0, resp.Score)
	assert.Empty(t, resp.Questions)
}

func TestCreateSession_QuotaExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	progress, err := db.Users().GetStudyProgress(user.ID)
	require.NoError(t, err)
	progress.QuestionsToday = shared.FreeDailyQuestionLimit
	progress.LastQuestionDate = time.Now()
	require.NoError(t, db.Users().UpdateStudyProgress(progress))

	_, err = svc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "biology",
		Topic:   "Cell Biology",
	})
	require.Error(t, err)
	assert.True(t, shared.IsQuotaExceeded(err))
}

func TestAddQuestion_RecountsScore(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	created, err := svc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "mathematics",
		Topic:   "Geometry",
	})
	require.NoError(t, err)

	questions := []dto.AddQuestionRequest{
		{Question: "Area of circle r=7?", Answer: "154 cm²", UserResponse: "154 cm²", IsCorrect: boolPtr(true), TimeSpent: 30},
		{Question: "Perimeter of square s=4?", Answer: "16 cm", UserResponse: "12 cm", IsCorrect: boolPtr(false), TimeSpent: 20},
		{Question: "Volume of cube s=2?", Answer: "8 cm³", UserResponse: "8 cm³", IsCorrect: boolPtr(true), TimeSpent: 40},
	}

	var resp *dto.AddQuestionResponse
	for _, q := range questions {
		resp, err = svc.AddQuestion(user.ID, created.ID, q)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, resp.QuestionCount)
	assert.Equal(t, 3, resp.Session.TotalQuestions)
	assert.Equal(t, 2, resp.Session.CorrectAnswers)
	// round(2/3 * 100)
	assert.Equal(t, 67, resp.Session.Score)
}

func TestAddQuestion_ConsumesQuota(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	created, err := svc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "chemistry",
		Topic:   "Acids and Bases",
	})
	require.NoError(t, err)

	_, err = svc.AddQuestion(user.ID, created.ID, dto.AddQuestionRequest{
		Question: "Gas from acid + metal?",
		Answer:   "Hydrogen",
	})
	require.NoError(t, err)

	progress, err := db.Users().GetStudyProgress(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.QuestionsToday)

	subjects := progress.SubjectProgressMap()
	assert.Equal(t, 1, subjects["chemistry"].Questions)
}

func TestUpdateSession_Complete(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	created, err := svc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "english",
		Topic:   "Grammar",
	})
	require.NoError(t, err)

	resp, err := svc.UpdateSession(user.ID, created.ID, dto.UpdateSessionRequest{
		Questions: []dto.SessionQuestionInfo{
			{Question: "Correct sentence?", Answer: "She goes to school", UserResponse: "She goes to school", IsCorrect: boolPtr(true)},
			{Question: "Plural of analysis?", Answer: "analyses", UserResponse: "analysises", IsCorrect: boolPtr(false)},
		},
		Status: strPtr(shared.SessionCompleted),
		Notes:  strPtr("Revise plurals"),
	})
	require.NoError(t, err)

	assert.Equal(t, shared.SessionCompleted, resp.Status)
	assert.NotNil(t, resp.EndTime)
	assert.Equal(t, 2, resp.TotalQuestions)
	assert.Equal(t, 1, resp.CorrectAnswers)
	assert.Equal(t, 50, resp.Score)
	assert.Equal(t, "Revise plurals", resp.Notes)
}

func TestUpdateSession_TerminalStateRejectsChanges(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	created, err := svc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "history",
		Topic:   "Independence",
	})
	require.NoError(t, err)

	_, err = svc.UpdateSession(user.ID, created.ID, dto.UpdateSessionRequest{
		Status: strPtr(shared.SessionAbandoned),
	})
	require.NoError(t, err)

	_, err = svc.UpdateSession(user.ID, created.ID, dto.UpdateSessionRequest{
		Notes: strPtr("too late"),
	})
	require.Error(t, err)

	_, err = svc.AddQuestion(user.ID, created.ID, dto.AddQuestionRequest{
		Question: "First President of Kenya?",
		Answer:   "Jomo Kenyatta",
	})
	require.Error(t, err)
}

func TestGetSession_OwnerScoped(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	owner := createTestUser(t, db, shared.PlanFree)
	other := createTestUser(t, db, shared.PlanFree)

	created, err := svc.CreateSession(owner.ID, dto.CreateSessionRequest{
		Subject: "geography",
		Topic:   "Lakes",
	})
	require.NoError(t, err)

	_, err = svc.GetSession(other.ID, created.ID)
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestListSessions_FilterAndPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	user := createTestUser(t, db, shared.PlanPro)

	subjects := []string{"mathematics", "mathematics", "biology"}
	for _, subject := range subjects {
		_, err := svc.CreateSession(user.ID, dto.CreateSessionRequest{
			Subject: subject,
			Topic:   "Revision",
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListSessions(user.ID, "mathematics", "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Sessions, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)

	resp, err = svc.ListSessions(user.ID, "", "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Sessions, 2)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Pages)
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	user := createTestUser(t, db, shared.PlanPro)

	created, err := svc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "physics",
		Topic:   "Forces",
	})
	require.NoError(t, err)

	_, err = svc.UpdateSession(user.ID, created.ID, dto.UpdateSessionRequest{
		Questions: []dto.SessionQuestionInfo{
			{Question: "SI unit of force?", Answer: "Newton", UserResponse: "Newton", IsCorrect: boolPtr(true)},
			{Question: "F for m=2 a=3?", Answer: "6 N", UserResponse: "5 N", IsCorrect: boolPtr(false)},
		},
		Status: strPtr(shared.SessionCompleted),
	})
	require.NoError(t, err)

	stats, err := svc.GetStats(user.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.CompletedSessions)
	assert.Equal(t, 2, stats.TotalQuestions)
	assert.Equal(t, 1, stats.TotalCorrect)
	assert.Equal(t, 50, stats.AverageScore)
	assert.Equal(t, "30 days", stats.Timeframe)

	breakdown, ok := stats.SubjectBreakdown["physics"]
	require.True(t, ok)
	assert.Equal(t, 1, breakdown.Sessions)
	assert.Equal(t, 50, breakdown.AverageScore)
}

func TestGetStats_QuestionWeightedAverage(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStudyService(t, db)
	user := createTestUser(t, db, shared.PlanPro)

	sessions := []struct {
		topic     string
		questions []dto.SessionQuestionInfo
	}{
		{"Forces", []dto.SessionQuestionInfo{
			{Question: "SI unit of force?", Answer: "Newton", UserResponse: "Newton", IsCorrect: boolPtr(true)},
		}},
		{"Newton's Laws", []dto.SessionQuestionInfo{
			{Question: "F for m=2 a=3?", Answer: "6 N", UserResponse: "5 N", IsCorrect: boolPtr(false)},
			{Question: "Unit of acceleration?", Answer: "m/s²", UserResponse: "m/s", IsCorrect: boolPtr(false)},
			{Question: "Third law pair?", Answer: "Equal and opposite", UserResponse: "Equal", IsCorrect: boolPtr(false)},
		}},
	}

	for _, s := range sessions {
		created, err := svc.CreateSession(user.ID, dto.CreateSessionRequest{
			Subject: "physics",
			Topic:   s.topic,
		})
		require.NoError(t, err)

		_, err = svc.UpdateSession(user.ID, created.ID, dto.UpdateSessionRequest{
			Questions: s.questions,
			Status:    strPtr(shared.SessionCompleted),
		})
		require.NoError(t, err)
	}

	stats, err := svc.GetStats(user.ID, 30)
	require.NoError(t, err)

	// Weighted over all questions in the window, not a mean of the two
	// session scores: round(1/4 * 100), not (100 + 0) / 2
	assert.Equal(t, 4, stats.TotalQuestions)
	assert.Equal(t, 1, stats.TotalCorrect)
	assert.Equal(t, 25, stats.AverageScore)

	// Every subject shows up in the breakdown, zeros included
	assert.Len(t, stats.SubjectBreakdown, len(shared.Subjects))
	assert.Equal(t, 0, stats.SubjectBreakdown["cre"].Sessions)
}
