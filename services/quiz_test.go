package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/shared"
)

func newTestQuizService(t *testing.T, db *DatabaseService) *QuizService {
	t.Helper()
	return &QuizService{
		studySvc: newTestStudyService(t, db),
		userSvc:  newTestUserService(t, db),
		monSvc:   &MonitoringService{},
		rng:      rand.New(rand.NewSource(1)),
	}
}

func TestGenerate_FiltersBySubjectAndDifficulty(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	resp, err := svc.Generate(user.ID, dto.GenerateQuizRequest{
		Subject:    "mathematics",
		Difficulty: shared.DifficultyEasy,
		Count:      10,
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Questions)
	for _, q := range resp.Questions {
		assert.Equal(t, shared.DifficultyEasy, q.Difficulty)
	}
	assert.Equal(t, "mathematics", resp.Subject)
	assert.Equal(t, len(resp.Questions), resp.Count)
}

func TestGenerate_TopicSubstringMatch(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	resp, err := svc.Generate(user.ID, dto.GenerateQuizRequest{
		Subject: "mathematics",
		Topic:   "geom",
		Count:   10,
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Questions)
	for _, q := range resp.Questions {
		assert.Contains(t, q.Topic, "Geom")
	}
}

func TestGenerate_EmptyFilterYieldsPlaceholder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	resp, err := svc.Generate(user.ID, dto.GenerateQuizRequest{
		Subject: "kiswahili",
		Topic:   "Quantum Mechanics",
		Count:   5,
	})
	require.NoError(t, err)

	require.Len(t, resp.Questions, 1)
	q := resp.Questions[0]
	assert.Equal(t, "Sample kiswahili question about Quantum Mechanics", q.Question)
	assert.Len(t, q.Options, 4)
	assert.Equal(t, 0, q.Correct)
}

func TestGenerate_CountClamped(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	resp, err := svc.Generate(user.ID, dto.GenerateQuizRequest{
		Subject: "mathematics",
		Count:   2,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(resp.Questions), 2)
}

func TestGenerate_RemainingQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)

	free := createTestUser(t, db, shared.PlanFree)
	_, err := svc.userSvc.IncrementQuestionCount(free.ID, "mathematics")
	require.NoError(t, err)

	resp, err := svc.Generate(free.ID, dto.GenerateQuizRequest{Subject: "mathematics"})
	require.NoError(t, err)
	assert.Equal(t, shared.FreeDailyQuestionLimit-1, resp.RemainingQuestions)

	pro := createTestUser(t, db, shared.PlanPro)
	resp, err = svc.Generate(pro.ID, dto.GenerateQuizRequest{Subject: "mathematics"})
	require.NoError(t, err)
	assert.Equal(t, shared.UnlimitedQuestions, resp.RemainingQuestions)
}

func TestGenerate_QuotaExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	progress, err := db.Users().GetStudyProgress(user.ID)
	require.NoError(t, err)
	progress.QuestionsToday = shared.FreeDailyQuestionLimit
	progress.LastQuestionDate = time.Now()
	require.NoError(t, db.Users().UpdateStudyProgress(progress))

	_, err = svc.Generate(user.ID, dto.GenerateQuizRequest{Subject: "mathematics"})
	require.Error(t, err)
	assert.True(t, shared.IsQuotaExceeded(err))
}

func TestSubmit_ScoresAndCompletesSession(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)
	user := createTestUser(t, db, shared.PlanPro)

	session, err := svc.studySvc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "mathematics",
		Topic:   "Linear Equations",
	})
	require.NoError(t, err)

	resp, err := svc.Submit(user.ID, dto.SubmitQuizRequest{
		SessionID: session.ID,
		Answers: []dto.QuizAnswer{
			{SelectedOption: 1, CorrectOption: 1, TimeSpent: 30},
			{SelectedOption: 0, CorrectOption: 2, TimeSpent: 45},
			{SelectedOption: 3, CorrectOption: 3, TimeSpent: 25},
		},
		TimeSpent: 300,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalQuestions)
	assert.Equal(t, 2, resp.CorrectAnswers)
	assert.Equal(t, 67, resp.Score)
	assert.Equal(t, shared.SessionCompleted, resp.Session.Status)
	require.NotNil(t, resp.Session.EndTime)
	// round(300s / 60)
	assert.Equal(t, 5, resp.Session.Duration)

	require.Len(t, resp.QuestionResults, 3)
	assert.True(t, resp.QuestionResults[0].IsCorrect)
	assert.False(t, resp.QuestionResults[1].IsCorrect)

	// Subject progress folds in the quiz: round((0 + 67) / 2)
	progress, err := db.Users().GetStudyProgress(user.ID)
	require.NoError(t, err)
	subjects := progress.SubjectProgressMap()
	assert.Equal(t, 3, subjects["mathematics"].Questions)
	assert.Equal(t, 34, subjects["mathematics"].Score)
}

func TestSubmit_CompletedSessionRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)
	user := createTestUser(t, db, shared.PlanPro)

	session, err := svc.studySvc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "biology",
		Topic:   "Cell Biology",
	})
	require.NoError(t, err)

	submission := dto.SubmitQuizRequest{
		SessionID: session.ID,
		Answers:   []dto.QuizAnswer{{SelectedOption: 1, CorrectOption: 1}},
		TimeSpent: 60,
	}

	_, err = svc.Submit(user.ID, submission)
	require.NoError(t, err)

	_, err = svc.Submit(user.ID, submission)
	require.Error(t, err)
}

func TestHistory_OnlyCompletedSessions(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)
	user := createTestUser(t, db, shared.PlanPro)

	_, err := svc.studySvc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "cre",
		Topic:   "The Exodus",
	})
	require.NoError(t, err)

	done, err := svc.studySvc.CreateSession(user.ID, dto.CreateSessionRequest{
		Subject: "cre",
		Topic:   "Ministry of Jesus",
	})
	require.NoError(t, err)

	_, err = svc.Submit(user.ID, dto.SubmitQuizRequest{
		SessionID: done.ID,
		Answers:   []dto.QuizAnswer{{SelectedOption: 2, CorrectOption: 2}},
		TimeSpent: 90,
	})
	require.NoError(t, err)

	history, err := svc.History(user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, history.History, 1)
	assert.Equal(t, shared.SessionCompleted, history.History[0].Status)
}
