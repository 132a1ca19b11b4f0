package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

func TestIncrementQuestionCount_FreePlanQuota(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	for i := 1; i <= shared.FreeDailyQuestionLimit; i++ {
		resp, err := svc.IncrementQuestionCount(user.ID, "mathematics")
		require.NoError(t, err)
		assert.Equal(t, i, resp.QuestionsToday)
	}

	_, err := svc.IncrementQuestionCount(user.ID, "mathematics")
	require.Error(t, err)
	assert.True(t, shared.IsQuotaExceeded(err))

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.StatusCode)

	data, ok := appErr.Data.(shared.QuotaData)
	require.True(t, ok)
	assert.Equal(t, shared.FreeDailyQuestionLimit, data.Limit)
	assert.Equal(t, shared.FreeDailyQuestionLimit, data.Used)
}

func TestIncrementQuestionCount_ProPlanUnlimited(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, shared.PlanPro)

	for i := 0; i < shared.FreeDailyQuestionLimit+5; i++ {
		resp, err := svc.IncrementQuestionCount(user.ID, "physics")
		require.NoError(t, err)
		assert.True(t, resp.CanAskMore)
	}

	canAsk, limit, _, err := svc.CanAskQuestions(user.ID)
	require.NoError(t, err)
	assert.True(t, canAsk)
	assert.Equal(t, shared.UnlimitedQuestions, limit)
}

func TestIncrementQuestionCount_DailyRollover(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	progress, err := db.Users().GetStudyProgress(user.ID)
	require.NoError(t, err)

	progress.QuestionsToday = shared.FreeDailyQuestionLimit
	progress.TotalQuestionsAsked = 42
	progress.LastQuestionDate = time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Users().UpdateStudyProgress(progress))

	// Yesterday's exhausted counter must not block today's first question
	resp, err := svc.IncrementQuestionCount(user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.QuestionsToday)
	assert.Equal(t, 43, resp.TotalQuestions)
}

func TestIncrementQuestionCount_SubjectProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	_, err := svc.IncrementQuestionCount(user.ID, "biology")
	require.NoError(t, err)
	_, err = svc.IncrementQuestionCount(user.ID, "biology")
	require.NoError(t, err)

	progress, err := db.Users().GetStudyProgress(user.ID)
	require.NoError(t, err)

	subjects := progress.SubjectProgressMap()
	assert.Equal(t, 2, subjects["biology"].Questions)
	assert.Equal(t, 0, subjects["chemistry"].Questions)
}

func TestRecordSubjectResult_AlwaysAverages(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, shared.PlanPro)

	// First fold averages against the zero baseline: round((0 + 80) / 2)
	require.NoError(t, svc.RecordSubjectResult(user.ID, "mathematics", 3, 80))

	progress, err := db.Users().GetStudyProgress(user.ID)
	require.NoError(t, err)
	subjects := progress.SubjectProgressMap()
	assert.Equal(t, 3, subjects["mathematics"].Questions)
	assert.Equal(t, 40, subjects["mathematics"].Score)

	// Second fold: round((40 + 60) / 2)
	require.NoError(t, svc.RecordSubjectResult(user.ID, "mathematics", 2, 60))

	progress, err = db.Users().GetStudyProgress(user.ID)
	require.NoError(t, err)
	subjects = progress.SubjectProgressMap()
	assert.Equal(t, 5, subjects["mathematics"].Questions)
	assert.Equal(t, 50, subjects["mathematics"].Score)
}

func TestUpdateStudyStreak(t *testing.T) {
	svc := &UserService{}
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)

	t.Run("first activity starts streak at 1", func(t *testing.T) {
		progress := &model.StudyProgress{}
		svc.updateStudyStreak(progress, now)
		assert.Equal(t, 1, progress.StudyStreak)
	})

	t.Run("same day keeps streak", func(t *testing.T) {
		progress := &model.StudyProgress{StudyStreak: 4, LastStudyDate: &now}
		svc.updateStudyStreak(progress, now)
		assert.Equal(t, 4, progress.StudyStreak)
	})

	t.Run("next day extends streak", func(t *testing.T) {
		progress := &model.StudyProgress{StudyStreak: 4, LastStudyDate: &yesterday}
		svc.updateStudyStreak(progress, now)
		assert.Equal(t, 5, progress.StudyStreak)
	})

	t.Run("longer gap resets streak", func(t *testing.T) {
		progress := &model.StudyProgress{StudyStreak: 9, LastStudyDate: &threeDaysAgo}
		svc.updateStudyStreak(progress, now)
		assert.Equal(t, 1, progress.StudyStreak)
	})
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	school := "Starehe Boys Centre"
	language := "sw"
	resp, err := svc.UpdateProfile(user.ID, dto.UpdateProfileRequest{
		School:   &school,
		Language: &language,
	})
	require.NoError(t, err)
	assert.Equal(t, school, resp.School)
	assert.Equal(t, language, resp.Language)

	// Untouched fields survive
	assert.Equal(t, user.FirstName, resp.FirstName)
}

func TestDeactivateAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	require.NoError(t, svc.DeactivateAccount(user.ID))

	stored, err := db.Users().GetUser(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestGetProfile_QuotaStats(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, shared.PlanFree)

	_, err := svc.IncrementQuestionCount(user.ID, "mathematics")
	require.NoError(t, err)

	resp, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Stats.QuestionsToday)
	assert.Equal(t, shared.FreeDailyQuestionLimit, resp.Stats.DailyLimit)
	assert.True(t, resp.Stats.CanAskQuestions)
	assert.True(t, resp.Stats.IsSubscriptionActive)
}
