package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

// UserService owns profile management and the daily question quota policy.
type UserService struct {
	context.DefaultService

	sqlSvc *DatabaseService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(DB_SVC).(*DatabaseService)
	return nil
}

func (svc *UserService) GetProfile(userID string) (*dto.ProfileResponse, error) {
	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("User account not found")
		}
		return nil, err
	}

	progress, err := svc.sqlSvc.Users().GetStudyProgress(userID)
	if err != nil {
		return nil, err
	}

	subscription, err := svc.sqlSvc.Users().GetSubscription(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	questionsToday := progress.QuestionsToday
	if !model.SameCalendarDay(progress.LastQuestionDate, now) {
		questionsToday = 0
	}

	canAsk, limit := svc.quotaFor(subscription, questionsToday)

	return &dto.ProfileResponse{
		User: MapUserInfo(user),
		Stats: dto.ProfileStats{
			TotalQuestions:       progress.TotalQuestionsAsked,
			QuestionsToday:       questionsToday,
			StudyStreak:          progress.StudyStreak,
			CanAskQuestions:      canAsk,
			DailyLimit:           limit,
			IsSubscriptionActive: subscription.IsCurrentlyActive(),
		},
	}, nil
}

func (svc *UserService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("User account not found")
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.School != nil {
		user.School = *req.School
	}
	if req.Language != nil {
		user.Language = *req.Language
	}
	if req.Notifications != nil {
		user.Notifications = *req.Notifications
	}
	if req.StudyReminders != nil {
		user.StudyReminders = *req.StudyReminders
	}

	if err := svc.sqlSvc.Users().UpdateUser(user); err != nil {
		return nil, err
	}

	info := MapUserInfo(user)
	return &info, nil
}

// DeactivateAccount soft-disables the account. The row and its history stay
// so support can restore it.
func (svc *UserService) DeactivateAccount(userID string) error {
	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError("User account not found")
		}
		return err
	}

	user.IsActive = false
	if err := svc.sqlSvc.Users().UpdateUser(user); err != nil {
		return err
	}

	log.WithField("user_id", userID).Info("Account deactivated")
	return nil
}

func (svc *UserService) GetProgress(userID string) (*dto.ProgressResponse, error) {
	progress, err := svc.sqlSvc.Users().GetStudyProgress(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Study progress not found")
		}
		return nil, err
	}

	recent, err := svc.sqlSvc.Sessions().GetRecentSessions(userID, 5)
	if err != nil {
		return nil, err
	}

	subjectProgress := map[string]dto.SubjectProgressInfo{}
	for subject, stats := range progress.SubjectProgressMap() {
		subjectProgress[subject] = dto.SubjectProgressInfo{
			Questions: stats.Questions,
			Score:     stats.Score,
		}
	}

	summaries := make([]dto.SessionSummary, 0, len(recent))
	for i := range recent {
		summaries = append(summaries, MapSessionSummary(&recent[i]))
	}

	questionsToday := progress.QuestionsToday
	if !model.SameCalendarDay(progress.LastQuestionDate, time.Now()) {
		questionsToday = 0
	}

	return &dto.ProgressResponse{
		TotalQuestionsAsked: progress.TotalQuestionsAsked,
		QuestionsToday:      questionsToday,
		StudyStreak:         progress.StudyStreak,
		LastStudyDate:       progress.LastStudyDate,
		SubjectProgress:     subjectProgress,
		RecentSessions:      summaries,
	}, nil
}

// CanAskQuestions reports whether the user has quota left today, plus the
// plan limit and today's usage after rollover.
func (svc *UserService) CanAskQuestions(userID string) (bool, int, int, error) {
	subscription, err := svc.sqlSvc.Users().GetSubscription(userID)
	if err != nil {
		return false, 0, 0, err
	}

	progress, err := svc.sqlSvc.Users().GetStudyProgress(userID)
	if err != nil {
		return false, 0, 0, err
	}

	questionsToday := progress.QuestionsToday
	if !model.SameCalendarDay(progress.LastQuestionDate, time.Now()) {
		questionsToday = 0
	}

	canAsk, limit := svc.quotaFor(subscription, questionsToday)
	return canAsk, limit, questionsToday, nil
}

func (svc *UserService) quotaFor(subscription *model.Subscription, questionsToday int) (bool, int) {
	limit := subscription.DailyQuestionLimit()
	if limit == shared.UnlimitedQuestions {
		return true, limit
	}
	return questionsToday < limit, limit
}

// IncrementQuestionCount records one asked question. Rollover runs before
// the increment so the first question of a new day counts against a fresh
// window, not yesterday's.
func (svc *UserService) IncrementQuestionCount(userID, subject string) (*dto.IncrementQuestionsResponse, error) {
	subscription, err := svc.sqlSvc.Users().GetSubscription(userID)
	if err != nil {
		return nil, err
	}

	progress, err := svc.sqlSvc.Users().GetStudyProgress(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	progress.RolloverDailyCount(now)

	canAsk, limit := svc.quotaFor(subscription, progress.QuestionsToday)
	if !canAsk {
		return nil, shared.NewQuotaExceededError(limit, progress.QuestionsToday)
	}

	progress.QuestionsToday++
	progress.TotalQuestionsAsked++
	progress.LastQuestionDate = now

	if subject != "" {
		subjects := progress.SubjectProgressMap()
		stats := subjects[subject]
		stats.Questions++
		subjects[subject] = stats
		if err := progress.SetSubjectProgress(subjects); err != nil {
			return nil, err
		}
	}

	svc.updateStudyStreak(progress, now)

	if err := svc.sqlSvc.Users().UpdateStudyProgress(progress); err != nil {
		return nil, err
	}

	canAskMore, _ := svc.quotaFor(subscription, progress.QuestionsToday)

	return &dto.IncrementQuestionsResponse{
		QuestionsToday: progress.QuestionsToday,
		TotalQuestions: progress.TotalQuestionsAsked,
		CanAskMore:     canAskMore,
		StudyStreak:    progress.StudyStreak,
	}, nil
}

// RecordSubjectResult folds a finished quiz or session into the per-subject
// running averages and the streak.
func (svc *UserService) RecordSubjectResult(userID, subject string, questions, score int) error {
	progress, err := svc.sqlSvc.Users().GetStudyProgress(userID)
	if err != nil {
		return err
	}

	subjects := progress.SubjectProgressMap()
	stats := subjects[subject]
	stats.Questions += questions
	// Always the running average, even on the first fold: a fresh subject
	// averages against its zero baseline.
	stats.Score = (stats.Score + score + 1) / 2
	subjects[subject] = stats
	if err := progress.SetSubjectProgress(subjects); err != nil {
		return err
	}

	svc.updateStudyStreak(progress, time.Now())

	return svc.sqlSvc.Users().UpdateStudyProgress(progress)
}

// updateStudyStreak: same day keeps the streak, a one day gap extends it,
// anything longer resets to 1.
func (svc *UserService) updateStudyStreak(progress *model.StudyProgress, now time.Time) {
	if progress.LastStudyDate == nil {
		progress.StudyStreak = 1
		progress.LastStudyDate = &now
		return
	}

	last := *progress.LastStudyDate
	if model.SameCalendarDay(last, now) {
		progress.LastStudyDate = &now
		return
	}

	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, last.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	gapDays := int(today.Sub(lastDay).Hours() / 24)

	if gapDays == 1 {
		progress.StudyStreak++
	} else {
		progress.StudyStreak = 1
	}
	progress.LastStudyDate = &now

	log.WithFields(log.Fields{"streak": progress.StudyStreak, "gap_days": gapDays}).Debug("Study streak updated")
}
