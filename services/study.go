package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

// StudyService owns the session lifecycle. Terminal sessions never change
// again; derived counters are recomputed from the question log on every
// write so they can't drift.
type StudyService struct {
	context.DefaultService

	sqlSvc  *DatabaseService
	userSvc *UserService
}

const STUDY_SVC = "study_svc"

func (svc StudyService) Id() string {
	return STUDY_SVC
}

func (svc *StudyService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *StudyService) Start() error {
	svc.sqlSvc = svc.Service(DB_SVC).(*DatabaseService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	return nil
}

func (svc *StudyService) CreateSession(userID string, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	canAsk, limit, used, err := svc.userSvc.CanAskQuestions(userID)
	if err != nil {
		return nil, err
	}
	if !canAsk {
		return nil, shared.NewQuotaExceededError(limit, used)
	}

	session := &model.StudySession{
		UserID:    userID,
		Subject:   req.Subject,
		Topic:     req.Topic,
		Status:    shared.SessionActive,
		StartTime: time.Now(),
	}
	if err := session.SetQuestionLog([]model.SessionQuestion{}); err != nil {
		return nil, err
	}

	session, err = svc.sqlSvc.Sessions().CreateSession(session)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"session_id": session.ID, "subject": session.Subject}).Info("Study session started")

	return svc.mapSession(session)
}

func (svc *StudyService) GetSession(userID, sessionID string) (*dto.SessionResponse, error) {
	session, err := svc.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return svc.mapSession(session)
}

func (svc *StudyService) ListSessions(userID, subject, status string, page, limit int) (*dto.SessionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	sessions, total, err := svc.sqlSvc.Sessions().ListUserSessions(userID, subject, status, page, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.SessionSummary, 0, len(sessions))
	for i := range sessions {
		summaries = append(summaries, MapSessionSummary(&sessions[i]))
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &dto.SessionListResponse{
		Sessions: summaries,
		Pagination: dto.Pagination{
			Current: page,
			Pages:   pages,
			Total:   total,
		},
	}, nil
}

// AddQuestion appends to the log of an active session. Each append consumes
// one unit of the daily quota.
func (svc *StudyService) AddQuestion(userID, sessionID string, req dto.AddQuestionRequest) (*dto.AddQuestionResponse, error) {
	session, err := svc.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsTerminal() {
		return nil, shared.NewBadRequestError("Cannot add questions to a " + session.Status + " session")
	}

	if _, err := svc.userSvc.IncrementQuestionCount(userID, session.Subject); err != nil {
		return nil, err
	}

	questions, err := session.QuestionLog()
	if err != nil {
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = shared.DifficultyMedium
	}

	questions = append(questions, model.SessionQuestion{
		Question:     req.Question,
		Answer:       req.Answer,
		UserResponse: req.UserResponse,
		IsCorrect:    req.IsCorrect,
		Difficulty:   difficulty,
		TimeSpent:    req.TimeSpent,
		Timestamp:    time.Now(),
	})

	if err := session.SetQuestionLog(questions); err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.Sessions().UpdateSession(session); err != nil {
		return nil, err
	}

	resp, err := svc.mapSession(session)
	if err != nil {
		return nil, err
	}

	return &dto.AddQuestionResponse{
		Session:       *resp,
		QuestionCount: session.TotalQuestions,
	}, nil
}

// UpdateSession mutates an active session: replace the question log, set
// notes, or move it to a terminal state. Completing or abandoning stamps
// the end time and freezes the row.
func (svc *StudyService) UpdateSession(userID, sessionID string, req dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	session, err := svc.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsTerminal() {
		return nil, shared.NewBadRequestError("Session is already " + session.Status + " and cannot be modified")
	}

	if req.Questions != nil {
		questions := make([]model.SessionQuestion, 0, len(req.Questions))
		for _, q := range req.Questions {
			ts := q.Timestamp
			if ts.IsZero() {
				ts = time.Now()
			}
			questions = append(questions, model.SessionQuestion{
				Question:     q.Question,
				Answer:       q.Answer,
				UserResponse: q.UserResponse,
				IsCorrect:    q.IsCorrect,
				Difficulty:   q.Difficulty,
				TimeSpent:    q.TimeSpent,
				Timestamp:    ts,
			})
		}
		if err := session.SetQuestionLog(questions); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		session.Notes = *req.Notes
	}

	if req.Status != nil && *req.Status != session.Status {
		switch *req.Status {
		case shared.SessionCompleted, shared.SessionAbandoned:
			end := time.Now()
			if req.EndTime != nil {
				end = *req.EndTime
			}
			session.Status = *req.Status
			session.EndTime = &end
			session.Duration = session.SessionDuration()
		case shared.SessionActive:
			// already active, nothing to do
		default:
			return nil, shared.NewBadRequestError("Invalid session status: " + *req.Status)
		}
	}

	if err := svc.sqlSvc.Sessions().UpdateSession(session); err != nil {
		return nil, err
	}

	if session.Status == shared.SessionCompleted && session.TotalQuestions > 0 {
		if err := svc.userSvc.RecordSubjectResult(userID, session.Subject, 0, session.Score); err != nil {
			log.WithError(err).WithField("session_id", session.ID).Warn("Failed to fold session into subject progress")
		}
	}

	return svc.mapSession(session)
}

// GetStats aggregates the user's sessions over a trailing window of days.
func (svc *StudyService) GetStats(userID string, days int) (*dto.StudyStatsResponse, error) {
	if days < 1 || days > 365 {
		days = 30
	}

	since := time.Now().AddDate(0, 0, -days)
	sessions, err := svc.sqlSvc.Sessions().GetSessionsSince(userID, since)
	if err != nil {
		return nil, err
	}

	stats := &dto.StudyStatsResponse{
		SubjectBreakdown: map[string]dto.SubjectBreakdown{},
		Timeframe:        fmt.Sprintf("%d days", days),
	}
	// All nine subjects appear in the breakdown, zeros included
	for _, subject := range shared.Subjects {
		stats.SubjectBreakdown[subject] = dto.SubjectBreakdown{}
	}

	for i := range sessions {
		s := &sessions[i]
		stats.TotalSessions++
		stats.TotalQuestions += s.TotalQuestions
		stats.TotalCorrect += s.CorrectAnswers
		stats.TotalStudyTime += s.Duration
		if s.Status == shared.SessionCompleted {
			stats.CompletedSessions++
		}

		breakdown := stats.SubjectBreakdown[s.Subject]
		breakdown.Sessions++
		breakdown.Questions += s.TotalQuestions
		breakdown.Correct += s.CorrectAnswers
		stats.SubjectBreakdown[s.Subject] = breakdown
	}

	for subject, breakdown := range stats.SubjectBreakdown {
		breakdown.AverageScore = model.ScorePercent(breakdown.Correct, breakdown.Questions)
		stats.SubjectBreakdown[subject] = breakdown
	}

	// Question-weighted across the whole window, not a per-session mean
	stats.AverageScore = model.ScorePercent(stats.TotalCorrect, stats.TotalQuestions)

	return stats, nil
}

func (svc *StudyService) ownedSession(userID, sessionID string) (*model.StudySession, error) {
	session, err := svc.sqlSvc.Sessions().GetUserSession(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Study session not found")
		}
		return nil, err
	}
	return session, nil
}

func (svc *StudyService) mapSession(session *model.StudySession) (*dto.SessionResponse, error) {
	questions, err := session.QuestionLog()
	if err != nil {
		return nil, err
	}

	infos := make([]dto.SessionQuestionInfo, 0, len(questions))
	for _, q := range questions {
		infos = append(infos, dto.SessionQuestionInfo{
			Question:     q.Question,
			Answer:       q.Answer,
			UserResponse: q.UserResponse,
			IsCorrect:    q.IsCorrect,
			Difficulty:   q.Difficulty,
			TimeSpent:    q.TimeSpent,
			Timestamp:    q.Timestamp,
		})
	}

	return &dto.SessionResponse{
		ID:             session.ID,
		Subject:        session.Subject,
		Topic:          session.Topic,
		Questions:      infos,
		TotalQuestions: session.TotalQuestions,
		CorrectAnswers: session.CorrectAnswers,
		Score:          session.Score,
		Duration:       session.Duration,
		Status:         session.Status,
		StartTime:      session.StartTime,
		EndTime:        session.EndTime,
		Notes:          session.Notes,
	}, nil
}

// MapSessionSummary converts a session row to its list representation.
func MapSessionSummary(session *model.StudySession) dto.SessionSummary {
	return dto.SessionSummary{
		ID:             session.ID,
		Subject:        session.Subject,
		Topic:          session.Topic,
		TotalQuestions: session.TotalQuestions,
		CorrectAnswers: session.CorrectAnswers,
		Score:          session.Score,
		Duration:       session.Duration,
		Status:         session.Status,
		CreatedAt:      session.CreatedAt,
	}
}
