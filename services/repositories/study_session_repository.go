package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/model"
)

// StudySessionRepository handles study session rows. Every persist path
// recomputes the score so the score invariant holds regardless of caller.
type StudySessionRepository struct {
	BaseRepository
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *StudySessionRepository) CreateSession(session *model.StudySession) (*model.StudySession, error) {
	id, _ := uuid.NewV7()
	session.ID = id.String()
	session.RecalculateScore()
	if err := ds.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (ds *StudySessionRepository) UpdateSession(session *model.StudySession) error {
	session.RecalculateScore()
	session.UpdatedAt = time.Now()
	return ds.db.Save(session).Error
}

// GetUserSession scopes the lookup to the owning user; sessions are owned
// exclusively by one account.
func (ds *StudySessionRepository) GetUserSession(sessionID, userID string) (*model.StudySession, error) {
	var session model.StudySession
	if err := ds.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (ds *StudySessionRepository) ListUserSessions(userID, subject, status string, page, limit int) ([]model.StudySession, int64, error) {
	query := ds.db.Model(&model.StudySession{}).Where("user_id = ?", userID)
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.StudySession
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (ds *StudySessionRepository) GetRecentSessions(userID string, limit int) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSessionsSince returns the user's sessions created within the stats
// timeframe window.
func (ds *StudySessionRepository) GetSessionsSince(userID string, since time.Time) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := ds.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
