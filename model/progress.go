package model

import (
	"encoding/json"
	"time"

	"github.com/shulecoach/shule_api/shared"
)

// StudyProgress tracks a user's question counters and streak. One record
// per user, mutated on every question, quiz and streak event.
type StudyProgress struct {
	ID                  string          `json:"id" gorm:"primaryKey"`
	UserID              string          `json:"user_id" gorm:"uniqueIndex;not null"`
	TotalQuestionsAsked int             `json:"total_questions_asked" gorm:"default:0"`
	QuestionsToday      int             `json:"questions_today" gorm:"default:0"`
	LastQuestionDate    time.Time       `json:"last_question_date"`
	StudyStreak         int             `json:"study_streak" gorm:"default:0"`
	LastStudyDate       *time.Time      `json:"last_study_date"`
	SubjectProgress     json.RawMessage `json:"subject_progress" gorm:"type:text"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// SubjectStats is the per-subject slice of SubjectProgress.
type SubjectStats struct {
	Questions int `json:"questions"`
	Score     int `json:"score"`
}

// EmptySubjectProgress returns the nine-subject map with zeroed counters,
// marshaled for storage.
func EmptySubjectProgress() json.RawMessage {
	progress := make(map[string]SubjectStats, len(shared.Subjects))
	for _, subject := range shared.Subjects {
		progress[subject] = SubjectStats{}
	}
	raw, _ := json.Marshal(progress)
	return raw
}

// SubjectProgressMap decodes the stored subject map, falling back to an
// empty nine-subject map on missing or corrupt data.
func (p *StudyProgress) SubjectProgressMap() map[string]SubjectStats {
	progress := make(map[string]SubjectStats, len(shared.Subjects))
	if len(p.SubjectProgress) > 0 {
		if err := json.Unmarshal(p.SubjectProgress, &progress); err == nil {
			return progress
		}
	}
	for _, subject := range shared.Subjects {
		progress[subject] = SubjectStats{}
	}
	return progress
}

// SetSubjectProgress stores the subject map back onto the record.
func (p *StudyProgress) SetSubjectProgress(progress map[string]SubjectStats) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	p.SubjectProgress = raw
	return nil
}

// SameCalendarDay compares two instants by calendar day, not elapsed hours.
// The daily counter window is defined by this equality.
func SameCalendarDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// RolloverDailyCount zeroes questions_today the first time the record is
// touched on a calendar day different from last_question_date's day. It must
// run before any quota check or increment so a first question on a new day
// lands on a fresh counter.
func (p *StudyProgress) RolloverDailyCount(now time.Time) {
	if !SameCalendarDay(now, p.LastQuestionDate) {
		p.QuestionsToday = 0
	}
}
