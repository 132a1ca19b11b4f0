package model

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shulecoach/shule_api/shared"
)

// StudySession is one subject+topic interaction unit owned by a single user.
// The question log is stored as an ordered JSON sequence on the row.
type StudySession struct {
	ID             string          `json:"id" gorm:"primaryKey"`
	UserID         string          `json:"user_id" gorm:"index;not null"`
	Subject        string          `json:"subject" gorm:"not null"`
	Topic          string          `json:"topic" gorm:"not null"`
	Questions      json.RawMessage `json:"questions" gorm:"type:text"`
	TotalQuestions int             `json:"total_questions" gorm:"default:0"`
	CorrectAnswers int             `json:"correct_answers" gorm:"default:0"`
	Score          int             `json:"score" gorm:"default:0"`    // percentage
	Duration       int             `json:"duration" gorm:"default:0"` // minutes
	Status         string          `json:"status" gorm:"default:active"` // active | completed | abandoned
	StartTime      time.Time       `json:"start_time"`
	EndTime        *time.Time      `json:"end_time"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SessionQuestion is one entry in a session's question log. Not a table;
// serialized into StudySession.Questions.
type SessionQuestion struct {
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	UserResponse string    `json:"user_response,omitempty"`
	IsCorrect    *bool     `json:"is_correct,omitempty"`
	Difficulty   string    `json:"difficulty"` // easy | medium | hard
	TimeSpent    int       `json:"time_spent"` // seconds
	Timestamp    time.Time `json:"timestamp"`
}

// QuestionLog decodes the stored question sequence.
func (s *StudySession) QuestionLog() ([]SessionQuestion, error) {
	if len(s.Questions) == 0 {
		return nil, nil
	}
	var questions []SessionQuestion
	if err := json.Unmarshal(s.Questions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// SetQuestionLog stores the question sequence back onto the row and
// refreshes the derived counters from it.
func (s *StudySession) SetQuestionLog(questions []SessionQuestion) error {
	raw, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	s.Questions = raw
	s.TotalQuestions = len(questions)
	s.CorrectAnswers = CountCorrect(questions)
	s.Score = ScorePercent(s.CorrectAnswers, s.TotalQuestions)
	return nil
}

// CountCorrect is the full recount over the whole sequence, not just the
// latest entry.
func CountCorrect(questions []SessionQuestion) int {
	correct := 0
	for _, q := range questions {
		if q.IsCorrect != nil && *q.IsCorrect {
			correct++
		}
	}
	return correct
}

// ScorePercent is the shared score formula: round(correct/total*100).
func ScorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// RecalculateScore rebuilds the derived counters from the question log.
// Runs before every persist so totals, correct count and score can never
// drift from the stored sequence.
func (s *StudySession) RecalculateScore() {
	questions, err := s.QuestionLog()
	if err != nil {
		return
	}
	s.TotalQuestions = len(questions)
	s.CorrectAnswers = CountCorrect(questions)
	s.Score = ScorePercent(s.CorrectAnswers, s.TotalQuestions)
}

// IsTerminal reports whether the session has left the active state. No
// transitions exist out of completed or abandoned.
func (s *StudySession) IsTerminal() bool {
	return s.Status == shared.SessionCompleted || s.Status == shared.SessionAbandoned
}

// SessionDuration returns session length in whole minutes, live for active
// sessions.
func (s *StudySession) SessionDuration() int {
	end := time.Now()
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return int(math.Round(end.Sub(s.StartTime).Minutes()))
}
