package dto

import "time"

// ==================== STUDY SESSION DTOs ====================

type CreateSessionRequest struct {
	Subject string `json:"subject" validate:"required,oneof=mathematics english kiswahili biology chemistry physics history geography cre" example:"mathematics"`
	Topic   string `json:"topic" validate:"required,min=1,max=100" example:"Linear Equations"`
}

func (c CreateSessionRequest) Validate() error {
	return GetValidator().Struct(c)
}

type AddQuestionRequest struct {
	Question     string `json:"question" validate:"required,min=1,max=500" example:"Solve for x: 2x + 5 = 13"`
	Answer       string `json:"answer" validate:"required,min=1,max=1000" example:"x = 4"`
	UserResponse string `json:"user_response,omitempty" validate:"omitempty,max=1000" example:"x = 4"`
	IsCorrect    *bool  `json:"is_correct,omitempty" example:"true"`
	Difficulty   string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard" example:"medium"`
	TimeSpent    int    `json:"time_spent,omitempty" validate:"omitempty,gte=0" example:"45"`
}

func (a AddQuestionRequest) Validate() error {
	return GetValidator().Struct(a)
}

type UpdateSessionRequest struct {
	Questions []SessionQuestionInfo `json:"questions,omitempty" validate:"omitempty,dive"`
	Status    *string               `json:"status,omitempty" validate:"omitempty,oneof=active completed abandoned" example:"completed"`
	Notes     *string               `json:"notes,omitempty" validate:"omitempty,max=500" example:"Revise quadratic formula"`
	EndTime   *time.Time            `json:"end_time,omitempty"`
}

func (u UpdateSessionRequest) Validate() error {
	return GetValidator().Struct(u)
}

type SessionQuestionInfo struct {
	Question     string    `json:"question" validate:"required"`
	Answer       string    `json:"answer" validate:"required"`
	UserResponse string    `json:"user_response,omitempty"`
	IsCorrect    *bool     `json:"is_correct,omitempty"`
	Difficulty   string    `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	TimeSpent    int       `json:"time_spent,omitempty"`
	Timestamp    time.Time `json:"timestamp,omitempty"`
}

type SessionResponse struct {
	ID             string                `json:"id" example:"0198a7f2-sess"`
	Subject        string                `json:"subject" example:"mathematics"`
	Topic          string                `json:"topic" example:"Linear Equations"`
	Questions      []SessionQuestionInfo `json:"questions"`
	TotalQuestions int                   `json:"total_questions" example:"5"`
	CorrectAnswers int                   `json:"correct_answers" example:"4"`
	Score          int                   `json:"score" example:"80"`
	Duration       int                   `json:"duration" example:"12"`
	Status         string                `json:"status" example:"active"`
	StartTime      time.Time             `json:"start_time"`
	EndTime        *time.Time            `json:"end_time,omitempty"`
	Notes          string                `json:"notes,omitempty"`
}

type SessionSummary struct {
	ID             string    `json:"id" example:"0198a7f2-sess"`
	Subject        string    `json:"subject" example:"mathematics"`
	Topic          string    `json:"topic" example:"Linear Equations"`
	TotalQuestions int       `json:"total_questions" example:"5"`
	CorrectAnswers int       `json:"correct_answers" example:"4"`
	Score          int       `json:"score" example:"80"`
	Duration       int       `json:"duration" example:"12"`
	Status         string    `json:"status" example:"completed"`
	CreatedAt      time.Time `json:"created_at"`
}

type AddQuestionResponse struct {
	Session       SessionResponse `json:"session"`
	QuestionCount int             `json:"question_count" example:"5"`
}

type SessionListResponse struct {
	Sessions   []SessionSummary `json:"sessions"`
	Pagination Pagination       `json:"pagination"`
}

type Pagination struct {
	Current int   `json:"current" example:"1"`
	Pages   int   `json:"pages" example:"3"`
	Total   int64 `json:"total" example:"25"`
}

// ==================== STATS DTOs ====================

type SubjectBreakdown struct {
	Sessions     int `json:"sessions" example:"4"`
	Questions    int `json:"questions" example:"20"`
	Correct      int `json:"correct" example:"15"`
	AverageScore int `json:"average_score" example:"75"`
}

type StudyStatsResponse struct {
	TotalSessions     int                         `json:"total_sessions" example:"12"`
	CompletedSessions int                         `json:"completed_sessions" example:"9"`
	TotalQuestions    int                         `json:"total_questions" example:"60"`
	TotalCorrect      int                         `json:"total_correct" example:"44"`
	AverageScore      int                         `json:"average_score" example:"73"`
	TotalStudyTime    int                         `json:"total_study_time" example:"140"` // minutes
	SubjectBreakdown  map[string]SubjectBreakdown `json:"subject_breakdown"`
	Timeframe         string                      `json:"timeframe" example:"30 days"`
}
