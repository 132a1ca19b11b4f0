package dto

import "time"

// ==================== PROFILE DTOs ====================

type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name,omitempty" validate:"omitempty,min=2,max=50" example:"Wanjiku"`
	LastName       *string `json:"last_name,omitempty" validate:"omitempty,min=2,max=50" example:"Kamau"`
	PhoneNumber    *string `json:"phone_number,omitempty" validate:"omitempty,kenyan_phone" example:"254712345678"`
	School         *string `json:"school,omitempty" validate:"omitempty,min=2,max=100" example:"Alliance High School"`
	Language       *string `json:"language,omitempty" validate:"omitempty,oneof=en sw" example:"sw"`
	Notifications  *bool   `json:"notifications,omitempty" example:"true"`
	StudyReminders *bool   `json:"study_reminders,omitempty" example:"true"`
}

func (u UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(u)
}

type ProfileResponse struct {
	User  UserInfo     `json:"user"`
	Stats ProfileStats `json:"stats"`
}

type ProfileStats struct {
	TotalQuestions       int  `json:"total_questions" example:"120"`
	QuestionsToday       int  `json:"questions_today" example:"4"`
	StudyStreak          int  `json:"study_streak" example:"7"`
	CanAskQuestions      bool `json:"can_ask_questions" example:"true"`
	DailyLimit           int  `json:"daily_limit" example:"10"` // -1 when unlimited
	IsSubscriptionActive bool `json:"is_subscription_active" example:"true"`
}

// ==================== PROGRESS DTOs ====================

type SubjectProgressInfo struct {
	Questions int `json:"questions" example:"32"`
	Score     int `json:"score" example:"74"`
}

type ProgressResponse struct {
	TotalQuestionsAsked int                            `json:"total_questions_asked" example:"120"`
	QuestionsToday      int                            `json:"questions_today" example:"4"`
	StudyStreak         int                            `json:"study_streak" example:"7"`
	LastStudyDate       *time.Time                     `json:"last_study_date,omitempty"`
	SubjectProgress     map[string]SubjectProgressInfo `json:"subject_progress"`
	RecentSessions      []SessionSummary               `json:"recent_sessions"`
}

// ==================== QUESTION COUNTER DTOs ====================

type IncrementQuestionsRequest struct {
	Subject string `json:"subject,omitempty" validate:"omitempty,oneof=mathematics english kiswahili biology chemistry physics history geography cre" example:"mathematics"`
}

func (i IncrementQuestionsRequest) Validate() error {
	return GetValidator().Struct(i)
}

type IncrementQuestionsResponse struct {
	QuestionsToday int  `json:"questions_today" example:"5"`
	TotalQuestions int  `json:"total_questions" example:"121"`
	CanAskMore     bool `json:"can_ask_more" example:"true"`
	StudyStreak    int  `json:"study_streak" example:"7"`
}
