package model

import (
	"time"

	"github.com/shulecoach/shule_api/shared"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// FreePlanEndDate marks the free plan as perpetual. Free accounts never
// auto-expire; only paid plans carry a real 30-day window.
var FreePlanEndDate = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

type User struct {
	ID          string `json:"id" gorm:"primaryKey"`
	FirstName   string `json:"first_name" gorm:"not null"`
	LastName    string `json:"last_name" gorm:"not null"`
	Email       string `json:"email" gorm:"unique;not null"`
	Password    string `json:"-"`
	PhoneNumber string `json:"phone_number" gorm:"not null"`
	School      string `json:"school" gorm:"not null"`
	Role        string `json:"role" gorm:"default:student"`

	Language       string `json:"language" gorm:"default:en"` // en | sw
	Notifications  bool   `json:"notifications" gorm:"default:true"`
	StudyReminders bool   `json:"study_reminders" gorm:"default:true"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Subscription is the single subscription record owned by a user.
type Subscription struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;not null"`
	Plan      string    `json:"plan" gorm:"default:free"`     // free | pro | school
	Status    string    `json:"status" gorm:"default:active"` // active | inactive | cancelled | expired
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCurrentlyActive is the derived subscription flag: active status and an
// end date still in the future.
func (s *Subscription) IsCurrentlyActive() bool {
	return s.Status == shared.SubscriptionActive && s.EndDate.After(time.Now())
}

// DailyQuestionLimit returns the plan's daily allowance, with
// shared.UnlimitedQuestions for paid plans.
func (s *Subscription) DailyQuestionLimit() int {
	if s.Plan == shared.PlanPro || s.Plan == shared.PlanSchool {
		return shared.UnlimitedQuestions
	}
	return shared.FreeDailyQuestionLimit
}

// PaymentRecord is one entry in a user's payment history.
type PaymentRecord struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index;not null"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency" gorm:"default:KES"`
	Method        string    `json:"method"` // mpesa | card
	TransactionID string    `json:"transaction_id" gorm:"uniqueIndex"`
	Status        string    `json:"status" gorm:"default:pending"` // pending | completed | failed
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
