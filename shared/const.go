package shared

const (
	UserID = "user_id"

	PlanFree   = "free"
	PlanPro    = "pro"
	PlanSchool = "school"

	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"

	PaymentMethodMpesa = "mpesa"
	PaymentMethodCard  = "card"

	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// FreeDailyQuestionLimit is the number of questions a free-plan account may
// ask per calendar day.
const FreeDailyQuestionLimit = 10

// UnlimitedQuestions is the daily-limit sentinel for pro and school plans.
// It is never a valid counter value, so remaining-question arithmetic can
// pass it through untouched.
const UnlimitedQuestions = -1

// Subjects is the fixed KCSE subject set. Subject progress and session
// filtering only recognize these nine.
var Subjects = []string{
	"mathematics",
	"english",
	"kiswahili",
	"biology",
	"chemistry",
	"physics",
	"history",
	"geography",
	"cre",
}

// IsValidSubject reports whether s is one of the nine KCSE subjects.
func IsValidSubject(s string) bool {
	for _, subject := range Subjects {
		if subject == s {
			return true
		}
	}
	return false
}
