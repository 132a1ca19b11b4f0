package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

// SessionSeeder attaches a handful of finished study sessions to the demo
// accounts so lists and stats render with data.
type SessionSeeder struct {
	db *gorm.DB
}

func NewSessionSeeder(db *gorm.DB) *SessionSeeder {
	return &SessionSeeder{db: db}
}

type demoSession struct {
	Subject   string
	Topic     string
	Questions []model.SessionQuestion
	Duration  int
	Status    string
	DaysAgo   int
}

func boolPtr(b bool) *bool { return &b }

var demoSessions = []demoSession{
	{
		Subject: "mathematics",
		Topic:   "Linear Equations",
		Questions: []model.SessionQuestion{
			{Question: "Solve for x: 2x + 5 = 13", Answer: "x = 4", UserResponse: "x = 4", IsCorrect: boolPtr(true), Difficulty: shared.DifficultyEasy, TimeSpent: 40},
			{Question: "Solve for y: 3y - 6 = 9", Answer: "y = 5", UserResponse: "y = 4", IsCorrect: boolPtr(false), Difficulty: shared.DifficultyEasy, TimeSpent: 55},
			{Question: "Simplify: 4(x + 2) - 3x", Answer: "x + 8", UserResponse: "x + 8", IsCorrect: boolPtr(true), Difficulty: shared.DifficultyMedium, TimeSpent: 62},
		},
		Duration: 12,
		Status:   shared.SessionCompleted,
		DaysAgo:  2,
	},
	{
		Subject: "chemistry",
		Topic:   "Chemical Formulas",
		Questions: []model.SessionQuestion{
			{Question: "What is the chemical formula for water?", Answer: "H2O", UserResponse: "H2O", IsCorrect: boolPtr(true), Difficulty: shared.DifficultyEasy, TimeSpent: 20},
			{Question: "What is the formula for common salt?", Answer: "NaCl", UserResponse: "NaCl", IsCorrect: boolPtr(true), Difficulty: shared.DifficultyEasy, TimeSpent: 25},
		},
		Duration: 6,
		Status:   shared.SessionCompleted,
		DaysAgo:  1,
	},
	{
		Subject: "english",
		Topic:   "Grammar",
		Questions: []model.SessionQuestion{
			{Question: "Choose the correct sentence", Answer: "She goes to school", UserResponse: "", Difficulty: shared.DifficultyEasy, TimeSpent: 0},
		},
		Duration: 0,
		Status:   shared.SessionActive,
		DaysAgo:  0,
	},
}

func (s *SessionSeeder) SeedSessions() error {
	log.Println("Seeding demo study sessions...")

	var users []model.User
	if err := s.db.Where("email LIKE ?", "%@shulecoach.demo").Find(&users).Error; err != nil {
		return err
	}
	if len(users) == 0 {
		log.Println("No demo users found, skipping session seeding")
		return nil
	}

	for i, d := range demoSessions {
		user := users[i%len(users)]

		var count int64
		s.db.Model(&model.StudySession{}).
			Where("user_id = ? AND subject = ? AND topic = ?", user.ID, d.Subject, d.Topic).
			Count(&count)
		if count > 0 {
			continue
		}

		start := time.Now().AddDate(0, 0, -d.DaysAgo)

		sessionID, _ := uuid.NewV7()
		session := &model.StudySession{
			ID:        sessionID.String(),
			UserID:    user.ID,
			Subject:   d.Subject,
			Topic:     d.Topic,
			Duration:  d.Duration,
			Status:    d.Status,
			StartTime: start,
			CreatedAt: start,
			UpdatedAt: start,
		}

		for j := range d.Questions {
			d.Questions[j].Timestamp = start.Add(time.Duration(j) * time.Minute)
		}
		if err := session.SetQuestionLog(d.Questions); err != nil {
			return err
		}
		session.RecalculateScore()

		if d.Status == shared.SessionCompleted {
			end := start.Add(time.Duration(d.Duration) * time.Minute)
			session.EndTime = &end
		}

		if err := s.db.Create(session).Error; err != nil {
			return err
		}

		log.Printf("Created %s session for %s (%s)", d.Subject, user.Email, d.Status)
	}

	return nil
}
