package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

// demoPassword is the shared password for all seeded accounts.
const demoPassword = "DemoPass123"

// UserSeeder creates demo student accounts with their subscription and
// progress rows.
type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

type demoUser struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	School    string
	Language  string
	Plan      string
}

var demoUsers = []demoUser{
	{"Wanjiku", "Kamau", "wanjiku@shulecoach.demo", "254712000001", "Alliance High School", "en", shared.PlanFree},
	{"Otieno", "Odhiambo", "otieno@shulecoach.demo", "254712000002", "Maseno School", "en", shared.PlanPro},
	{"Amina", "Hassan", "amina@shulecoach.demo", "254712000003", "Mombasa Girls High School", "sw", shared.PlanFree},
	{"Kiprop", "Cheruiyot", "kiprop@shulecoach.demo", "254712000004", "Kapsabet Boys High School", "en", shared.PlanSchool},
}

func (s *UserSeeder) SeedUsers() error {
	log.Println("Seeding demo users...")

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 12)
	if err != nil {
		return err
	}

	now := time.Now()

	for _, d := range demoUsers {
		var count int64
		s.db.Model(&model.User{}).Where("email = ?", d.Email).Count(&count)
		if count > 0 {
			log.Printf("User %s already exists, skipping", d.Email)
			continue
		}

		userID, _ := uuid.NewV7()
		user := &model.User{
			ID:             userID.String(),
			FirstName:      d.FirstName,
			LastName:       d.LastName,
			Email:          d.Email,
			Password:       string(hashed),
			PhoneNumber:    d.Phone,
			School:         d.School,
			Role:           model.RoleStudent,
			Language:       d.Language,
			Notifications:  true,
			StudyReminders: true,
			IsActive:       true,
			LastLogin:      now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		endDate := model.FreePlanEndDate
		if d.Plan != shared.PlanFree {
			endDate = now.AddDate(0, 0, 30)
		}

		subscriptionID, _ := uuid.NewV7()
		subscription := &model.Subscription{
			ID:        subscriptionID.String(),
			UserID:    user.ID,
			Plan:      d.Plan,
			Status:    shared.SubscriptionActive,
			StartDate: now,
			EndDate:   endDate,
			CreatedAt: now,
			UpdatedAt: now,
		}

		progressID, _ := uuid.NewV7()
		progress := &model.StudyProgress{
			ID:               progressID.String(),
			UserID:           user.ID,
			LastQuestionDate: now,
			SubjectProgress:  model.EmptySubjectProgress(),
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			if err := tx.Create(subscription).Error; err != nil {
				return err
			}
			return tx.Create(progress).Error
		})
		if err != nil {
			return err
		}

		log.Printf("Created demo user %s (%s plan)", d.Email, d.Plan)
	}

	return nil
}
