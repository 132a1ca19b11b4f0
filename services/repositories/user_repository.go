package repositories

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

const bcryptCost = 12

// UserRepository handles user identity and subscription rows.
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser persists a new account with its free subscription and zeroed
// study progress in one transaction.
func (ds *UserRepository) CreateUser(req dto.RegisterRequest) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	userID, _ := uuid.NewV7()
	user := &model.User{
		ID:             userID.String(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          strings.ToLower(req.Email),
		Password:       string(hashed),
		PhoneNumber:    req.PhoneNumber,
		School:         req.School,
		Role:           model.RoleStudent,
		Language:       "en",
		Notifications:  true,
		StudyReminders: true,
		IsActive:       true,
		LastLogin:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	subscriptionID, _ := uuid.NewV7()
	subscription := &model.Subscription{
		ID:        subscriptionID.String(),
		UserID:    user.ID,
		Plan:      shared.PlanFree,
		Status:    shared.SubscriptionActive,
		StartDate: now,
		EndDate:   model.FreePlanEndDate,
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

	err = ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(subscription).Error; err != nil {
			return err
		}
		return tx.Create(progress).Error
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (ds *UserRepository) UpdateUser(user *model.User) error {
	user.UpdatedAt = time.Now()
	return ds.db.Save(user).Error
}

func (ds *UserRepository) CheckPassword(user *model.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}

func (ds *UserRepository) GetSubscription(userID string) (*model.Subscription, error) {
	var subscription model.Subscription
	if err := ds.db.Where("user_id = ?", userID).First(&subscription).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (ds *UserRepository) UpdateSubscription(subscription *model.Subscription) error {
	subscription.UpdatedAt = time.Now()
	return ds.db.Save(subscription).Error
}

func (ds *UserRepository) GetStudyProgress(userID string) (*model.StudyProgress, error) {
	var progress model.StudyProgress
	if err := ds.db.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (ds *UserRepository) UpdateStudyProgress(progress *model.StudyProgress) error {
	progress.UpdatedAt = time.Now()
	return ds.db.Save(progress).Error
}
