package seeders

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

// PaymentSeeder gives the paid demo accounts a matching ledger entry.
type PaymentSeeder struct {
	db *gorm.DB
}

func NewPaymentSeeder(db *gorm.DB) *PaymentSeeder {
	return &PaymentSeeder{db: db}
}

func (s *PaymentSeeder) SeedPayments() error {
	log.Println("Seeding demo payments...")

	var subscriptions []model.Subscription
	err := s.db.Where("plan IN ?", []string{shared.PlanPro, shared.PlanSchool}).
		Find(&subscriptions).Error
	if err != nil {
		return err
	}

	for _, sub := range subscriptions {
		var count int64
		s.db.Model(&model.PaymentRecord{}).Where("user_id = ?", sub.UserID).Count(&count)
		if count > 0 {
			continue
		}

		amount := 500.0
		if sub.Plan == shared.PlanSchool {
			amount = 2000.0
		}

		now := time.Now()
		paymentID, _ := uuid.NewV7()
		payment := &model.PaymentRecord{
			ID:            paymentID.String(),
			UserID:        sub.UserID,
			Amount:        amount,
			Currency:      "KES",
			Method:        shared.PaymentMethodMpesa,
			TransactionID: fmt.Sprintf("SHULE_%d_%s", now.UnixMilli(), sub.UserID),
			Status:        shared.PaymentCompleted,
			Date:          sub.StartDate,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := s.db.Create(payment).Error; err != nil {
			return err
		}

		log.Printf("Created payment record for subscription %s (%s)", sub.ID, sub.Plan)
	}

	return nil
}
