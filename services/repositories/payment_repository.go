package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/model"
)

// PaymentRepository handles the payment ledger.
type PaymentRepository struct {
	BaseRepository
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *PaymentRepository) CreatePayment(payment *model.PaymentRecord) (*model.PaymentRecord, error) {
	id, _ := uuid.NewV7()
	payment.ID = id.String()
	if err := ds.db.Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func (ds *PaymentRepository) UpdatePayment(payment *model.PaymentRecord) error {
	payment.UpdatedAt = time.Now()
	return ds.db.Save(payment).Error
}

func (ds *PaymentRepository) GetPaymentByReference(reference string) (*model.PaymentRecord, error) {
	var payment model.PaymentRecord
	if err := ds.db.Where("transaction_id = ?", reference).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (ds *PaymentRepository) ListUserPayments(userID string) ([]model.PaymentRecord, error) {
	var payments []model.PaymentRecord
	err := ds.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
