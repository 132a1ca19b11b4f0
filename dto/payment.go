package dto

import "time"

// ==================== PAYMENT DTOs ====================

type ProcessPaymentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0" example:"500"`
	Currency    string  `json:"currency" validate:"required,oneof=KES" example:"KES"`
	Method      string  `json:"method" validate:"required,oneof=mpesa card" example:"mpesa"`
	PhoneNumber string  `json:"phone_number,omitempty" validate:"omitempty,kenyan_phone" example:"254712345678"`
	Email       string  `json:"email" validate:"required,email" example:"wanjiku@example.com"`
	Plan        string  `json:"plan" validate:"required" example:"Pro Student"`
}

func (p ProcessPaymentRequest) Validate() error {
	return GetValidator().Struct(p)
}

type PaymentCallbackRequest struct {
	TransactionID string `json:"transaction_id" validate:"required" example:"INTASEND_12345"`
	Status        string `json:"status" validate:"required,oneof=completed failed" example:"completed"`
	Reference     string `json:"reference" validate:"required" example:"SHULE_1736933400000_0198a7f2-usr"`
}

func (p PaymentCallbackRequest) Validate() error {
	return GetValidator().Struct(p)
}

type PaymentRecordInfo struct {
	Amount        float64   `json:"amount" example:"500"`
	Currency      string    `json:"currency" example:"KES"`
	Method        string    `json:"method" example:"mpesa"`
	TransactionID string    `json:"transaction_id" example:"SHULE_1736933400000_0198a7f2-usr"`
	Status        string    `json:"status" example:"completed"`
	Date          time.Time `json:"date"`
}

type SubscriptionInfo struct {
	Plan      string    `json:"plan" example:"pro"`
	Status    string    `json:"status" example:"active"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active" example:"true"`
}

type ProcessPaymentResponse struct {
	TransactionID string           `json:"transaction_id" example:"SHULE_1736933400000_0198a7f2-usr"`
	Subscription  SubscriptionInfo `json:"subscription"`
}

type PaymentHistoryResponse struct {
	PaymentHistory      []PaymentRecordInfo `json:"payment_history"`
	CurrentSubscription SubscriptionInfo    `json:"current_subscription"`
}
