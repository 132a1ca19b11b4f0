package services

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

// GatewayOutcome is the result of a charge attempt.
type GatewayOutcome int

const (
	GatewaySuccess GatewayOutcome = iota
	GatewayDeclined
	GatewayTransientError
)

// Gateway abstracts the payment processor so tests can force outcomes.
type Gateway interface {
	Charge(req dto.ProcessPaymentRequest) (GatewayOutcome, error)
}

// SimulatedGateway stands in for IntaSend: it approves a fixed fraction of
// charges with no external call.
type SimulatedGateway struct {
	SuccessRate float64
	rng         *rand.Rand
}

func NewSimulatedGateway(successRate float64, seed int64) *SimulatedGateway {
	return &SimulatedGateway{
		SuccessRate: successRate,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (g *SimulatedGateway) Charge(_ dto.ProcessPaymentRequest) (GatewayOutcome, error) {
	if g.rng.Float64() < g.SuccessRate {
		return GatewaySuccess, nil
	}
	return GatewayDeclined, nil
}

// PaymentService records subscription purchases and keeps the payment ledger.
type PaymentService struct {
	context.DefaultService

	sqlSvc  *DatabaseService
	monSvc  *MonitoringService
	gateway Gateway
}

const PAYMENT_SVC = "payment_svc"

func (svc PaymentService) Id() string {
	return PAYMENT_SVC
}

func (svc *PaymentService) Configure(ctx *context.Context) error {
	rate := 0.9
	if v := os.Getenv("PAYMENT_SUCCESS_RATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			rate = parsed
		}
	}
	svc.gateway = NewSimulatedGateway(rate, time.Now().UnixNano())
	return svc.DefaultService.Configure(ctx)
}

func (svc *PaymentService) Start() error {
	svc.sqlSvc = svc.Service(DB_SVC).(*DatabaseService)
	svc.monSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// SetGateway swaps the charge backend. Used by tests.
func (svc *PaymentService) SetGateway(g Gateway) {
	svc.gateway = g
}

// planFromLabel maps the display plan name on the payment form to the
// internal plan code.
func planFromLabel(label string) string {
	switch label {
	case "Pro Student", "Mwanafunzi Pro":
		return shared.PlanPro
	default:
		return shared.PlanSchool
	}
}

// paymentReference builds the ledger reference: SHULE_<millis>_<userID>.
func paymentReference(userID string, now time.Time) string {
	return fmt.Sprintf("SHULE_%d_%s", now.UnixMilli(), userID)
}

// ProcessPayment charges the gateway and, on success, upgrades the user's
// subscription for 30 days. A declined charge still lands in the ledger as a
// failed record.
func (svc *PaymentService) ProcessPayment(userID string, req dto.ProcessPaymentRequest) (*dto.ProcessPaymentResponse, error) {
	subscription, err := svc.sqlSvc.Users().GetSubscription(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Subscription not found")
		}
		return nil, err
	}

	now := time.Now()
	reference := paymentReference(userID, now)

	outcome, err := svc.gateway.Charge(req)
	if err != nil || outcome == GatewayTransientError {
		log.WithError(err).WithField("user_id", userID).Error("Payment gateway unavailable")
		return nil, shared.NewBadRequestError("Payment service is temporarily unavailable. Please try again.")
	}

	record := &model.PaymentRecord{
		UserID:        userID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        req.Method,
		TransactionID: reference,
		Date:          now,
	}

	if outcome == GatewayDeclined {
		record.Status = shared.PaymentFailed
		if _, err := svc.sqlSvc.Payments().CreatePayment(record); err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Failed to persist declined payment")
		}
		svc.monSvc.PaymentProcessed(shared.PaymentFailed)
		return nil, shared.NewPaymentDeclinedError()
	}

	record.Status = shared.PaymentCompleted
	if _, err := svc.sqlSvc.Payments().CreatePayment(record); err != nil {
		return nil, err
	}

	subscription.Plan = planFromLabel(req.Plan)
	subscription.Status = shared.SubscriptionActive
	subscription.StartDate = now
	subscription.EndDate = now.AddDate(0, 0, 30)
	if err := svc.sqlSvc.Users().UpdateSubscription(subscription); err != nil {
		return nil, err
	}

	svc.monSvc.PaymentProcessed(shared.PaymentCompleted)
	log.WithFields(log.Fields{"user_id": userID, "plan": subscription.Plan, "reference": reference}).Info("Subscription payment completed")

	return &dto.ProcessPaymentResponse{
		TransactionID: reference,
		Subscription:  mapSubscription(subscription),
	}, nil
}

// HandleCallback reconciles an asynchronous gateway notification against the
// ledger by reference.
func (svc *PaymentService) HandleCallback(req dto.PaymentCallbackRequest) error {
	record, err := svc.sqlSvc.Payments().GetPaymentByReference(req.Reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError("Payment record not found")
		}
		return err
	}

	record.Status = req.Status
	if err := svc.sqlSvc.Payments().UpdatePayment(record); err != nil {
		return err
	}

	if req.Status == shared.PaymentCompleted {
		subscription, err := svc.sqlSvc.Users().GetSubscription(record.UserID)
		if err != nil {
			return err
		}
		subscription.Status = shared.SubscriptionActive
		if err := svc.sqlSvc.Users().UpdateSubscription(subscription); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{"reference": req.Reference, "status": req.Status}).Info("Payment callback processed")
	return nil
}

func (svc *PaymentService) GetHistory(userID string) (*dto.PaymentHistoryResponse, error) {
	payments, err := svc.sqlSvc.Payments().ListUserPayments(userID)
	if err != nil {
		return nil, err
	}

	subscription, err := svc.sqlSvc.Users().GetSubscription(userID)
	if err != nil {
		return nil, err
	}

	history := make([]dto.PaymentRecordInfo, 0, len(payments))
	for _, p := range payments {
		history = append(history, dto.PaymentRecordInfo{
			Amount:        p.Amount,
			Currency:      p.Currency,
			Method:        p.Method,
			TransactionID: p.TransactionID,
			Status:        p.Status,
			Date:          p.Date,
		})
	}

	return &dto.PaymentHistoryResponse{
		PaymentHistory:      history,
		CurrentSubscription: mapSubscription(subscription),
	}, nil
}

func mapSubscription(s *model.Subscription) dto.SubscriptionInfo {
	return dto.SubscriptionInfo{
		Plan:      s.Plan,
		Status:    s.Status,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		IsActive:  s.IsCurrentlyActive(),
	}
}
