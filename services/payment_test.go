package services

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/shared"
)

type stubGateway struct {
	outcome GatewayOutcome
	err     error
}

func (g *stubGateway) Charge(_ dto.ProcessPaymentRequest) (GatewayOutcome, error) {
	return g.outcome, g.err
}

func newTestPaymentService(t *testing.T, db *DatabaseService, outcome GatewayOutcome) *PaymentService {
	t.Helper()
	return &PaymentService{
		sqlSvc:  db,
		monSvc:  &MonitoringService{},
		gateway: &stubGateway{outcome: outcome},
	}
}

func paymentRequest(plan string) dto.ProcessPaymentRequest {
	return dto.ProcessPaymentRequest{
		Amount:      500,
		Currency:    "KES",
		Method:      shared.PaymentMethodMpesa,
		PhoneNumber: "254712345678",
		Email:       "wanjiku@example.com",
		Plan:        plan,
	}
}

func TestProcessPayment_SuccessUpgradesSubscription(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPaymentService(t, db, GatewaySuccess)
	user := createTestUser(t, db, shared.PlanFree)

	before := time.Now()
	resp, err := svc.ProcessPayment(user.ID, paymentRequest("Pro Student"))
	require.NoError(t, err)

	refPattern := regexp.MustCompile(fmt.Sprintf(`^SHULE_\d+_%s$`, user.ID))
	assert.Regexp(t, refPattern, resp.TransactionID)

	assert.Equal(t, shared.PlanPro, resp.Subscription.Plan)
	assert.Equal(t, shared.SubscriptionActive, resp.Subscription.Status)
	assert.True(t, resp.Subscription.IsActive)

	// Roughly a 30 day window from now
	expectedEnd := before.AddDate(0, 0, 30)
	assert.WithinDuration(t, expectedEnd, resp.Subscription.EndDate, time.Minute)

	record, err := db.Payments().GetPaymentByReference(resp.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, shared.PaymentCompleted, record.Status)
	assert.Equal(t, 500.0, record.Amount)
}

func TestProcessPayment_PlanLabelMapping(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPaymentService(t, db, GatewaySuccess)

	tests := []struct {
		label string
		plan  string
	}{
		{"Pro Student", shared.PlanPro},
		{"Mwanafunzi Pro", shared.PlanPro},
		{"School Bundle", shared.PlanSchool},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			user := createTestUser(t, db, shared.PlanFree)
			resp, err := svc.ProcessPayment(user.ID, paymentRequest(tt.label))
			require.NoError(t, err)
			assert.Equal(t, tt.plan, resp.Subscription.Plan)
		})
	}
}

func TestProcessPayment_DeclinedKeepsFreePlan(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPaymentService(t, db, GatewayDeclined)
	user := createTestUser(t, db, shared.PlanFree)

	_, err := svc.ProcessPayment(user.ID, paymentRequest("Pro Student"))
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)

	// Subscription unchanged
	sub, err := db.Users().GetSubscription(user.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.PlanFree, sub.Plan)

	// Declined attempt still lands in the ledger
	payments, err := db.Payments().ListUserPayments(user.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, shared.PaymentFailed, payments[0].Status)
}

func TestHandleCallback_UpdatesRecordAndSubscription(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPaymentService(t, db, GatewaySuccess)
	user := createTestUser(t, db, shared.PlanFree)

	resp, err := svc.ProcessPayment(user.ID, paymentRequest("Pro Student"))
	require.NoError(t, err)

	sub, err := db.Users().GetSubscription(user.ID)
	require.NoError(t, err)
	sub.Status = shared.SubscriptionInactive
	require.NoError(t, db.Users().UpdateSubscription(sub))

	err = svc.HandleCallback(dto.PaymentCallbackRequest{
		TransactionID: "INTASEND_99",
		Status:        shared.PaymentCompleted,
		Reference:     resp.TransactionID,
	})
	require.NoError(t, err)

	sub, err = db.Users().GetSubscription(user.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.SubscriptionActive, sub.Status)
}

func TestHandleCallback_UnknownReference(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPaymentService(t, db, GatewaySuccess)

	err := svc.HandleCallback(dto.PaymentCallbackRequest{
		TransactionID: "INTASEND_1",
		Status:        shared.PaymentFailed,
		Reference:     "SHULE_0_missing",
	})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestGetHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPaymentService(t, db, GatewaySuccess)
	user := createTestUser(t, db, shared.PlanFree)

	_, err := svc.ProcessPayment(user.ID, paymentRequest("Pro Student"))
	require.NoError(t, err)

	resp, err := svc.GetHistory(user.ID)
	require.NoError(t, err)
	require.Len(t, resp.PaymentHistory, 1)
	assert.Equal(t, shared.PaymentCompleted, resp.PaymentHistory[0].Status)
	assert.Equal(t, shared.PlanPro, resp.CurrentSubscription.Plan)
	assert.True(t, resp.CurrentSubscription.IsActive)
}

func TestSimulatedGateway_Deterministic(t *testing.T) {
	alwaysApprove := NewSimulatedGateway(1.0, 7)
	for i := 0; i < 20; i++ {
		outcome, err := alwaysApprove.Charge(paymentRequest("Pro Student"))
		require.NoError(t, err)
		assert.Equal(t, GatewaySuccess, outcome)
	}

	alwaysDecline := NewSimulatedGateway(0.0, 7)
	for i := 0; i < 20; i++ {
		outcome, err := alwaysDecline.Charge(paymentRequest("Pro Student"))
		require.NoError(t, err)
		assert.Equal(t, GatewayDeclined, outcome)
	}
}
