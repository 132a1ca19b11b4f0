package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/shared"
)

type PaymentHandler struct {
	paymentSvc PaymentServiceInterface
}

func NewPaymentHandler(paymentSvc PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{
		paymentSvc: paymentSvc,
	}
}

// @Summary Process a subscription payment
// @Description Charge the gateway and upgrade the subscription for 30 days on success
// @Tags payments
// @Accept json
// @Produce json
// @Security Bearer
// @Param paymentRequest body dto.ProcessPaymentRequest true "Payment details"
// @Success 200 {object} shared.Response{data=dto.ProcessPaymentResponse}
// @Failure 400 {object} shared.Response
// @Router /api/v1/payments/intasend [post]
func (h *PaymentHandler) ProcessPayment(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.ProcessPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.paymentSvc.ProcessPayment(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Payment processed successfully", resp)
}

// @Summary Payment gateway callback
// @Description Reconcile an asynchronous payment notification by reference
// @Tags payments
// @Accept json
// @Produce json
// @Param callbackRequest body dto.PaymentCallbackRequest true "Callback payload"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/payments/callback [post]
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	var req dto.PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.paymentSvc.HandleCallback(req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Callback processed", nil)
}

// @Summary Payment history
// @Description Return the payment ledger and current subscription
// @Tags payments
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.PaymentHistoryResponse}
// @Router /api/v1/payments/history [get]
func (h *PaymentHandler) History(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.paymentSvc.GetHistory(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
