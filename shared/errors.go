package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a domain error that maps directly onto an HTTP response.
// Handlers return these from services untouched; the central fiber error
// handler renders them as the standard JSON envelope.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// GetAppError unwraps err into an AppError if one is in the chain.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func NewAppError(statusCode int, message string, data interface{}) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data}
}

func NewAuthError(message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

// QuotaData rides on quota-exceeded errors so the client can render an
// upgrade prompt with the actual numbers.
type QuotaData struct {
	Limit int `json:"limit"`
	Used  int `json:"used"`
}

// NewQuotaExceededError is returned by every question-producing operation
// once a free account has used its daily allowance.
func NewQuotaExceededError(limit, used int) *AppError {
	return &AppError{
		StatusCode: http.StatusForbidden,
		Message:    "You have reached your daily question limit. Upgrade to Pro for unlimited questions.",
		Data:       QuotaData{Limit: limit, Used: used},
	}
}

// IsQuotaExceeded reports whether err is the daily-limit rejection.
func IsQuotaExceeded(err error) bool {
	appErr, ok := GetAppError(err)
	if !ok {
		return false
	}
	_, isQuota := appErr.Data.(QuotaData)
	return appErr.StatusCode == http.StatusForbidden && isQuota
}

// NewPaymentDeclinedError is returned when the gateway declines a charge.
func NewPaymentDeclinedError() *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Message:    "Payment could not be processed. Please try again.",
	}
}
