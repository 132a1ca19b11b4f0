package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		FirstName:   "Wanjiku",
		LastName:    "Kamau",
		Email:       "wanjiku@example.com",
		Password:    "SecurePass123",
		PhoneNumber: "254712345678",
		School:      "Alliance High School",
	}
}

func TestRegisterRequest_Valid(t *testing.T) {
	require.NoError(t, validRegisterRequest().Validate())
}

func TestRegisterRequest_KenyanPhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"valid 254 number", "254712345678", false},
		{"leading zero format", "0712345678", true},
		{"plus prefix", "+254712345678", true},
		{"too short", "25471234567", true},
		{"too long", "2547123456789", true},
		{"letters", "254abc345678", true},
		{"wrong country code", "255712345678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			req.PhoneNumber = tt.phone
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterRequest_StrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"upper lower digit", "SecurePass123", false},
		{"minimum length", "Abcdefg1", false},
		{"too short", "Abc1def", true},
		{"no uppercase", "securepass123", true},
		{"no lowercase", "SECUREPASS123", true},
		{"no digit", "SecurePassword", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			req.Password = tt.password
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateValidationErrorResponse(t *testing.T) {
	req := validRegisterRequest()
	req.Email = "not-an-email"
	req.PhoneNumber = "0712345678"

	err := req.Validate()
	require.Error(t, err)

	resp := CreateValidationErrorResponse(err)
	require.Len(t, resp.Errors, 2)

	fields := []string{resp.Errors[0].Field, resp.Errors[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "phone_number")
}

func TestCreateSessionRequest_SubjectWhitelist(t *testing.T) {
	req := CreateSessionRequest{Subject: "alchemy", Topic: "Transmutation"}
	assert.Error(t, req.Validate())

	req.Subject = "chemistry"
	assert.NoError(t, req.Validate())
}

func TestGenerateQuizRequest_CountBounds(t *testing.T) {
	req := GenerateQuizRequest{Subject: "mathematics", Count: 21}
	assert.Error(t, req.Validate())

	req.Count = 20
	assert.NoError(t, req.Validate())

	// zero means "use the default", not invalid
	req.Count = 0
	assert.NoError(t, req.Validate())
}

func TestProcessPaymentRequest_Validation(t *testing.T) {
	req := ProcessPaymentRequest{
		Amount:   500,
		Currency: "KES",
		Method:   "mpesa",
		Email:    "wanjiku@example.com",
		Plan:     "Pro Student",
	}
	assert.NoError(t, req.Validate())

	req.Currency = "USD"
	assert.Error(t, req.Validate())

	req.Currency = "KES"
	req.Amount = 0
	assert.Error(t, req.Validate())

	req.Amount = 500
	req.Method = "cash"
	assert.Error(t, req.Validate())
}
