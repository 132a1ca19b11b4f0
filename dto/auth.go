package dto

import "time"

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=2,max=50" example:"Wanjiku"`
	LastName    string `json:"last_name" validate:"required,min=2,max=50" example:"Kamau"`
	Email       string `json:"email" validate:"required,email" example:"wanjiku@example.com"`
	Password    string `json:"password" validate:"required,strong_password" example:"SecurePass123"`
	PhoneNumber string `json:"phone_number" validate:"required,kenyan_phone" example:"254712345678"`
	School      string `json:"school" validate:"required,min=2,max=100" example:"Alliance High School"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"wanjiku@example.com"`
	Password string `json:"password" validate:"required" example:"SecurePass123"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

func (r RefreshTokenRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" example:"wanjiku@example.com"`
}

func (f ForgotPasswordRequest) Validate() error {
	return GetValidator().Struct(f)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type AuthResponse struct {
	User         UserInfo `json:"user"`
	Token        string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string   `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn    int64    `json:"expires_in" example:"86400"`
}

type RefreshResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn int64  `json:"expires_in" example:"86400"`
}

type UserInfo struct {
	ID          string    `json:"id" example:"0198a7f2-usr"`
	FirstName   string    `json:"first_name" example:"Wanjiku"`
	LastName    string    `json:"last_name" example:"Kamau"`
	FullName    string    `json:"full_name" example:"Wanjiku Kamau"`
	Email       string    `json:"email" example:"wanjiku@example.com"`
	PhoneNumber string    `json:"phone_number" example:"254712345678"`
	School      string    `json:"school" example:"Alliance High School"`
	Role        string    `json:"role" example:"student"`
	Language    string    `json:"language" example:"en"`
	IsActive    bool      `json:"is_active" example:"true"`
	CreatedAt   time.Time `json:"created_at" example:"2025-01-01T00:00:00Z"`
	LastLogin   time.Time `json:"last_login" example:"2025-01-15T10:30:00Z"`
}
