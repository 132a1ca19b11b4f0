package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shulecoach/shule_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(req dto.RefreshTokenRequest) (*dto.RefreshResponse, error)
	Logout(userID, accessToken string) error
	GetCurrentUser(userID string) (*dto.UserInfo, error)
	ForgotPassword(email string) error
	RequiredAuth() fiber.Handler
}

type JWTServiceInterface interface {
	ExtractTokenFromHeader(authHeader string) (string, error)
	VerifyJWTToken(token string) (string, error)
}

type UserServiceInterface interface {
	GetProfile(userID string) (*dto.ProfileResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error)
	GetProgress(userID string) (*dto.ProgressResponse, error)
	IncrementQuestionCount(userID, subject string) (*dto.IncrementQuestionsResponse, error)
	DeactivateAccount(userID string) error
}

type StudyServiceInterface interface {
	CreateSession(userID string, req dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(userID, sessionID string) (*dto.SessionResponse, error)
	ListSessions(userID, subject, status string, page, limit int) (*dto.SessionListResponse, error)
	AddQuestion(userID, sessionID string, req dto.AddQuestionRequest) (*dto.AddQuestionResponse, error)
	UpdateSession(userID, sessionID string, req dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	GetStats(userID string, days int) (*dto.StudyStatsResponse, error)
}

type QuizServiceInterface interface {
	Generate(userID string, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	Submit(userID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	History(userID string, page, limit int) (*dto.QuizHistoryResponse, error)
}

type PaymentServiceInterface interface {
	ProcessPayment(userID string, req dto.ProcessPaymentRequest) (*dto.ProcessPaymentResponse, error)
	HandleCallback(req dto.PaymentCallbackRequest) error
	GetHistory(userID string) (*dto.PaymentHistoryResponse, error)
}
