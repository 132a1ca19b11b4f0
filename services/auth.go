package services

import (
	stdContext "context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

type AuthService struct {
	context.DefaultService

	sqlSvc   *DatabaseService
	jwtSvc   *JWTService
	redisSvc *RedisService
	emailSvc *EmailService
}

const AUTH_SVC = "auth_svc"

const tokenBlacklistPrefix = "auth:blacklist:"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(DB_SVC).(*DatabaseService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := svc.sqlSvc.Users().GetUserByEmail(req.Email); err == nil {
		return nil, shared.NewBadRequestError("A user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := svc.sqlSvc.Users().CreateUser(req)
	if err != nil {
		// Classifies the unique-constraint race when two registrations
		// share an email
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{"user_id": user.ID, "school": user.School}).Info("User registered")

	go func() {
		if err := svc.emailSvc.SendWelcomeEmail(user.Email, user.FirstName, shared.FreeDailyQuestionLimit); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Failed to send welcome email")
		}
	}()

	return svc.buildAuthResponse(user)
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := svc.sqlSvc.Users().GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewAuthError("Email or password is incorrect")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, shared.NewAuthError("Your account has been deactivated. Please contact support.")
	}

	if !svc.sqlSvc.Users().CheckPassword(user, req.Password) {
		return nil, shared.NewAuthError("Email or password is incorrect")
	}

	user.LastLogin = time.Now()
	if err := svc.sqlSvc.Users().UpdateUser(user); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	return svc.buildAuthResponse(user)
}

func (svc *AuthService) RefreshToken(req dto.RefreshTokenRequest) (*dto.RefreshResponse, error) {
	userID, err := svc.jwtSvc.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewAuthError("Invalid refresh token")
	}

	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil || !user.IsActive {
		return nil, shared.NewAuthError("User not found or inactive")
	}

	token, err := svc.jwtSvc.ToJWT(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshResponse{
		Token:     token,
		ExpiresIn: int64(svc.jwtSvc.AccessTokenDuration.Seconds()),
	}, nil
}

func (svc *AuthService) GetCurrentUser(userID string) (*dto.UserInfo, error) {
	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("User account not found")
		}
		return nil, err
	}

	info := MapUserInfo(user)
	return &info, nil
}

// Logout blacklists the presented access token for its remaining lifetime.
// Without redis the token simply ages out client-side.
func (svc *AuthService) Logout(userID, accessToken string) error {
	if !svc.redisSvc.Enabled() || accessToken == "" {
		return nil
	}

	err := svc.redisSvc.Set(stdContext.Background(),
		tokenBlacklistPrefix+accessToken, userID, svc.jwtSvc.AccessTokenDuration)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to blacklist token")
	}
	return nil
}

// ForgotPassword always reports success so account existence can't be probed.
func (svc *AuthService) ForgotPassword(email string) error {
	user, err := svc.sqlSvc.Users().GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	resetToken := hex.EncodeToString(tokenBytes)

	go func() {
		if err := svc.emailSvc.SendPasswordResetEmail(user.Email, user.FirstName, resetToken); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Error("Failed to send password reset email")
		}
	}()

	return nil
}

func (svc *AuthService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := svc.jwtSvc.ToJWT(user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := svc.jwtSvc.ToRefreshJWT(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:         MapUserInfo(user),
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(svc.jwtSvc.AccessTokenDuration.Seconds()),
	}, nil
}

// RequiredAuth guards private routes: bearer token, signature, expiry,
// blacklist, then stashes the user id in locals.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if userID == "" {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
		}

		if svc.redisSvc.Enabled() {
			blacklisted, err := svc.redisSvc.Exists(c.Context(), tokenBlacklistPrefix+token)
			if err != nil {
				log.WithError(err).Warn("Token blacklist check failed")
			} else if blacklisted {
				return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Token has been revoked")
			}
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}

// MapUserInfo converts a user row to its public representation.
func MapUserInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		School:      user.School,
		Role:        user.Role,
		Language:    user.Language,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		LastLogin:   user.LastLogin,
	}
}
