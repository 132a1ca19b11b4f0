package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alphabatem/common/context"
)

type JWTService struct {
	context.DefaultService

	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	jwtSecretKey         string
	jwtRefreshSecretKey  string
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.AccessTokenDuration = durationFromEnv("JWT_EXPIRES_IN", 24*time.Hour)
	svc.RefreshTokenDuration = durationFromEnv("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour)
	svc.jwtSecretKey = os.Getenv("JWT_SECRET")
	svc.jwtRefreshSecretKey = os.Getenv("JWT_REFRESH_SECRET")
	if svc.jwtRefreshSecretKey == "" {
		svc.jwtRefreshSecretKey = svc.jwtSecretKey
	}
	return svc.DefaultService.Configure(ctx)
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func (svc *JWTService) Start() error {
	return nil
}

// VerifyJWTToken validates an access token and returns the user id.
func (svc *JWTService) VerifyJWTToken(jwtToken string) (string, error) {
	return svc.verify(jwtToken, svc.jwtSecretKey)
}

// VerifyRefreshToken validates a refresh token and returns the user id.
func (svc *JWTService) VerifyRefreshToken(jwtToken string) (string, error) {
	return svc.verify(jwtToken, svc.jwtRefreshSecretKey)
}

func (svc *JWTService) verify(jwtToken, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(jwtToken, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err == nil && token.Valid {
		claims, ok := token.Claims.(*CustomClaims)
		if ok && claims != nil {
			expTime, err := claims.GetExpirationTime()
			if err != nil {
				return "", fmt.Errorf("failed to get expiration time: %v", err)
			}
			if expTime.Unix() < time.Now().Unix() {
				return "", errors.New("token has expired")
			}

			return claims.UserID, nil
		}
	}

	return "", errors.New("unsupported JWT format")
}

// ToJWT issues an access token for the user.
func (svc *JWTService) ToJWT(userID string) (string, error) {
	return svc.sign(userID, svc.jwtSecretKey, svc.AccessTokenDuration)
}

// ToRefreshJWT issues a refresh token for the user.
func (svc *JWTService) ToRefreshJWT(userID string) (string, error) {
	return svc.sign(userID, svc.jwtRefreshSecretKey, svc.RefreshTokenDuration)
}

func (svc *JWTService) sign(userID, secret string, expiration time.Duration) (string, error) {
	expTime := time.Now().Add(expiration)

	claims := &CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "ShuleCoach",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return tokenString, nil
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	// Check if the header starts with "Bearer "
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", errors.New("invalid authorization header format")
	}

	return authHeader[7:], nil
}
