package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleType set user role
type RoleType string

const (
	// RoleEventManager is the event manager role
	RoleEventManager RoleType = "event_manager"
	// RoleUser is the regular user role
	RoleUser RoleType = "user"
)

// token purposes, reset tokens are only accepted by the password-reset flow
const (
	purposeAuth  = "auth"
	purposeReset = "password_reset"
)

// Claims structure for custom claims in JWT
type Claims struct {
	UserID  int64  `json:"user_id"`
	Role    string `json:"role"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// IsAuthToken reports whether the token grants session access.
// Reset tokens are only valid for the password-reset flow.
func (c *Claims) IsAuthToken() bool {
	return c.Purpose == purposeAuth
}

// Secret Key for JWT signing and validation
var (
	JWTSecret            = []byte("secure_secret_key")
	tokenExpiration      = 24 * time.Hour
	resetTokenExpiration = 30 * time.Minute
)

// GenerateJWT generates an auth JWT token
func GenerateJWT(userID int64, role, issuer string) (string, error) {
	claims := Claims{
		UserID:  userID,
		Role:    role,
		Purpose: purposeAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// GeneratePasswordResetToken short-lived token embedded in the emailed reset link
func GeneratePasswordResetToken(userID int64, issuer string) (string, error) {
	claims := Claims{
		UserID:  userID,
		Purpose: purposeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(resetTokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseJWT parses a JWT and extracts the Claims
func ParseJWT(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// ParsePasswordResetToken accept only purpose-scoped reset tokens
func ParsePasswordResetToken(tokenStr string) (*Claims, error) {
	claims, err := ParseJWT(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purposeReset {
		return nil, errors.New("token is not a password reset token")
	}
	return claims, nil
}
