package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/oxabz/time-tracker/internal/errors"
)

const ownerSubject = "owner"

// AuthService gates the API behind a single owner password. The tracker is
// single-user; there is no user table, just a bcrypt hash from configuration
// exchanged for a short-lived JWT. An empty hash disables the gate entirely.
type AuthService struct {
	passwordHash []byte
	jwtSecret    []byte
	tokenTTL     time.Duration
}

func NewAuthService(passwordHash, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

// Enabled reports whether an owner password is configured.
func (s *AuthService) Enabled() bool {
	return len(s.passwordHash) > 0
}

// Login verifies the owner password and issues a token.
func (s *AuthService) Login(password string) (string, *apperrors.APIError) {
	if !s.Enabled() {
		return "", apperrors.BadRequest("auth_disabled", "authentication is not configured")
	}
	if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		return "", apperrors.Unauthorized("invalid password")
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   ownerSubject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token")
	}
	return signed, nil
}

// ParseToken validates a token and returns its subject.
func (s *AuthService) ParseToken(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != ownerSubject {
		return "", apperrors.Unauthorized("invalid token subject")
	}

	return claims.Subject, nil
}
