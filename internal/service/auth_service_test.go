package service_test

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oxabz/time-tracker/internal/service"
)

func newTestAuth(t *testing.T, password string) *service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return service.NewAuthService(string(hash), "test-secret", time.Hour)
}

func TestLoginAndParseToken(t *testing.T) {
	auth := newTestAuth(t, "hunter2")

	token, apiErr := auth.Login("hunter2")
	if apiErr != nil {
		t.Fatalf("login: %v", apiErr)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	subject, apiErr := auth.ParseToken(token)
	if apiErr != nil {
		t.Fatalf("parse token: %v", apiErr)
	}
	if subject != "owner" {
		t.Fatalf("expected owner subject, got %s", subject)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newTestAuth(t, "hunter2")

	_, apiErr := auth.Login("wrong")
	if apiErr == nil || apiErr.Status != 401 {
		t.Fatalf("expected 401, got %v", apiErr)
	}
}

func TestLoginDisabled(t *testing.T) {
	auth := service.NewAuthService("", "test-secret", time.Hour)

	if auth.Enabled() {
		t.Fatal("expected auth disabled with empty hash")
	}
	if _, apiErr := auth.Login("anything"); apiErr == nil {
		t.Fatal("expected login to fail when auth is disabled")
	}
}

func TestParseGarbageToken(t *testing.T) {
	auth := newTestAuth(t, "hunter2")

	if _, apiErr := auth.ParseToken("not-a-token"); apiErr == nil {
		t.Fatal("expected invalid token error")
	}
}
