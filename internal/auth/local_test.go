package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalAuthenticatorRoundTrip(t *testing.T) {
	a, err := NewLocalAuthenticator("secret", testLogger())
	if err != nil {
		t.Fatalf("NewLocalAuthenticator: %v", err)
	}

	user := &models.User{ID: "u1", Username: "alice", Role: models.RoleAdmin}
	token, err := a.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.GetUserID() != "u1" || claims.Username != "alice" || claims.Role != models.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Error("token has no expiry")
	}
}

func TestLocalAuthenticatorRejects(t *testing.T) {
	a, err := NewLocalAuthenticator("secret", testLogger())
	if err != nil {
		t.Fatalf("NewLocalAuthenticator: %v", err)
	}
	other, err := NewLocalAuthenticator("different-secret", testLogger())
	if err != nil {
		t.Fatalf("NewLocalAuthenticator: %v", err)
	}

	token, err := other.IssueToken(&models.User{ID: "u1", Username: "mallory"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", token},
		{"garbage", "not.a.token"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.VerifyToken(tt.token); !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("err = %v, want unauthorized", err)
			}
		})
	}
}

func TestNewLocalAuthenticatorEmptySecret(t *testing.T) {
	if _, err := NewLocalAuthenticator("", testLogger()); err == nil {
		t.Error("empty secret accepted")
	}
}
