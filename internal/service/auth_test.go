package service

import (
	"context"
	"errors"
	"testing"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/services"
)

func newAuthFixture(t *testing.T) (services.AuthService, *memUserRepo, *auth.LocalAuthenticator) {
	t.Helper()
	repo := newMemUserRepo()
	issuer, err := auth.NewLocalAuthenticator("test-secret", testLogger())
	if err != nil {
		t.Fatalf("NewLocalAuthenticator: %v", err)
	}
	return NewAuthService(repo, issuer, testLogger()), repo, issuer
}

func registerReq() *services.RegisterRequest {
	return &services.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}
}

func TestRegister(t *testing.T) {
	svc, _, issuer := newAuthFixture(t)

	result, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if result.User.ID == "" {
		t.Error("user ID not assigned")
	}
	if result.User.Role != models.RoleUser || result.User.Status != models.UserStatusActive {
		t.Errorf("role/status = %s/%s", result.User.Role, result.User.Status)
	}
	if result.User.PasswordHash == registerReq().Password {
		t.Error("password stored in the clear")
	}

	// The issued token verifies and carries the new user's identity.
	claims, err := issuer.VerifyToken(result.Token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.GetUserID() != result.User.ID || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*services.RegisterRequest)
	}{
		{"short username", func(r *services.RegisterRequest) { r.Username = "ab" }},
		{"bad email", func(r *services.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *services.RegisterRequest) { r.Password = "12345" }},
		{"missing email", func(r *services.RegisterRequest) { r.Email = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerReq()
			tt.mutate(req)
			if _, err := svc.Register(ctx, req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, registerReq())
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate register: err = %v, want conflict", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(ctx, &services.LoginRequest{Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("no token issued")
	}

	// Wrong password and unknown account fail identically.
	_, badPass := svc.Login(ctx, &services.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	_, noUser := svc.Login(ctx, &services.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	for name, err := range map[string]error{"wrong password": badPass, "unknown user": noUser} {
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("%s: err = %v, want unauthorized", name, err)
		}
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	userID := result.User.ID

	err = svc.ChangePassword(ctx, userID, &services.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("wrong old password: err = %v, want validation error", err)
	}

	err = svc.ChangePassword(ctx, userID, &services.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(ctx, &services.LoginRequest{Email: "alice@example.com", Password: "newpassword"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, &services.LoginRequest{Email: "alice@example.com", Password: "password123"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("login with old password: err = %v, want unauthorized", err)
	}
}
