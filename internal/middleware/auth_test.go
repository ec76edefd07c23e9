package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/auth"
	"taskboard/internal/domain/models"
	"taskboard/internal/httputil"
)

func newVerifier(t *testing.T) *auth.LocalAuthenticator {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := auth.NewLocalAuthenticator("test-secret", logger)
	if err != nil {
		t.Fatalf("NewLocalAuthenticator: %v", err)
	}
	return a
}

func TestAuthMiddleware(t *testing.T) {
	verifier := newVerifier(t)
	token, err := verifier.IssueToken(&models.User{ID: "u1", Username: "alice", Role: "user"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = httputil.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
	protected := AuthMiddleware(verifier)(next)

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{"public path without token", "/api/health", "", http.StatusOK},
		{"missing token", "/api/projects", "", http.StatusUnauthorized},
		{"malformed header", "/api/projects", "Token abc", http.StatusUnauthorized},
		{"invalid token", "/api/projects", "Bearer garbage", http.StatusForbidden},
		{"valid token", "/api/projects", "Bearer " + token, http.StatusOK},
		{"websocket token in query", "/api/ws?token=" + token, "", http.StatusOK},
		{"websocket without token", "/api/ws", "", http.StatusUnauthorized},
		{"query token ignored elsewhere", "/api/projects?token=" + token, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUserID = ""
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if rec.Code == http.StatusOK && tt.path != "/api/health" && seenUserID != "u1" {
				t.Errorf("user ID in context = %q, want u1", seenUserID)
			}
		})
	}
}
