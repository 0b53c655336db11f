package middleware

import (
	"encoding/json"
	"errors"
	"househunt/pkg/auth"
	apperrors "househunt/pkg/errors"
	"househunt/pkg/logger"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

type mockVerifier struct {
	verifyFunc func(token string) (*auth.Claims, error)
}

func (m *mockVerifier) Verify(token string) (*auth.Claims, error) {
	return m.verifyFunc(token)
}

func acceptToken(valid, email string) *mockVerifier {
	return &mockVerifier{
		verifyFunc: func(token string) (*auth.Claims, error) {
			if token != valid {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Claims{Email: email}, nil
		},
	}
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Code
}

func TestRequireAuth(t *testing.T) {
	verifier := acceptToken("good", "owner@x.com")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"missing header", "", http.StatusUnauthorized, apperrors.CodeUnauthenticated},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, apperrors.CodeUnauthenticated},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, apperrors.CodeUnauthenticated},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, apperrors.CodeInvalidToken},
		{"valid token", "Bearer good", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotEmail string
			handle := RequireAuth(verifier, logger.Discard())(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				id, _ := IdentityFromContext(r.Context())
				gotEmail = id.Email
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/houses/owner@x.com", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handle(rec, req, nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode != "" {
				if code := decodeErrorCode(t, rec); code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, code)
				}
				return
			}
			if gotEmail != "owner@x.com" {
				t.Errorf("expected identity owner@x.com, got %q", gotEmail)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	verifier := acceptToken("good", "owner@x.com")
	chain := func(next httprouter.Handle) httprouter.Handle {
		return RequireAuth(verifier, logger.Discard())(RequireOwner("email")(next))
	}

	tests := []struct {
		name       string
		pathEmail  string
		wantStatus int
	}{
		{"same owner", "owner@x.com", http.StatusOK},
		{"same owner different case", "Owner@X.com", http.StatusOK},
		{"other user", "someone@else.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handle := chain(func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/bookings/"+tt.pathEmail, nil)
			req.Header.Set("Authorization", "Bearer good")
			rec := httptest.NewRecorder()
			handle(rec, req, httprouter.Params{{Key: "email", Value: tt.pathEmail}})

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusForbidden {
				if called {
					t.Error("handler must not run for a foreign owner")
				}
				if code := decodeErrorCode(t, rec); code != apperrors.CodeForbidden {
					t.Errorf("expected FORBIDDEN, got %s", code)
				}
			}
		})
	}
}

func TestRequireOwner_WithoutIdentity(t *testing.T) {
	handle := RequireOwner("email")(func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})
	rec := httptest.NewRecorder()
	handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{{Key: "email", Value: "a@b.com"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_RealTokenManager(t *testing.T) {
	tm := auth.NewTokenManager("0123456789abcdef0123", 0)
	token, _, err := tm.Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := tm.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("zero-ttl token should already be expired, got %v", err)
	}

	handle := RequireAuth(tm, logger.Discard())(func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handle(rec, req, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
