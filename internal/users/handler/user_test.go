package handler

import (
	"context"
	"encoding/json"
	userserrors "househunt/internal/users/errors"
	apperrors "househunt/pkg/errors"
	"househunt/pkg/logger"
	"househunt/pkg/model"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
)

type mockUserService struct {
	registerFunc   func(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	loginFunc      func(ctx context.Context, req *model.LoginRequest) (string, *model.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	logoutFunc     func(ctx context.Context, email string) error
	issueTokenFunc func(ctx context.Context, req *model.TokenRequest) (string, error)
}

func (m *mockUserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	return m.registerFunc(ctx, req)
}

func (m *mockUserService) Login(ctx context.Context, req *model.LoginRequest) (string, *model.User, error) {
	return m.loginFunc(ctx, req)
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserService) Logout(ctx context.Context, email string) error {
	return m.logoutFunc(ctx, email)
}

func (m *mockUserService) IssueToken(ctx context.Context, req *model.TokenRequest) (string, error) {
	return m.issueTokenFunc(ctx, req)
}

func newRouter(svc *mockUserService) *httprouter.Router {
	router := httprouter.New()
	NewUserHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRegister(t *testing.T) {
	svc := &mockUserService{
		registerFunc: func(_ context.Context, req *model.RegisterRequest) (*model.User, error) {
			if req.Email == "taken@x.com" {
				return nil, apperrors.Wrap(userserrors.ErrDuplicateEmail, apperrors.CodeConflict, "exists", http.StatusConflict)
			}
			return &model.User{ID: "abc123"}, nil
		},
	}
	router := newRouter(svc)

	rec := do(router, http.MethodPost, "/users", `{"email":"new@x.com","password":"secret123","firstName":"N"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["acknowledged"] != true || body["insertedId"] != "abc123" {
		t.Errorf("unexpected body %v", body)
	}

	rec = do(router, http.MethodPost, "/users", `{"email":"taken@x.com","password":"secret123","firstName":"T"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if body := decode(t, rec); body["isExist"] != true {
		t.Errorf("expected isExist:true, got %v", body)
	}

	rec = do(router, http.MethodPost, "/users", `{"email":`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed json, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	svc := &mockUserService{
		loginFunc: func(_ context.Context, req *model.LoginRequest) (string, *model.User, error) {
			if req.Password != "secret123" {
				return "", nil, apperrors.Wrap(userserrors.ErrInvalidCredentials, apperrors.CodeUnauthenticated, "bad", http.StatusUnauthorized)
			}
			return "tok", &model.User{Email: req.Email, Password: "$2a$hash", IsLoggedIn: true}, nil
		},
	}
	router := newRouter(svc)

	rec := do(router, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "$2a$hash") {
		t.Fatal("password hash leaked in login response")
	}
	body := decode(t, rec)
	if body["isLogin"] != true || body["token"] != "tok" {
		t.Errorf("unexpected body %v", body)
	}
	if _, ok := body["user"].(map[string]any); !ok {
		t.Errorf("expected user object, got %v", body["user"])
	}

	for _, payload := range []string{`{"email":"a@b.com","password":"nope"}`, `not json`} {
		rec = do(router, http.MethodPost, "/users/login", payload)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s, got %d", payload, rec.Code)
		}
		body = decode(t, rec)
		if body["isLogin"] != false {
			t.Errorf("expected isLogin:false, got %v", body)
		}
		if _, ok := body["token"]; ok {
			t.Error("token must be absent on failure")
		}
	}
}

func TestGetByEmail(t *testing.T) {
	svc := &mockUserService{
		getByEmailFunc: func(_ context.Context, email string) (*model.User, error) {
			switch email {
			case "":
				return nil, apperrors.InvalidInput("email query parameter is required")
			case "a@b.com":
				return &model.User{Email: email, Password: "hash"}, nil
			default:
				return nil, apperrors.NotFound("User")
			}
		},
	}
	router := newRouter(svc)

	rec := do(router, http.MethodGet, "/users?email=a@b.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := decode(t, rec)["password"]; ok {
		t.Error("password must never be serialized")
	}

	if rec := do(router, http.MethodGet, "/users?email=ghost@x.com", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec := do(router, http.MethodGet, "/users", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLogoutAndToken(t *testing.T) {
	var loggedOut string
	svc := &mockUserService{
		logoutFunc: func(_ context.Context, email string) error {
			loggedOut = email
			return nil
		},
		issueTokenFunc: func(_ context.Context, req *model.TokenRequest) (string, error) {
			return "signed-" + req.Email, nil
		},
	}
	router := newRouter(svc)

	rec := do(router, http.MethodGet, "/users/logout/a@b.com", "")
	if rec.Code != http.StatusOK || decode(t, rec)["isLogout"] != true {
		t.Fatalf("unexpected logout response %d %s", rec.Code, rec.Body.String())
	}
	if loggedOut != "a@b.com" {
		t.Errorf("expected logout for a@b.com, got %q", loggedOut)
	}

	rec = do(router, http.MethodPost, "/jwt", `{"email":"a@b.com"}`)
	if rec.Code != http.StatusOK || decode(t, rec)["token"] != "signed-a@b.com" {
		t.Fatalf("unexpected token response %d %s", rec.Code, rec.Body.String())
	}
}
