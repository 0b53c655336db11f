package service

import (
	"context"
	"errors"
	userserrors "househunt/internal/users/errors"
	"househunt/internal/users/repository"
	"househunt/internal/users/validator"
	"househunt/pkg/auth"
	"househunt/pkg/config"
	apperrors "househunt/pkg/errors"
	"househunt/pkg/model"
	"househunt/pkg/sanitizer"
	"househunt/pkg/validation"
	"net/http"
	"strings"
	"sync"
	"time"
)

// TokenIssuer signs access tokens for an email identity.
type TokenIssuer interface {
	Issue(email string) (string, time.Time, error)
}

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (string, *model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Logout(ctx context.Context, email string) error
	IssueToken(ctx context.Context, req *model.TokenRequest) (string, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	tokens    TokenIssuer
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	tokens TokenIssuer,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		cfg:       cfg,
	}
}

// dummyHash is compared against when the email is unknown so both login
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := auth.HashPassword("househunt-dummy-password")
	return hash
})

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.FirstName = sanitizer.NormalizeName(req.FirstName)
	req.LastName = sanitizer.NormalizeName(req.LastName)

	if err := s.validator.ValidateRegister(req); err != nil {
		s.cfg.Log.Warn("User registration validation failed",
			"email", req.Email,
			"error", err,
		)
		return nil, validation.ToAppError(err)
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, emailTaken(req.Email)
	case !errors.Is(err, userserrors.ErrNotFound):
		s.cfg.Log.Error("Failed to check for existing user", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	user := &model.User{
		Email:       req.Email,
		Password:    hash,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: strings.TrimSpace(req.FirstName + " " + req.LastName),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return nil, emailTaken(req.Email)
		}
		s.cfg.Log.Error("Failed to create user", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.cfg.Log.Info("User registered successfully", "id", user.ID, "email", user.Email)
	return user, nil
}

// Login returns a fresh token and the public user. Every credential problem
// surfaces as the same ErrInvalidCredentials so callers cannot probe which
// emails exist.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (string, *model.User, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateLogin(req); err != nil {
		return "", nil, invalidCredentials()
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, userserrors.ErrNotFound) {
			s.cfg.Log.Error("Failed to load user for login", "email", req.Email, "error", err)
			return "", nil, apperrors.Internal("Failed to log in", err)
		}
		_ = auth.CheckPassword(dummyHash(), req.Password)
		s.cfg.Log.Warn("Login failed", "email", req.Email, "reason", "unknown email")
		return "", nil, invalidCredentials()
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		s.cfg.Log.Warn("Login failed", "email", req.Email, "reason", "password mismatch")
		return "", nil, invalidCredentials()
	}

	token, _, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "email", user.Email, "error", err)
		return "", nil, apperrors.Internal("Failed to log in", err)
	}

	if _, err := s.repo.SetLoggedIn(ctx, user.Email, true); err != nil {
		s.cfg.Log.Error("Failed to mark user logged in", "email", user.Email, "error", err)
		return "", nil, apperrors.Internal("Failed to log in", err)
	}
	user.IsLoggedIn = true

	s.cfg.Log.Info("User logged in", "email", user.Email)
	return token, user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("email query parameter is required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		s.cfg.Log.Error("Failed to get user by email", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

// Logout clears the advisory isLoggedIn flag. Unknown emails are not an error.
func (s *userService) Logout(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return apperrors.InvalidInput("email cannot be empty")
	}

	matched, err := s.repo.SetLoggedIn(ctx, email, false)
	if err != nil {
		s.cfg.Log.Error("Failed to log out user", "email", email, "error", err)
		return apperrors.Internal("Failed to log out", err)
	}

	s.cfg.Log.Info("User logged out", "email", email, "matched", matched)
	return nil
}

func (s *userService) IssueToken(ctx context.Context, req *model.TokenRequest) (string, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	if err := s.validator.ValidateToken(req); err != nil {
		return "", validation.ToAppError(err)
	}

	token, _, err := s.tokens.Issue(req.Email)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "email", req.Email, "error", err)
		return "", apperrors.Internal("Failed to issue token", err)
	}
	return token, nil
}

func emailTaken(email string) *apperrors.AppError {
	return apperrors.Wrap(userserrors.ErrDuplicateEmail, apperrors.CodeConflict, "User already exists", http.StatusConflict).
		WithDetails(map[string]any{"email": email})
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.Wrap(userserrors.ErrInvalidCredentials, apperrors.CodeUnauthenticated, "Invalid email or password", http.StatusUnauthorized)
}
