package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/food_order/internal/models"
	"github.com/Skotchmaster/food_order/internal/notify"
	"github.com/Skotchmaster/food_order/internal/repo"
	"github.com/Skotchmaster/food_order/internal/transport"
	pkg_hash "github.com/Skotchmaster/food_order/pkg/hash"
	"github.com/Skotchmaster/food_order/pkg/logging"
	"github.com/Skotchmaster/food_order/pkg/tokens"
)

type Notifier interface {
	Enqueue(msg notify.Message) bool
}

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
	Notifier  Notifier
}

type AuthResult struct {
	User        *models.User
	AccessToken string
	ExpiresAt   time.Time
	IsAdmin     bool
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, exp, err := tokens.NewAccessToken(user.ID.String(), user.Admin, s.TokenTTL, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: token, ExpiresAt: exp, IsAdmin: user.Admin}, nil
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	fe := FieldErrors{}
	validateStruct(req, fe)
	if err := invalid(fe); err != nil {
		return nil, err
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{Name: req.Name, Email: req.Email, PasswordHash: pwHash}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email %s", ErrConflict, req.Email)
		}
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.Enqueue(notify.Welcome(user))
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", req.Email)

	fe := FieldErrors{}
	validateStruct(req, fe)
	if err := invalid(fe); err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}
	if user.Blocked {
		l.Warn("login_failed", "reason", "blocked")
		return nil, ErrForbidden
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// Refresh issues a fresh token as long as the account still exists and is not blocked.
func (s *AuthService) Refresh(ctx context.Context, userID string) (*AuthResult, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if user.Blocked {
		return nil, ErrForbidden
	}
	return s.issue(user)
}

// EnsureAdmin seeds an administrator account when none exists for email.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		return false, err
	}
	return s.Repo.EnsureUser(ctx, &models.User{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: pwHash,
		Admin:        true,
	})
}
