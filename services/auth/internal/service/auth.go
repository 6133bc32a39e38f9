package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Skotchmaster/storefront/pkg/config"
	"github.com/Skotchmaster/storefront/pkg/events"
	pkg_hash "github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
	"github.com/Skotchmaster/storefront/services/auth/internal/models"
	"github.com/Skotchmaster/storefront/services/auth/internal/repo"
	"github.com/Skotchmaster/storefront/services/auth/internal/transport"
)

type AccountStore interface {
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	FindAccountByID(ctx context.Context, id uint) (*models.Account, error)
	CreateAccountIfNotExists(ctx context.Context, a *models.Account) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type AuthService struct {
	Repo      AccountStore
	JWTSecret []byte
	TokenTTL  time.Duration
	Events    EventPublisher
	Now       func() time.Time
}

type LoginResult struct {
	Account   *models.Account
	Token     string
	ExpiresAt time.Time
}

// compared against when the email is unknown so both failure paths cost one bcrypt check
var dummyHash = sync.OnceValue(func() string {
	h, _ := pkg_hash.HashPassword("storefront-dummy-password")
	return h
})

func (h *AuthService) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *AuthService) ttl() time.Duration {
	if h.TokenTTL > 0 {
		return h.TokenTTL
	}
	return config.DefaultTokenTTL
}

func (h *AuthService) publish(ctx context.Context, eventType string, account *models.Account) {
	if h.Events == nil {
		return
	}
	l := logging.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	event := map[string]any{
		"type":       eventType,
		"account_id": account.ID,
		"email":      account.Email,
		"at":         h.now().UTC(),
	}
	key := strconv.FormatUint(uint64(account.ID), 10)
	if err := h.Events.PublishEvent(ctx, events.TopicUserEvents, key, event); err != nil {
		l.Warn("event_publish_failed", "type", eventType, "error", err)
	}
}

func (h *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email := models.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, pkg_hash.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: pwHash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		IsActive:     true,
	}
	if err := h.Repo.CreateAccountIfNotExists(ctx, account); err != nil {
		if errors.Is(err, repo.ErrAccountExists) {
			l.Warn("register_error", "status", 409, "reason", "user already exists")
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		l.Error("register_error", "status", 500, "reason", "db error", "error", err)
		return nil, err
	}

	h.publish(ctx, events.TypeUserRegistered, account)
	return account, nil
}

func (h *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	l := logging.FromContext(ctx).With("svc", "auth.login")

	account, err := h.Repo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			pkg_hash.CheckPassword(dummyHash(), password)
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !account.IsActive {
		l.Warn("login_failed", "status", 401, "reason", "account deactivated", "account_id", account.ID)
		return nil, ErrAccountDeactivated
	}

	if !pkg_hash.CheckPassword(account.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password", "account_id", account.ID)
		return nil, ErrInvalidCredentials
	}

	issuedAt := h.now()
	expiresAt := issuedAt.Add(h.ttl())
	token, err := tokens.SignSession(account.ID, account.Email, h.JWTSecret, issuedAt, expiresAt)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot create token", "error", err)
		return nil, err
	}

	h.publish(ctx, events.TypeUserLoggedIn, account)

	return &LoginResult{
		Account:   account,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Me re-reads the account behind a verified token so later deactivation takes effect.
func (h *AuthService) Me(ctx context.Context, accountID uint) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "auth.me", "account_id", accountID)

	account, err := h.Repo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("me_failed", "status", 404, "reason", "account gone")
			return nil, ErrNotFound
		}
		l.Error("me_failed", "status", 500, "error", err)
		return nil, err
	}
	if !account.IsActive {
		l.Warn("me_failed", "status", 401, "reason", "account deactivated")
		return nil, ErrAccountDeactivated
	}
	return account, nil
}
