package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/credential-gateway/internal/auth"
	"github.com/spec-kit/credential-gateway/internal/config"
	"github.com/spec-kit/credential-gateway/internal/domain"
	"github.com/spec-kit/credential-gateway/internal/events"
	"github.com/spec-kit/credential-gateway/internal/repository"
)

var (
	ErrUsernameRequired   = errors.New("username required")
	ErrUserAlreadyExists  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	hasher     *auth.PasswordHasher
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger

	// dummyHash is compared against when the username is unknown.
	dummyHash string
}

// AuthDependencies encapsulates collaborators for the auth service.
// Dispatcher and Logger are optional.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	dummyHash, err := hasher.Hash("credential-gateway-dummy")
	if err != nil {
		logger.Error("dummy hash", zap.Error(err))
	}
	return &AuthService{
		users:      deps.UserRepo,
		hasher:     hasher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret),
		dispatcher: deps.Dispatcher,
		logger:     logger,
		dummyHash:  dummyHash,
	}
}

// RegisterUser stores a new user. Fails with ErrUserAlreadyExists when the
// username is taken, including when a concurrent registration wins the race.
func (s *AuthService) RegisterUser(ctx context.Context, username, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}

	// Skip the hash for obvious duplicates; Create re-checks under the write lock.
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, username, nil))
	return nil
}

// LoginUser authenticates a user and returns a signed access token. Unknown
// usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return "", err
		}
		// Spend the same bcrypt work as a real comparison.
		s.hasher.Verify(password, s.dummyHash)
		s.publish(ctx, events.NewEvent(events.EventLoginFailed, username,
			events.LoginFailedPayload{Reason: events.ReasonUnknownUser}))
		return "", ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.publish(ctx, events.NewEvent(events.EventLoginFailed, username,
			events.LoginFailedPayload{Reason: events.ReasonWrongPassword}))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenMgr.GenerateToken(user.Username)
	if err != nil {
		return "", err
	}

	s.publish(ctx, events.NewEvent(events.EventUserLoggedIn, username, nil))
	return token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Hasher exposes the password hasher, e.g. for seeding.
func (s *AuthService) Hasher() *auth.PasswordHasher {
	return s.hasher
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish auth event",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
