package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/opsboard/internal/auth"
	"github.com/spec-kit/opsboard/internal/domain"
	"github.com/spec-kit/opsboard/internal/events"
	"github.com/spec-kit/opsboard/internal/repository"
	"github.com/spec-kit/opsboard/pkg/util"
)

// AuthService verifies credentials and issues one-shot session tokens.
type AuthService struct {
	users      repository.UserRepository
	sessions   *auth.SessionStore
	tokenBytes int
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   *auth.SessionStore
	TokenBytes int
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		tokenBytes: deps.TokenBytes,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Login authenticates a username/password pair. The response never reveals
// which of the two was wrong. On success the last-login timestamp is touched
// and a fresh opaque session token is issued.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	digest := auth.DigestPassword(password)

	user, err := s.users.GetByCredentials(ctx, username, digest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", util.NewAuthenticationFailed("Invalid username or password")
		}
		return nil, "", util.MapError(err)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, "", util.MapError(err)
	}

	token, err := auth.NewSessionToken(s.tokenBytes)
	if err != nil {
		return nil, "", util.MapError(err)
	}

	if err := s.sessions.Record(ctx, token, user.ID); err != nil {
		s.logger.Warn("failed to record session", zap.Error(err))
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventUserLoggedIn, events.UserLoggedInPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}))
	return user, token, nil
}
