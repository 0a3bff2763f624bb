package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"grillhouse/internal/domain"
	apperrors "grillhouse/internal/errors"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords,
// so a caller cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Session is an authenticated principal with a role. Sessions live in
// process memory only; a restart logs everyone out.
type Session struct {
	Token     string
	UserID    uint
	Username  string
	Role      string
	ExpiresAt time.Time
}

type AuthService struct {
	users  UserRepository
	ttl    time.Duration
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]Session
}

func NewAuthService(users UserRepository, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]Session),
	}
}

// Login verifies the credentials and issues an opaque session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	s.logger.Info("user logged in", zap.String("username", username), zap.String("role", user.Role))
	return &session, nil
}

// SessionFor resolves a token to its live session. Expired sessions are
// removed on access.
func (s *AuthService) SessionFor(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return nil, false
	}

	return &session, true
}

// Logout invalidates a token; unknown tokens are a no-op.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
