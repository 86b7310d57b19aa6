package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/careerpath/internal/config"
	"github.com/mrlokans/careerpath/internal/entities"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the users repository the service needs.
type UserStore interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

// Revoker remembers token ids that were logged out before expiry.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Registration holds the fields needed to create an account.
type Registration struct {
	FullName string
	Username string
	Email    string
	Password string
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}

// Service handles registration, login and per-request token checks.
type Service struct {
	users   UserStore
	tokens  *TokenIssuer
	revoker Revoker
	config  config.Auth

	// compared against when the username does not exist, so unknown and
	// known usernames take the same time to reject
	dummyOnce sync.Once
	dummyHash string
}

// NewService creates a new authentication service. revoker may be nil, in which
// case logout only clears the cookie and tokens stay valid until expiry.
func NewService(users UserStore, tokens *TokenIssuer, revoker Revoker, cfg config.Auth) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		revoker: revoker,
		config:  cfg,
	}
}

func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// Register hashes the password and stores a new user.
func (s *Service) Register(ctx context.Context, reg Registration) (*entities.User, error) {
	passwordHash, err := HashPassword(reg.Password, s.config.BcryptCost)
	if err != nil {
		if errors.Is(err, ErrPasswordTooShort) || errors.Is(err, ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", entities.ErrUnprocessable, err)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		FullName:     reg.FullName,
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: passwordHash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate validates credentials and returns the user.
// Unknown usernames and wrong passwords produce the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			VerifyPassword(password, s.timingHash())
			return nil, fmt.Errorf("%w: %w", entities.ErrUnauthenticated, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: %w", entities.ErrUnauthenticated, ErrInvalidCredentials)
	}
	return user, nil
}

// Login authenticates and mints an access token.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Authorize resolves a raw token to its user. Every credential failure wraps
// entities.ErrUnauthenticated; infrastructure failures do not.
func (s *Service) Authorize(ctx context.Context, rawToken string) (*entities.User, *Claims, error) {
	if rawToken == "" {
		return nil, nil, fmt.Errorf("%w: missing credentials", entities.ErrUnauthenticated)
	}

	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", entities.ErrUnauthenticated, err)
	}

	if s.revoker != nil && claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, nil, fmt.Errorf("%w: token has been revoked", entities.ErrUnauthenticated)
		}
	}

	userID, err := claims.ParsedUserID()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", entities.ErrUnauthenticated, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: user no longer exists", entities.ErrUnauthenticated)
		}
		return nil, nil, err
	}
	return user, claims, nil
}

// Logout revokes the presented token when a revocation store is configured.
// Invalid or expired tokens need no revocation and are ignored.
func (s *Service) Logout(ctx context.Context, rawToken string) (*Claims, error) {
	if rawToken == "" {
		return nil, nil
	}
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, nil
	}
	if s.revoker == nil || claims.ID == "" {
		return claims, nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return claims, err
	}
	return claims, nil
}

func (s *Service) timingHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = HashPassword("not-a-real-password", s.config.BcryptCost)
	})
	return s.dummyHash
}
