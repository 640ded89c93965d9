// Package service provides the business logic of the sandbox record service,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned for a missing, unknown or expired token.
	ErrUnauthorized = errors.New("invalid or expired token")
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidInput is returned when a payload fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	CreateUser(ctx context.Context, u models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateSession(ctx context.Context, s models.Session) error
	SessionByToken(ctx context.Context, token string) (*models.Session, error)
}

// Service implements account registration, login and token checks.
type Service struct {
	repo     AuthRepository
	ttl      time.Duration
	role     string
	cost     int
	now      func() time.Time
	validate *validator.Validate
}

// AuthOption customizes a Service.
type AuthOption func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AuthOption {
	return func(s *Service) { s.now = now }
}

// WithHashCost sets the bcrypt cost.
func WithHashCost(cost int) AuthOption {
	return func(s *Service) { s.cost = cost }
}

// WithRole sets the role given to accounts registered without one.
func WithRole(role string) AuthOption {
	return func(s *Service) { s.role = role }
}

// NewAuthService constructs a new Service. Sessions live for ttl.
func NewAuthService(repo AuthRepository, ttl time.Duration, opts ...AuthOption) *Service {
	s := &Service{
		repo:     repo,
		ttl:      ttl,
		role:     models.DefaultRole,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		validate: validator.New(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register validates u, hashes its password and stores the account.
func (s *Service) Register(ctx context.Context, u models.NewUser) (*models.User, error) {
	if err := s.validate.Struct(u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: hash,
		Status:       u.Status,
		Role:         u.Role,
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	if user.Role == "" {
		user.Role = s.role
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials of an active account and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (models.Session, *models.User, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Session{}, nil, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, nil, err
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return models.Session{}, nil, ErrInvalidCredentials
	}
	if user.Status != models.StatusActive {
		return models.Session{}, nil, ErrInvalidCredentials
	}

	sess := models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return models.Session{}, nil, err
	}
	return sess, user, nil
}

// Authorize returns the user owning a live session token.
func (s *Service) Authorize(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	sess, err := s.repo.SessionByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if sess.Expired(s.now()) {
		return "", ErrUnauthorized
	}
	return sess.UserID, nil
}
