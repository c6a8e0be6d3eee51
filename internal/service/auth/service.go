package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/authstack/api/internal/domain"
	"github.com/authstack/api/internal/repository"
	"github.com/authstack/api/pkg/crypto"
	"github.com/authstack/api/pkg/token"
)

// Service handles registration, login, and bearer-token authorization.
type Service struct {
	users      repository.UserRepository
	tokens     token.Manager
	logger     *slog.Logger
	bcryptCost int
}

// New constructs a Service.
func New(users repository.UserRepository, tokens token.Manager, logger *slog.Logger, bcryptCost int) Service {
	return Service{users: users, tokens: tokens, logger: logger, bcryptCost: bcryptCost}
}

// RegisterInput carries the registration request fields.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates input and persists a new user. No token is issued at
// registration time.
//
// Fields are checked for presence in fixed order: name, email, password,
// password confirmation.
func (s Service) Register(ctx context.Context, in RegisterInput) error {
	required := []struct {
		label string
		value string
	}{
		{"Name", in.Name},
		{"Email", in.Email},
		{"Password", in.Password},
		{"Password confirmation", in.ConfirmPassword},
	}
	for _, f := range required {
		if f.value == "" {
			return &domain.MissingFieldError{Label: f.label}
		}
	}
	if in.Password != in.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}

	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := crypto.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// The unique index closes the race between the lookup above and
		// this insert.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.ErrEmailTaken
		}
		return err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return nil
}

// Login verifies credentials and returns the user together with a signed
// token carrying the user id.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" {
		return nil, "", &domain.MissingFieldError{Label: "Email"}
	}
	if password == "" {
		return nil, "", &domain.MissingFieldError{Label: "Password"}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", domain.ErrInvalidPassword
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, signed, nil
}

// Authorize validates a bearer token and returns its claims. It never
// touches the user store; fetching the user is the caller's concern.
func (s Service) Authorize(raw string) (*token.Claims, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, token.ErrInvalid
	}
	return s.tokens.Verify(trimmed)
}
