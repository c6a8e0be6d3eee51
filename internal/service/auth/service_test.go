package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/authstack/api/internal/domain"
	"github.com/authstack/api/internal/repository"
	"github.com/authstack/api/pkg/crypto"
	"github.com/authstack/api/pkg/token"
)

const testBcryptCost = 4

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type userRepoMock struct {
	createFunc     func(ctx context.Context, user *domain.User) error
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	getByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
}

func (m *userRepoMock) CreateUser(ctx context.Context, user *domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *userRepoMock) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *userRepoMock) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func newService(repo *userRepoMock) Service {
	return New(repo, token.NewManager("fixture-secret", 0), newLogger(), testBcryptCost)
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:            "Ann",
		Email:           "ann@x.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	var created *domain.User
	repo := &userRepoMock{
		createFunc: func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	svc := newService(repo)

	if err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatalf("expected user to be persisted")
	}
	if created.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if string(created.PasswordHash) == "secret123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := crypto.ComparePassword(created.PasswordHash, "secret123"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterMissingFieldOrder(t *testing.T) {
	cases := []struct {
		name  string
		in    RegisterInput
		label string
	}{
		{"name first", RegisterInput{}, "Name"},
		{"email second", RegisterInput{Name: "Ann"}, "Email"},
		{"password third", RegisterInput{Name: "Ann", Email: "ann@x.com"}, "Password"},
		{"confirmation last", RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret123"}, "Password confirmation"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &userRepoMock{
				createFunc: func(context.Context, *domain.User) error {
					t.Fatalf("create must not be called")
					return nil
				},
			}
			err := newService(repo).Register(context.Background(), tc.in)
			var missing *domain.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.Label != tc.label {
				t.Fatalf("expected label %q, got %q", tc.label, missing.Label)
			}
		})
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	repo := &userRepoMock{
		createFunc: func(context.Context, *domain.User) error {
			t.Fatalf("create must not be called")
			return nil
		},
	}
	in := validInput()
	in.ConfirmPassword = "different"
	if err := newService(repo).Register(context.Background(), in); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "existing", Email: email}, nil
		},
		createFunc: func(context.Context, *domain.User) error {
			t.Fatalf("create must not be called")
			return nil
		},
	}
	if err := newService(repo).Register(context.Background(), validInput()); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterDuplicateFromStore(t *testing.T) {
	// Lookup misses but the insert hits the unique index: the concurrent
	// registration race surfaces as the same EmailTaken outcome.
	repo := &userRepoMock{
		createFunc: func(context.Context, *domain.User) error {
			return repository.ErrDuplicateEmail
		},
	}
	if err := newService(repo).Register(context.Background(), validInput()); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterStoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &userRepoMock{
		createFunc: func(context.Context, *domain.User) error {
			return storeErr
		},
	}
	if err := newService(repo).Register(context.Background(), validInput()); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
}

func TestLoginTokenCarriesUserID(t *testing.T) {
	hash, err := crypto.HashPassword("secret123", testBcryptCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Name: "Ann", Email: email, PasswordHash: hash}, nil
		},
	}
	tokens := token.NewManager("fixture-secret", 0)
	svc := New(repo, tokens, newLogger(), testBcryptCost)

	user, signed, err := svc.Login(context.Background(), "ann@x.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("token carries wrong user id: %q", claims.UserID)
	}
}

func TestLoginMissingFieldOrder(t *testing.T) {
	svc := newService(&userRepoMock{})

	_, _, err := svc.Login(context.Background(), "", "")
	var missing *domain.MissingFieldError
	if !errors.As(err, &missing) || missing.Label != "Email" {
		t.Fatalf("expected missing Email, got %v", err)
	}

	_, _, err = svc.Login(context.Background(), "ann@x.com", "")
	if !errors.As(err, &missing) || missing.Label != "Password" {
		t.Fatalf("expected missing Password, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newService(&userRepoMock{})
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "secret123"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := crypto.HashPassword("secret123", testBcryptCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	_, signed, err := newService(repo).Login(context.Background(), "ann@x.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if signed != "" {
		t.Fatalf("no token must be issued on mismatch")
	}
}

func TestAuthorize(t *testing.T) {
	tokens := token.NewManager("fixture-secret", 0)
	svc := New(&userRepoMock{}, tokens, newLogger(), testBcryptCost)

	signed, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := svc.Authorize(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.Authorize(""); !errors.Is(err, token.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty token, got %v", err)
	}
	if _, err := svc.Authorize(signed + "tampered"); !errors.Is(err, token.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for tampered token, got %v", err)
	}
}
