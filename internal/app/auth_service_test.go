package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/store"
)

type userRepoStub struct {
	store.UserRepository

	byEmail map[string]*domain.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{byEmail: map[string]*domain.User{}}
}

func (s *userRepoStub) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	if _, ok := s.byEmail[user.Email]; ok {
		return "", store.ErrDuplicateEmail
	}
	s.byEmail[user.Email] = user
	return user.ID, nil
}

func (s *userRepoStub) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

const testSecret = "test-secret"

func newTestAuthService() (*AuthService, *userRepoStub) {
	users := newUserRepoStub()
	return NewAuthService(users, []byte(testSecret), time.Hour), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Aminata Sarr",
		Email:    "aminata@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token from registration")
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password must not be stored in clear text")
	}

	loggedIn, token, err := svc.Login(context.Background(), LoginInput{
		Email:    "aminata@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected login to return the registered user, got %q", loggedIn.ID)
	}

	// The token must carry the user id in the sub claim.
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not validate: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub claim %q, got %v", user.ID, claims["sub"])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ousmane Fall", Email: "ousmane@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "ousmane@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmailIndistinguishableFromWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, users := newTestAuthService()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@example.com", Password: "password123"}},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "password123"}},
		{"short password", RegisterInput{Name: "A", Email: "a@example.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tt.input)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
	if len(users.byEmail) != 0 {
		t.Fatal("expected no users persisted for invalid input")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	input := RegisterInput{Name: "A", Email: "dup@example.com", Password: "password123"}
	if _, _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, _, err := svc.Register(context.Background(), input)
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}
