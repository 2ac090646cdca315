package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"petadopt-backend/internal/auth"
	"petadopt-backend/internal/models"
	"petadopt-backend/internal/store/memory"
)

func newUserService() *UserService {
	users := memory.NewUserStore()
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	return NewUserService(users, tokens)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "pw1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if reg.Token == "" {
		t.Error("expected register to return a token")
	}
	if reg.User.Name != "A" || reg.User.Email != "a@x.com" {
		t.Errorf("unexpected public user: %+v", reg.User)
	}
	if reg.User.ID == "" {
		t.Error("expected a generated user id")
	}

	login, err := svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("login returned user %s, registered %s", login.User.ID, reg.User.ID)
	}
	if login.Token == "" {
		t.Error("expected login to return a token")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Register(ctx, models.RegisterRequest{Name: "B", Email: "a@x.com", Password: "pw2"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newUserService()

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@x.com", Password: "pw"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGet_UnknownUser(t *testing.T) {
	svc := newUserService()

	_, err := svc.Get(context.Background(), "no-such-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
