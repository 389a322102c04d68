package service

import (
	"context"
	"testing"

	"github.com/agrimart/agrimart/internal/auth/domain"
	"github.com/agrimart/agrimart/internal/auth/repository"
	"github.com/agrimart/agrimart/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(zap.NewNop(), repo, sessionRepo, node)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if res.RawToken == "" {
		t.Fatal("expected session token")
	}

	login, err := svc.Login(context.Background(), domain.LoginRequest{
		Username: "alice",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if login.User.ID != res.User.ID {
		t.Fatalf("expected user %v, got %v", res.User.ID, login.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "strong-password",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Username: "bob",
		Email:    "other@example.com",
		Password: "strong-password",
	})
	if err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Username: "bob2",
		Email:    "bob@example.com",
		Password: "strong-password",
	})
	if err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthenticateRevokedSession(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "strong-password",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), res.RawToken); err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}

	if err := svc.Logout(context.Background(), res.RawToken); err != nil {
		t.Fatalf("failed to logout: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), res.RawToken); err != domain.ErrSessionRevoked {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}
