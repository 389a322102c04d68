package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/agrimart/agrimart/internal/auth/domain"
	"github.com/agrimart/agrimart/internal/auth/session"
	"github.com/agrimart/agrimart/internal/config"
)

type fakeAuthService struct {
	loginCalls   int
	authSession  *authdomain.Session
	authErr      error
	logoutTokens []string
}

func (f *fakeAuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.LoginResult, error) {
	_ = ctx
	return &authdomain.LoginResult{
		User:      &authdomain.User{ID: snowflake.ID(10), Username: req.Username, Email: req.Email},
		RawToken:  "register-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	f.loginCalls++
	_ = ctx
	if req.Password != "secret" {
		return nil, authdomain.ErrInvalidCredentials
	}
	return &authdomain.LoginResult{
		User:      &authdomain.User{ID: snowflake.ID(10), Username: req.Username, Email: "a@example.com"},
		RawToken:  "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	_ = ctx
	f.logoutTokens = append(f.logoutTokens, rawToken)
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	_ = ctx
	_ = rawToken
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.authSession, nil
}

func (f *fakeAuthService) GetUser(ctx context.Context, id string) (*authdomain.UserResponse, error) {
	_ = ctx
	return &authdomain.UserResponse{ID: id, Username: "alice", Email: "a@example.com"}, nil
}

func newAuthTestServer(authsvc authdomain.Service) (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	srv := &Server{
		authsvc:  authsvc,
		sessions: session.NewManager(config.Config{}),
	}
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	return srv, router
}

func TestLoginSetsSessionCookie(t *testing.T) {
	authsvc := &fakeAuthService{}
	srv, router := newAuthTestServer(authsvc)
	router.POST("/login", srv.Login)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"alice","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if authsvc.loginCalls != 1 {
		t.Fatalf("expected 1 login call, got %d", authsvc.loginCalls)
	}
	cookie := resp.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, session.DefaultCookieName+"=session-token") {
		t.Fatalf("expected session cookie, got %q", cookie)
	}
}

func TestLoginWrongPasswordReturns401(t *testing.T) {
	srv, router := newAuthTestServer(&fakeAuthService{})
	router.POST("/login", srv.Login)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"alice","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestMeWithoutSessionReturns401(t *testing.T) {
	srv, router := newAuthTestServer(&fakeAuthService{})
	router.GET("/me", srv.AuthRequired(), srv.Me)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestMeWithExpiredSessionReturns401(t *testing.T) {
	authsvc := &fakeAuthService{authErr: authdomain.ErrSessionExpired}
	srv, router := newAuthTestServer(authsvc)
	router.GET("/me", srv.AuthRequired(), srv.Me)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "stale"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestMeReturnsCurrentUser(t *testing.T) {
	authsvc := &fakeAuthService{
		authSession: &authdomain.Session{UserID: snowflake.ID(10)},
	}
	srv, router := newAuthTestServer(authsvc)
	router.GET("/me", srv.AuthRequired(), srv.Me)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "session-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"username":"alice"`) {
		t.Fatalf("expected user payload, got %s", resp.Body.String())
	}
}

func TestLogoutRevokesSessionAndClearsCookie(t *testing.T) {
	authsvc := &fakeAuthService{}
	srv, router := newAuthTestServer(authsvc)
	router.POST("/logout", srv.Logout)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "session-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if len(authsvc.logoutTokens) != 1 || authsvc.logoutTokens[0] != "session-token" {
		t.Fatalf("expected session-token to be revoked, got %v", authsvc.logoutTokens)
	}
	cookie := resp.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, session.DefaultCookieName+"=;") && !strings.Contains(cookie, session.DefaultCookieName+"=\"\"") {
		t.Fatalf("expected cleared cookie, got %q", cookie)
	}
}
