package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
	"github.com/fullstacklabs/identity-api/internal/pkg/token"
	"github.com/fullstacklabs/identity-api/pkg/logger"
)

type stubUserStore struct {
	users map[string]*domain.User
}

func (s *stubUserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func newGate(t *testing.T) (*token.Codec, *stubUserStore, echo.MiddlewareFunc) {
	t.Helper()
	logger.Init(logger.Options{Level: "error"})
	codec := token.NewCodec([]byte("secret"), time.Hour)
	store := &stubUserStore{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "alice@example.com", Role: domain.RoleAdmin},
	}}
	return codec, store, Auth(codec, store, logger.Get())
}

func runGate(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuth_ValidToken(t *testing.T) {
	codec, _, mw := newGate(t)
	signed, err := codec.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get("email") != "alice@example.com" {
			t.Fatalf("email not set")
		}
		if c.Get("role") != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, mw := newGate(t)
	rec, called := runGate(t, mw, "")
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_SchemeIsCaseSensitive(t *testing.T) {
	codec, _, mw := newGate(t)
	signed, err := codec.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	for _, header := range []string{
		"bearer " + signed,
		"BEARER " + signed,
		"Token " + signed,
		"Bearer  " + signed, // double space
		"Bearer",
	} {
		rec, called := runGate(t, mw, header)
		if called {
			t.Fatalf("header %q: next must not be called", header)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuth_BadToken(t *testing.T) {
	_, _, mw := newGate(t)

	otherCodec := token.NewCodec([]byte("other-secret"), time.Hour)
	wrongSecret, err := otherCodec.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	for _, raw := range []string{"not-a-token", wrongSecret} {
		rec, called := runGate(t, mw, "Bearer "+raw)
		if called {
			t.Fatalf("token %q: next must not be called", raw)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %d", raw, rec.Code)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	logger.Init(logger.Options{Level: "error"})
	expiredCodec := token.NewCodec([]byte("secret"), time.Nanosecond)
	signed, err := expiredCodec.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, _, mw := newGate(t)
	rec, called := runGate(t, mw, "Bearer "+signed)
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_DeletedSubject(t *testing.T) {
	codec, store, mw := newGate(t)
	signed, err := codec.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	delete(store.users, "user-1")

	rec, called := runGate(t, mw, "Bearer "+signed)
	if called {
		t.Fatalf("next must not be called for a deleted account")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
