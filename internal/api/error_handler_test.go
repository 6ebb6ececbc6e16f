package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
	"github.com/fullstacklabs/identity-api/pkg/logger"
)

func TestHTTPErrorHandler_DomainMapping(t *testing.T) {
	logger.Init(logger.Options{Level: "error"})
	e := echo.New()
	handler := NewHTTPErrorHandler(logger.Get())

	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: password too weak", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{domain.ErrBookNotFound, http.StatusNotFound},
		{echo.NewHTTPError(http.StatusForbidden, "insufficient role"), http.StatusForbidden},
		{fmt.Errorf("mongo exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)
		if rec.Code != tc.code {
			t.Fatalf("error %v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_HidesInternalDetail(t *testing.T) {
	logger.Init(logger.Options{Level: "error"})
	e := echo.New()
	handler := NewHTTPErrorHandler(logger.Get())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(fmt.Errorf("dial tcp 10.0.0.5:27017: connection refused"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Fatalf("internal detail leaked to the client: %s", rec.Body.String())
	}
}
