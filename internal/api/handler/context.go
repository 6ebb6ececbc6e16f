package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// identity is the request-scoped identity context attached by the Auth
// middleware. It lives for one request and is never persisted.
type identity struct {
	UserID string
	Email  string
	Role   string
}

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a non-empty role and user id prove the
// middleware ran on this route.
func ctxIdentity(c echo.Context) (identity, error) {
	id := identity{}
	id.Role, _ = c.Get("role").(string)
	id.UserID, _ = c.Get("user_id").(string)
	id.Email, _ = c.Get("email").(string)

	if id.Role == "" || id.UserID == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
