package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fullstacklabs/identity-api/internal/api/metrics"
	"github.com/fullstacklabs/identity-api/internal/core/domain"
	"github.com/fullstacklabs/identity-api/internal/core/ports"
	"github.com/fullstacklabs/identity-api/internal/pkg/token"
)

// Auth is the authentication gate: it extracts the bearer token, verifies it
// through the codec, confirms the subject still exists in the credential
// store, and attaches the identity to the request context.
//
// Every failure is a generic 401 to the client; the precise reason (missing
// header, malformed, bad signature, expired, deleted account) only reaches
// the internal log and a metrics label.
func Auth(codec *token.Codec, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			// scheme is case-sensitive: exactly "Bearer" and a single space
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" || strings.ContainsRune(raw, ' ') {
				metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				log.Debug().Err(err).Msg("bearer token rejected")
				metrics.TokenVerificationsTotal.WithLabelValues(verifyFailureLabel(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// the account may have been deleted after the token was issued
			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					log.Debug().Str("subject", claims.Subject).Msg("token subject no longer exists")
					metrics.TokenVerificationsTotal.WithLabelValues("unknown_subject").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set("user_id", user.ID)
			c.Set("email", user.Email)
			c.Set("role", user.Role)

			return next(c)
		}
	}
}

func verifyFailureLabel(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
