// Package token implements the signed-token codec used for stateless
// authentication. Tokens are JWTs signed with HS256; the codec is the only
// component that touches the signing secret.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, distinguishable with errors.Is. The auth gate logs
// the precise reason but reports a generic 401 to the client.
var (
	ErrMalformed    = errors.New("malformed token")
	ErrBadSignature = errors.New("invalid token signature")
	ErrExpired      = errors.New("token expired")
)

const defaultTTL = 24 * time.Hour

// Claims is the claim set embedded in every issued token. Subject carries
// the user ID; Role carries the RBAC role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies tokens with a fixed secret and lifetime. It is
// safe for concurrent use; the secret is read-only after construction.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret and stamping issued tokens
// with the given lifetime. A non-positive ttl falls back to 24 hours.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: secret, ttl: ttl, now: time.Now}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue mints a signed token for the given subject and role, valid from now
// until now+ttl.
func (c *Codec) Issue(subjectID, role string) (string, error) {
	now := c.now().UTC()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates tokenString, returning its claims. Failures
// map to ErrExpired, ErrBadSignature or ErrMalformed. Only HS256 is
// accepted; any other algorithm in the header fails as a bad signature.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}
