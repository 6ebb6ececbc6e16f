// Package password wraps bcrypt hashing behind a small Hasher type with a
// configured work factor. Every digest embeds its own random salt, so two
// hashes of the same input never match as byte strings.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// Hasher produces and verifies bcrypt digests at a fixed cost.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// valid bcrypt range fall back to bcrypt.DefaultCost. The dummy digest is
// precomputed at the same cost so DummyVerify burns the same CPU budget as a
// real verification.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("identity-api.dummy.credential"), cost)
	if err != nil {
		// only reachable with an out-of-range cost, which is excluded above
		panic("password: precompute dummy digest: " + err.Error())
	}
	return &Hasher{cost: cost, dummy: dummy}
}

// Hash generates a salted bcrypt digest of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is a
// plain mismatch, never an error or panic. The underlying comparison is
// constant-time with respect to the digest contents.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// DummyVerify performs a full-cost comparison that always fails. Login calls
// it when no account matches the submitted key, so the response latency does
// not reveal whether the account exists.
func (h *Hasher) DummyVerify() {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte("not.the.dummy.credential"))
}
