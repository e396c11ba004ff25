// Package credentials hashes and verifies account passwords with bcrypt.
package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the cost the account records have always been hashed with.
const DefaultCost = 10

// ErrHashFailed wraps any failure to produce a hash.
var ErrHashFailed = errors.New("password hashing failed")

// Hasher turns passwords into salted, cost-factored hashes and checks them.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost, or DefaultCost when cost is outside
// bcrypt's accepted range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashFailed, err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash. The comparison is done by
// bcrypt in constant time; a malformed hash simply does not match.
func (h *Hasher) Verify(password []byte, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}
