// Package crypto provides the credential hashing capability for the bank.
// Digests are bcrypt hashes; the cost is configurable so tests can use a
// cheap setting.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Bcrypt{cost: cost}
}

// Hash produces an opaque digest of the plaintext secret.
func (b Bcrypt) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether the plaintext secret matches the stored digest.
func (b Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
