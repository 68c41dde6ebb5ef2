// Package hasher wraps bcrypt behind a small interface so services can be
// tested without paying the hashing cost.
package hasher

import "golang.org/x/crypto/bcrypt"

// PasswordHasher turns plaintext credentials into opaque hashes and checks
// them on login.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hash string) bool
}

// Bcrypt is the production PasswordHasher.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a Bcrypt hasher. Cost values outside bcrypt's valid range
// fall back to the library default.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b *Bcrypt) Compare(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
