package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and checks passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher; cost <= 0 means bcrypt.DefaultCost.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return PasswordHasher{cost: cost}
}

// Hash returns a bcrypt hash of the plain-text password.
func (h PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check compares a bcrypt hash against the plain-text candidate.
// A malformed hash is reported as a mismatch.
func (h PasswordHasher) Check(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrHashTooShort):
		return false, nil
	default:
		return false, err
	}
}
