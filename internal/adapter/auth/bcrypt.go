package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptVerifier implements port.CredentialVerifier with bcrypt. The salt is
// embedded in the hash; no plaintext or derived state is retained.
type BcryptVerifier struct {
	cost int
}

func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: bcrypt.DefaultCost}
}

// NewBcryptVerifierWithCost exists for tests that want a cheap cost factor.
func NewBcryptVerifierWithCost(cost int) *BcryptVerifier {
	return &BcryptVerifier{cost: cost}
}

func (v *BcryptVerifier) Hash(password []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(password, v.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

func (v *BcryptVerifier) Verify(password []byte, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), password)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("bcrypt compare: %w", err)
}
