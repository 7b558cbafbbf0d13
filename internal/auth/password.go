package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// placeholderHash is compared against when no account exists so that unknown
// emails cost about the same as wrong passwords.
var placeholderHash = sync.OnceValue(func() []byte {
	hashed, err := bcrypt.GenerateFromPassword([]byte("alliance-placeholder"), bcrypt.DefaultCost)
	if err != nil {
		return nil
	}
	return hashed
})

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
// Malformed hashes fail the comparison.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// BurnPasswordCheck spends one comparison's worth of work and always fails.
func BurnPasswordCheck(plain string) {
	_ = bcrypt.CompareHashAndPassword(placeholderHash(), []byte(plain))
}
