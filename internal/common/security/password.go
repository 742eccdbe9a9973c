package security

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CheckPassword compares a submitted password against the stored one in
// constant time. The comparison takes the same time regardless of where the
// first differing byte occurs.
func CheckPassword(submitted, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}

// HashPassword produces a bcrypt hash for hashed-at-rest user tables.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies a submitted password against a stored bcrypt
// hash. Used instead of CheckPassword when AUTH_BCRYPT_PASSWORDS is set.
func CheckPasswordHash(submitted, storedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(submitted))
	return err == nil
}
