package utils

import (
	"strings" // Hash prefix inspection

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// HashPassword hashes a plaintext password with bcrypt. The produced hash
// embeds the algorithm identifier and cost ($2a$10$...), so a future
// algorithm can be introduced without a schema change.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword verifies a plaintext password against a stored hash
func CheckPassword(password, hash string) bool {
	// Only bcrypt hashes are produced today; unknown prefixes fail closed
	if !strings.HasPrefix(hash, "$2") {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
