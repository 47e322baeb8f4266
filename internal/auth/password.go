package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the plaintext with a random salt; hashing the same
// input twice yields different outputs.
func HashPassword(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
}

// VerifyPassword reports whether the plaintext matches the hash. A mismatch
// is a false return, never an error.
func VerifyPassword(plaintext string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext)) == nil
}
