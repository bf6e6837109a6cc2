// Package users stores resource owners and verifies their credentials for
// the password grant. The token pipeline only sees the Authenticator; user
// records never leave this package.
package users

import "golang.org/x/crypto/bcrypt"

// User is one resource owner.
type User struct {
	ID           string `json:"id,omitempty" yaml:"id"`
	Username     string `json:"username,omitempty" yaml:"username"`
	Email        string `json:"email,omitempty" yaml:"email,omitempty"`
	PasswordHash string `json:"-" yaml:"password_hash"` // never serialize outward
	Disabled     bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies a plaintext password against a stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
