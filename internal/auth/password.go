package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades login latency for hash strength; 12 keeps a single
// verify under ~300ms on commodity hardware.
const bcryptCost = 12

// MinPasswordLength is the shortest password SignUp accepts
const MinPasswordLength = 8

var (
	// ErrPasswordTooShort is returned when a password is under MinPasswordLength
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	// ErrPasswordTooWeak is returned when a password mixes too few character classes
	ErrPasswordTooWeak = errors.New("password needs at least three of: uppercase, lowercase, digits, symbols")
)

// HashPassword derives a bcrypt hash for storage on the user row
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword enforces the sign-up password policy: minimum length and
// at least three of the four character classes.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	classes := map[string]bool{}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			classes["upper"] = true
		case unicode.IsLower(r):
			classes["lower"] = true
		case unicode.IsDigit(r):
			classes["digit"] = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			classes["symbol"] = true
		}
	}

	if len(classes) < 3 {
		return ErrPasswordTooWeak
	}
	return nil
}
