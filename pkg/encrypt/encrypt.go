package encrypt

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = bcrypt.DefaultCost

var (
	// ErrWeakPassword password does not meet strength requirements
	ErrWeakPassword = errors.New("password does not meet strength requirements")
	// ErrPasswordMismatch password does not match the stored hash
	ErrPasswordMismatch = errors.New("password does not match")
)

// ValidatePasswordStrength validate password rules:
// 8 to 20 characters with at least one uppercase letter, one lowercase
// letter, one digit and one special character
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 20 {
		return fmt.Errorf("password must be no longer than 20 characters")
	}

	if matched, _ := regexp.MatchString(`[A-Z]`, password); !matched {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if matched, _ := regexp.MatchString(`[a-z]`, password); !matched {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if matched, _ := regexp.MatchString(`[0-9]`, password); !matched {
		return fmt.Errorf("password must contain at least one digit")
	}

	if matched, _ := regexp.MatchString(`[!@#\$%\^&\*\?]`, password); !matched {
		return fmt.Errorf("password must contain at least one special character (!@#$%%^&*?)")
	}

	return nil
}

// HashPassword validate then bcrypt the password
func HashPassword(password string) (string, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return "", fmt.Errorf("weak password: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedPassword), nil
}

// CheckPassword verify a password against its stored hash
func CheckPassword(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
