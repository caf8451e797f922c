package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"event_management_service/pkg/encrypt"
)

// UserStatus represents the login state of a user
type UserStatus int

const (
	// UserStatusOffLine user is logged out
	UserStatusOffLine UserStatus = iota
	// UserStatusOnLine user has an active session
	UserStatusOnLine
	// UserStatusDeleted user removed their profile
	UserStatusDeleted
)

// User platform account, event managers double as content admins
type User struct {
	ID             int64
	Email          string
	Username       string
	FirstName      string
	LastName       string
	ContactNumber  string
	ProfileImage   string // object key in MinIO, empty means default avatar
	Password       string // bcrypt hash
	IsEventManager bool
	Status         UserStatus
}

// UserSession session payload stored in Redis
type UserSession struct {
	Token        string    `json:"Token"`
	UserID       int64     `json:"UserID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsPasswordMatch verify a login attempt against the stored hash
func (u *User) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(u.Password, inputPwd)
}

// FullName display name for counterpart listings
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsExpired check whether the session has passed its expiry
func (s *UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// UserQuery join conditions used to query users
type UserQuery struct {
	ID            *int64  `db:"id"`
	Email         *string `db:"email"`
	Username      *string `db:"username"`
	ContactNumber *string `db:"contact_number"`
}

var (
	nameRe    = regexp.MustCompile(`^[A-Za-z]+$`)
	contactRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// ValidateUsername 3..30 chars, lowercase letters only, no spaces
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username too short, enter at least 3 characters")
	}
	if len(username) > 30 {
		return fmt.Errorf("username too long, enter no more than 30 characters")
	}
	if strings.Contains(username, " ") {
		return fmt.Errorf("username cannot contain spaces")
	}
	if username != strings.ToLower(username) {
		return fmt.Errorf("username must consist of lowercase characters only")
	}
	return nil
}

// ValidateName first or last name, alphabetic and no spaces
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("name is invalid, enter a valid name")
	}
	return nil
}

// ValidateContactNumber digits with optional leading plus
func ValidateContactNumber(number string) error {
	if !contactRe.MatchString(number) {
		return fmt.Errorf("contact number is invalid")
	}
	return nil
}

// Validate run all field checks on a user record
func (u *User) Validate() error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	if err := ValidateName(u.FirstName); err != nil {
		return err
	}
	if err := ValidateName(u.LastName); err != nil {
		return err
	}
	return ValidateContactNumber(u.ContactNumber)
}
