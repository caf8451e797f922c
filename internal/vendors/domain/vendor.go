package domain

import (
	"errors"
	"time"
)

// ErrVendorNotApproved the registration has not been approved yet
var ErrVendorNotApproved = errors.New("vendor not approved")

// ErrAccessDenied the caller does not own the registration
var ErrAccessDenied = errors.New("access denied")

// ErrAlreadyRegistered a user holds at most one registration
var ErrAlreadyRegistered = errors.New("user already has a vendor registration")

// VendorCategory a service category vendors register under
type VendorCategory struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

// VendorRegistration a user's vendor listing. New registrations start
// unapproved and stay hidden from public listings until an event
// manager approves them.
type VendorRegistration struct {
	ID         uint `gorm:"primaryKey"`
	UserID     int64
	CategoryID uint
	Details    string
	IsApproved bool
	CreatedAt  time.Time
}

// VendorImage an object key in the image store belonging to a vendor
type VendorImage struct {
	ID       uint `gorm:"primaryKey"`
	VendorID uint
	Image    string
	Title    string
	Details  string
}

// VendorFilter narrows public vendor listings
type VendorFilter struct {
	CategoryID *uint
	Search     string
}
