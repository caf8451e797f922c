package domain

import (
	"errors"
	"time"
)

// ErrAccessDenied the caller does not own the record they try to change
var ErrAccessDenied = errors.New("access denied")

// Testimonial a user's review of the platform itself
type Testimonial struct {
	ID       uint `gorm:"primaryKey"`
	UserID   int64
	Review   string
	PostedAt time.Time
}

// Question Q&A forum entry, Answer stays empty until a manager replies
type Question struct {
	ID        uint `gorm:"primaryKey"`
	UserID    int64
	Question  string
	Answer    string
	CreatedAt time.Time
}

// EventCategory grouping for events, names are unique
type EventCategory struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

// Event a bookable event offering
type Event struct {
	ID         uint `gorm:"primaryKey"`
	CategoryID uint
	Name       string
	Details    string
	Price      int64
}

// EventIdea a themed suggestion attached to an event
type EventIdea struct {
	ID        uint `gorm:"primaryKey"`
	EventID   uint
	Idea      string
	City      string
	Details   string
	CreatedAt time.Time
}

// EventImage gallery entry, Image is the object key in MinIO
type EventImage struct {
	ID      uint `gorm:"primaryKey"`
	EventID uint
	Image   string
	Title   string
}

// EventReview a user's review of one event
type EventReview struct {
	ID       uint `gorm:"primaryKey"`
	EventID  uint
	UserID   int64
	Review   string
	Rating   int
	PostedAt time.Time
}

// EventFilter list filter for events
type EventFilter struct {
	CategoryID *uint
	Search     string
}

// IdeaFilter list filter for event ideas
type IdeaFilter struct {
	EventID uint
	City    string
	Idea    string
}
