package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds the bcrypt digest; the plaintext is never persisted.
// UpdatedAt stays nil until the profile is changed for the first time.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
