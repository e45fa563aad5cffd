package domain

import "time"

// User is an account that owns campaigns. PasswordHash is a bcrypt hash and
// never leaves the persistence and auth layers.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
