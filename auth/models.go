package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The password hash never leaves the
// server: the json:"-" tag keeps it out of every response body.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
