package model

import "time"

// User roles.  CLIENT is the default for self-registered accounts.
const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

// User mirrors the users table.  Passwords are stored only as bcrypt
// hashes; the plaintext never leaves the registration or login
// request.
type User struct {
	ID           uint64    `json:"id"`    // users.id
	Email        string    `json:"email"` // users.email (unique)
	PasswordHash string    `json:"-"`     // users.password_hash
	Name         string    `json:"name"`  // users.name
	Role         string    `json:"role"`  // users.role
	CreatedAt    time.Time `json:"-"`     // users.created_at
	UpdatedAt    time.Time `json:"-"`     // users.updated_at
}
