package models

import "time"

// User roles
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User account statuses
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBanned   = "banned"
)

type User struct {
	ID           string     `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"firstName,omitempty" db:"first_name"`
	LastName     string     `json:"lastName,omitempty" db:"last_name"`
	Role         string     `json:"role" db:"role"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" db:"last_login"`
}

// UserSummary is the embedded public shape of a user (creator, assignee,
// member references). Never carries credentials.
type UserSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary returns the public embedding for this user.
func (u *User) Summary() UserSummary {
	return UserSummary{Username: u.Username, Email: u.Email}
}
