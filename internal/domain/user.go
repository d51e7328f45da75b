package domain

import "time"

// User is an account that places orders. Staff users can read every order.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsStaff      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the public projection of a user nested in enriched orders.
type UserSummary struct {
	ID       int64
	Username string
	Email    string
}

// Summary returns the public projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}
