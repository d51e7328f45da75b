package dto

import "time"

// SignUpRequest payload for new accounts.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,max=25"`
	Email    string `json:"email" validate:"required,email,max=250"`
	Password string `json:"password" validate:"required,min=4"`
	IsActive *bool  `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
	IsActive bool   `json:"is_active"`
}

// TokenResponse returns a refreshed access token.
type TokenResponse struct {
	AccessToken string    `json:"access"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LoginResponse returns both tokens.
type LoginResponse struct {
	AccessToken  string    `json:"access"`
	RefreshToken string    `json:"refresh"`
	ExpiresAt    time.Time `json:"expires_at"`
}
