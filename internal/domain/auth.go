package domain

import "time"

// TokenType differentiates short-lived access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Token represents an issued JWT and its metadata.
type Token struct {
	Value     string
	ID        string
	Session   string
	Type      TokenType
	Subject   string
	ExpiresAt time.Time
}

// TokenPair is returned on login.
type TokenPair struct {
	Access  Token
	Refresh Token
}
