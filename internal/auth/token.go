package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/order-service/internal/domain"
)

var (
	// ErrWrongTokenType is returned when a refresh token is used as an access token or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")
	// ErrTokenRevoked is returned for tokens presented after logout.
	ErrTokenRevoked = errors.New("token revoked")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTLMinutes, refreshTTLMinutes int) *TokenManager {
	if accessTTLMinutes <= 0 {
		accessTTLMinutes = 15
	}
	if refreshTTLMinutes <= 0 {
		refreshTTLMinutes = 7 * 24 * 60
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshTTLMinutes) * time.Minute,
		now:        time.Now,
	}
}

// Claims describes JWT payload. The registered subject carries the username.
// Session is shared by every token minted from one login.
type Claims struct {
	Type    domain.TokenType `json:"type"`
	Session string           `json:"sid"`
	jwt.RegisteredClaims
}

// IssuePair signs an access and a refresh token bound to a new session.
func (tm *TokenManager) IssuePair(username string) (domain.TokenPair, error) {
	session := uuid.NewString()
	access, err := tm.generate(username, session, domain.TokenTypeAccess, tm.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := tm.generate(username, session, domain.TokenTypeRefresh, tm.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{Access: access, Refresh: refresh}, nil
}

// GenerateAccessToken signs a short-lived token for username in a new session.
func (tm *TokenManager) GenerateAccessToken(username string) (domain.Token, error) {
	return tm.generate(username, uuid.NewString(), domain.TokenTypeAccess, tm.accessTTL)
}

// GenerateSessionAccessToken signs an access token inside an existing session.
func (tm *TokenManager) GenerateSessionAccessToken(username, session string) (domain.Token, error) {
	if session == "" {
		session = uuid.NewString()
	}
	return tm.generate(username, session, domain.TokenTypeAccess, tm.accessTTL)
}

// SessionDeadline is the latest moment a token of a session started now or earlier can expire.
func (tm *TokenManager) SessionDeadline() time.Time {
	return tm.now().Add(tm.refreshTTL)
}

func (tm *TokenManager) generate(username, session string, tokenType domain.TokenType, ttl time.Duration) (domain.Token, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		Type:    tokenType,
		Session: session,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.Token{}, err
	}
	return domain.Token{
		Value:     tokenString,
		ID:        claims.ID,
		Session:   session,
		Type:      tokenType,
		Subject:   username,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken validates signature, expiry and type, and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string, expected domain.TokenType) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token subject missing")
	}
	if claims.Type != expected {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
