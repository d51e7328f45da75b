package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/order-service/internal/auth"
	"github.com/spec-kit/order-service/internal/config"
	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/repository"
	apperrors "github.com/spec-kit/order-service/pkg/util/errorutil"
)

// AuthService coordinates signup, login, refresh and logout flows.
type AuthService struct {
	users            repository.UserRepository
	revocations      auth.RevocationStore
	tokenMgr         *auth.TokenManager
	bcryptCost       int
	allowStaffSignup bool
}

// AuthDependencies encapsulates requirements for auth service. Revocations may be nil.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.RevocationStore
}

// SignupInput carries the signup payload.
type SignupInput struct {
	Username string
	Email    string
	Password string
	IsActive *bool
	IsStaff  bool
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:            deps.UserRepo,
		revocations:      deps.Revocations,
		tokenMgr:         auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLMinutes),
		bcryptCost:       cfg.Auth.BcryptCost,
		allowStaffSignup: cfg.Auth.AllowStaffSignup,
	}
}

// Signup creates a new account. The staff flag is only honored when staff signup is enabled.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" {
		details := map[string]any{}
		if username == "" {
			details["username"] = "field required"
		}
		if email == "" {
			details["email"] = "field required"
		}
		return nil, apperrors.NewValidationError("validation failed", details)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsStaff:      input.IsStaff && s.allowStaffSignup,
		IsActive:     true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("User with the username or email already exists", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// Login authenticates by username or email and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*domain.User, domain.TokenPair, error) {
	login := strings.TrimSpace(usernameOrEmail)
	user, err := s.users.GetByUsernameOrEmail(ctx, login)
	if errors.Is(err, repository.ErrNotFound) && login != strings.ToLower(login) {
		// emails are stored lowercased
		user, err = s.users.GetByUsernameOrEmail(ctx, strings.ToLower(login))
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.TokenPair{}, apperrors.NewUnauthorized("Invalid username or password")
		}
		return nil, domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.TokenPair{}, apperrors.NewUnauthorized("Invalid username or password")
	}
	if !user.IsActive {
		return nil, domain.TokenPair{}, apperrors.NewForbidden("user account is inactive")
	}

	pair, err := s.tokenMgr.IssuePair(user.Username)
	if err != nil {
		return nil, domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	return user, pair, nil
}

// Refresh issues a new access token in the session of the presented refresh token.
func (s *AuthService) Refresh(_ context.Context, user *domain.User, claims *auth.Claims) (domain.Token, error) {
	session := ""
	if claims != nil {
		session = claims.Session
	}
	token, err := s.tokenMgr.GenerateSessionAccessToken(user.Username, session)
	if err != nil {
		return domain.Token{}, apperrors.NewInternalError(err)
	}
	return token, nil
}

// Logout revokes the presented token and its whole session, so the refresh
// token from the same login stops working too. It reports false when
// revocation is disabled.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) (bool, error) {
	if s.revocations == nil || claims == nil {
		return false, nil
	}
	if claims.ID != "" && claims.ExpiresAt != nil {
		if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return false, apperrors.NewInternalError(err)
		}
	}
	if claims.Session != "" {
		if err := s.revocations.Revoke(ctx, claims.Session, s.tokenMgr.SessionDeadline()); err != nil {
			return false, apperrors.NewInternalError(err)
		}
	}
	return true, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
