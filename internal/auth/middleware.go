package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/repository"
	apperrors "github.com/spec-kit/order-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User   *domain.User
	Claims *Claims
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens  *TokenManager
	users   repository.UserRepository
	revoked RevocationStore
}

// NewAuthMiddleware constructs middleware. revoked may be nil when revocation is disabled.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, revoked RevocationStore) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, revoked: revoked}
}

// Handle enforces access-token authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	return m.authenticate(c, domain.TokenTypeAccess)
}

// HandleRefresh authenticates with a refresh token instead.
func (m *AuthMiddleware) HandleRefresh(c *fiber.Ctx) error {
	return m.authenticate(c, domain.TokenTypeRefresh)
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx, tokenType domain.TokenType) error {
	raw, err := BearerToken(c)
	if err != nil {
		return err
	}

	claims, err := m.tokens.ParseToken(raw, tokenType)
	if err != nil {
		return apperrors.NewUnauthorized("Enter valid access token")
	}

	if err := m.checkRevoked(c, claims); err != nil {
		return err
	}

	user, err := m.users.GetByUsername(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("User", nil)
		}
		return apperrors.NewInternalError(err)
	}
	if !user.IsActive {
		return apperrors.NewForbidden("user account is inactive")
	}

	c.Locals(principalKey, &Principal{User: user, Claims: claims})
	return c.Next()
}

// checkRevoked rejects tokens whose id or session was revoked by logout.
func (m *AuthMiddleware) checkRevoked(c *fiber.Ctx, claims *Claims) error {
	if m.revoked == nil {
		return nil
	}
	for _, id := range []string{claims.ID, claims.Session} {
		if id == "" {
			continue
		}
		revoked, err := m.revoked.IsRevoked(c.UserContext(), id)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if revoked {
			return apperrors.WithCause(apperrors.NewUnauthorized("token has been revoked"), ErrTokenRevoked)
		}
	}
	return nil
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// CurrentUser returns the authenticated user or an Unauthorized error.
func CurrentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}
