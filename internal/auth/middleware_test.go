package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/repository/memory"
	apperrors "github.com/spec-kit/order-service/pkg/util/errorutil"
)

type authFixture struct {
	app     *fiber.App
	tokens  *TokenManager
	store   *memory.Store
	lastErr error
}

func newAuthFixture(t *testing.T, revoked RevocationStore) *authFixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com", IsActive: true}))
	require.NoError(t, store.Users().Create(ctx, &domain.User{Username: "boss", Email: "boss@example.com", IsActive: true, IsStaff: true}))
	require.NoError(t, store.Users().Create(ctx, &domain.User{Username: "ghost", Email: "ghost@example.com", IsActive: false}))

	tokens := NewTokenManager("secret", 15, 60)
	mw := NewAuthMiddleware(tokens, store.Users(), revoked)
	f := &authFixture{tokens: tokens, store: store}

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		f.lastErr = err
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.SendStatus(fe.Code)
		}
		return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
	}})
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}
		return c.SendString(user.Username)
	})
	app.Get("/staff", mw.Handle, RequireStaff(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/refresh", mw.HandleRefresh, func(c *fiber.Ctx) error { return c.SendString("ok") })

	f.app = app
	return f
}

func (f *authFixture) do(t *testing.T, path, header string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func (f *authFixture) bearer(t *testing.T, username string) string {
	t.Helper()
	token, err := f.tokens.GenerateAccessToken(username)
	require.NoError(t, err)
	return "Bearer " + token.Value
}

func TestMiddlewareStatuses(t *testing.T) {
	f := newAuthFixture(t, nil)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", ""))
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "Token abc"))
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "Bearer "))
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "Bearer garbage"))
	assert.Equal(t, http.StatusOK, f.do(t, "/me", f.bearer(t, "alice")))
	assert.Equal(t, http.StatusNotFound, f.do(t, "/me", f.bearer(t, "nobody")))
	assert.Equal(t, http.StatusForbidden, f.do(t, "/me", f.bearer(t, "ghost")))
}

func TestMiddlewareStaffGate(t *testing.T) {
	f := newAuthFixture(t, nil)

	assert.Equal(t, http.StatusForbidden, f.do(t, "/staff", f.bearer(t, "alice")))
	assert.Equal(t, http.StatusOK, f.do(t, "/staff", f.bearer(t, "boss")))
}

func TestMiddlewareTokenTypes(t *testing.T) {
	f := newAuthFixture(t, nil)
	pair, err := f.tokens.IssuePair("alice")
	require.NoError(t, err)
	refresh := pair.Refresh

	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "Bearer "+refresh.Value))
	assert.Equal(t, http.StatusOK, f.do(t, "/refresh", "Bearer "+refresh.Value))
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/refresh", f.bearer(t, "alice")))
}

func TestMiddlewareRejectsRevokedTokens(t *testing.T) {
	store, _ := newTestRevocationStore(t)
	f := newAuthFixture(t, store)

	token, err := f.tokens.GenerateAccessToken("alice")
	require.NoError(t, err)
	header := "Bearer " + token.Value

	assert.Equal(t, http.StatusOK, f.do(t, "/me", header))
	require.NoError(t, store.Revoke(context.Background(), token.ID, time.Now().Add(time.Minute)))
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", header))
	assert.ErrorIs(t, f.lastErr, ErrTokenRevoked)
}

func TestMiddlewareRejectsRevokedSessions(t *testing.T) {
	store, _ := newTestRevocationStore(t)
	f := newAuthFixture(t, store)

	pair, err := f.tokens.IssuePair("alice")
	require.NoError(t, err)
	other, err := f.tokens.IssuePair("alice")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, f.do(t, "/refresh", "Bearer "+pair.Refresh.Value))
	require.NoError(t, store.Revoke(context.Background(), pair.Access.Session, f.tokens.SessionDeadline()))

	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "Bearer "+pair.Access.Value))
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/refresh", "Bearer "+pair.Refresh.Value))
	assert.ErrorIs(t, f.lastErr, ErrTokenRevoked)
	assert.Equal(t, http.StatusOK, f.do(t, "/refresh", "Bearer "+other.Refresh.Value))
}
