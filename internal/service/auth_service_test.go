package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/order-service/internal/auth"
	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/repository"
	"github.com/spec-kit/order-service/internal/repository/memory"
	apperrors "github.com/spec-kit/order-service/pkg/util/errorutil"
)

func TestSignupAndLogin(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: store.Users()})
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{Username: "samariddin", Email: "Sam@Example.com", Password: "samariddin7444", IsStaff: true})
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff, "staff signup disabled by default")
	assert.NotEqual(t, "samariddin7444", user.PasswordHash)

	_, err = svc.Signup(ctx, SignupInput{Username: "samariddin", Email: "x@example.com", Password: "pw"})
	assert.True(t, apperrors.IsStatus(err, http.StatusConflict))

	for _, login := range []string{"samariddin", "sam@example.com", "SAM@example.com"} {
		_, pair, err := svc.Login(ctx, login, "samariddin7444")
		require.NoError(t, err, login)
		assert.Equal(t, domain.TokenTypeAccess, pair.Access.Type)
		assert.Equal(t, domain.TokenTypeRefresh, pair.Refresh.Type)

		claims, err := svc.TokenManager().ParseToken(pair.Access.Value, domain.TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, "samariddin", claims.Subject)
	}

	_, _, err = svc.Login(ctx, "samariddin", "wrong")
	assert.True(t, apperrors.IsStatus(err, http.StatusUnauthorized))
	_, _, err = svc.Login(ctx, "nobody", "samariddin7444")
	assert.True(t, apperrors.IsStatus(err, http.StatusUnauthorized))
}

func TestSignupStaffWhenAllowed(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.AllowStaffSignup = true
	svc := NewAuthService(cfg, AuthDependencies{UserRepo: memory.NewStore().Users()})

	inactive := false
	user, err := svc.Signup(context.Background(), SignupInput{
		Username: "boss", Email: "boss@example.com", Password: "pw", IsStaff: true, IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.False(t, user.IsActive)

	_, _, err = svc.Login(context.Background(), "boss", "pw")
	assert.True(t, apperrors.IsStatus(err, http.StatusForbidden))
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()
	revocations := auth.NewRedisRevocationStore(client)

	store := memory.NewStore()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: store.Users(), Revocations: revocations})
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(pair.Access.Value, domain.TokenTypeAccess)
	require.NoError(t, err)

	revoked, err := svc.Logout(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revoked)

	isRevoked, err := revocations.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, isRevoked)
	assert.InDelta(t, 15*time.Minute.Seconds(), srv.TTL("orders:revoked:"+claims.ID).Seconds(), 5)

	sessionRevoked, err := revocations.IsRevoked(ctx, pair.Refresh.Session)
	require.NoError(t, err)
	assert.True(t, sessionRevoked, "refresh token shares the revoked session")
	assert.InDelta(t, time.Hour.Seconds(), srv.TTL("orders:revoked:"+pair.Refresh.Session).Seconds(), 5)
}

func TestLogoutWithoutRevocationStore(t *testing.T) {
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: memory.NewStore().Users()})
	revoked, err := svc.Logout(context.Background(), &auth.Claims{})
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRefreshIssuesAccessToken(t *testing.T) {
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: memory.NewStore().Users()})
	refreshClaims := &auth.Claims{Session: "session-1"}

	token, err := svc.Refresh(context.Background(), &domain.User{Username: "alice"}, refreshClaims)
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token.Value, domain.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "session-1", claims.Session)
}

func TestSignupRejectsBlankUsername(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: store.Users()})
	ctx := context.Background()

	for _, username := range []string{"", "   ", "\t\n"} {
		_, err := svc.Signup(ctx, SignupInput{Username: username, Email: "blank@example.com", Password: "pw"})
		require.Error(t, err, "%q", username)
		assert.True(t, apperrors.IsStatus(err, http.StatusBadRequest), "%q", username)
		assert.Contains(t, apperrors.ToDomainError(err).Details, "username")
	}

	_, err := store.Users().GetByUsername(ctx, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	user, err := svc.Signup(ctx, SignupInput{Username: "  alice  ", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}
