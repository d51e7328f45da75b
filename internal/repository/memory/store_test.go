package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/repository"
)

func seed(t *testing.T, store *Store) (*domain.User, *domain.Product) {
	t.Helper()
	ctx := context.Background()
	user := &domain.User{Username: "alice", Email: "alice@example.com", IsActive: true}
	require.NoError(t, store.Users().Create(ctx, user))
	product := &domain.Product{Name: "osh", Price: 3000}
	require.NoError(t, store.Products().Create(ctx, product))
	return user, product
}

func TestUserUniqueness(t *testing.T) {
	store := NewStore()
	seed(t, store)
	ctx := context.Background()

	err := store.Users().Create(ctx, &domain.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	err = store.Users().Create(ctx, &domain.User{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	mixed := &domain.User{Username: "carol", Email: "ALICE@example.com"}
	require.NoError(t, store.Users().Create(ctx, mixed))
	found, err := store.Users().GetByUsernameOrEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, mixed.ID, found.ID)
}

func TestGetByUsernameOrEmail(t *testing.T) {
	store := NewStore()
	user, _ := seed(t, store)
	ctx := context.Background()

	byName, err := store.Users().GetByUsernameOrEmail(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := store.Users().GetByUsernameOrEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = store.Users().GetByUsernameOrEmail(ctx, "ALICE@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound, "emails match exactly, as in Postgres")

	_, err = store.Users().GetByUsernameOrEmail(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrderReferencesAreEnforced(t *testing.T) {
	store := NewStore()
	user, product := seed(t, store)
	ctx := context.Background()

	err := store.Orders().Create(ctx, &domain.Order{UserID: user.ID, ProductID: product.ID + 100, Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrMissingReference)

	err = store.Orders().Create(ctx, &domain.Order{UserID: user.ID + 100, ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrMissingReference)
}

func TestOrderDetailJoin(t *testing.T) {
	store := NewStore()
	user, product := seed(t, store)
	ctx := context.Background()

	order := &domain.Order{UserID: user.ID, ProductID: product.ID, Quantity: 2, Status: domain.OrderStatusPending}
	require.NoError(t, store.Orders().Create(ctx, order))

	detail, err := store.Orders().GetDetail(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.User.Username)
	assert.Equal(t, "osh", detail.Product.Name)
	assert.Equal(t, int64(6000), detail.TotalPrice())
}

func TestListFilterAndPaging(t *testing.T) {
	store := NewStore()
	user, product := seed(t, store)
	ctx := context.Background()
	other := &domain.User{Username: "bob", Email: "bob@example.com", IsActive: true}
	require.NoError(t, store.Users().Create(ctx, other))

	for i := 0; i < 5; i++ {
		owner := user.ID
		if i%2 == 1 {
			owner = other.ID
		}
		require.NoError(t, store.Orders().Create(ctx, &domain.Order{
			UserID: owner, ProductID: product.ID, Quantity: i + 1, Status: domain.OrderStatusPending,
		}))
	}

	all, err := store.Orders().List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	own, err := store.Orders().List(ctx, repository.OrderFilter{UserID: &user.ID})
	require.NoError(t, err)
	assert.Len(t, own, 3)
	for _, order := range own {
		assert.Equal(t, user.ID, order.UserID)
	}

	page, err := store.Orders().List(ctx, repository.OrderFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(5), page[0].ID)

	delivered, err := store.Orders().List(ctx, repository.OrderFilter{Statuses: []domain.OrderStatus{domain.OrderStatusDelivered}})
	require.NoError(t, err)
	assert.Empty(t, delivered)
}

func TestDeleteAndUpdateMissing(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Orders().Delete(ctx, 42), repository.ErrNotFound)
	assert.ErrorIs(t, store.Orders().Update(ctx, &domain.Order{ID: 42}), repository.ErrNotFound)
}

func TestConcurrentCreatesAllocateUniqueIDs(t *testing.T) {
	store := NewStore()
	user, product := seed(t, store)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan int64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order := &domain.Order{UserID: user.ID, ProductID: product.ID, Quantity: 1, Status: domain.OrderStatusPending}
			if err := store.Orders().Create(ctx, order); err == nil {
				ids <- order.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 50)
}
