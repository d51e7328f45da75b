package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/order-service/internal/config"
	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/events"
	"github.com/spec-kit/order-service/internal/repository/memory"
)

type fixture struct {
	store      *memory.Store
	dispatcher events.Dispatcher
	orders     *OrderService
	products   *ProductService
	alice      *domain.User
	bob        *domain.User
	staff      *domain.User
	osh        *domain.Product
	tea        *domain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()

	f := &fixture{
		store:      store,
		dispatcher: dispatcher,
		orders: NewOrderService(OrderDependencies{
			OrderRepo:   store.Orders(),
			ProductRepo: store.Products(),
			Dispatcher:  dispatcher,
		}),
		products: NewProductService(store.Products()),
		alice:    &domain.User{Username: "alice", Email: "alice@example.com", IsActive: true},
		bob:      &domain.User{Username: "bob", Email: "bob@example.com", IsActive: true},
		staff:    &domain.User{Username: "boss", Email: "boss@example.com", IsActive: true, IsStaff: true},
		osh:      &domain.Product{Name: "osh", Price: 3000},
		tea:      &domain.Product{Name: "tea", Price: 500},
	}
	for _, user := range []*domain.User{f.alice, f.bob, f.staff} {
		require.NoError(t, store.Users().Create(ctx, user))
	}
	for _, product := range []*domain.Product{f.osh, f.tea} {
		require.NoError(t, store.Products().Create(ctx, product))
	}
	return f
}

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:              "test-secret",
		AccessTokenTTLMinutes:  15,
		RefreshTokenTTLMinutes: 60,
		BcryptCost:             4,
	}}
}
