// Package memory provides map-backed repositories used when no Postgres DSN
// is configured and as fakes in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/repository"
)

// Store holds users, products and orders and enforces the same uniqueness
// and reference rules as the SQL schema.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]domain.User
	products map[int64]domain.Product
	orders   map[int64]domain.Order
	nextID   map[string]int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]domain.User),
		products: make(map[int64]domain.Product),
		orders:   make(map[int64]domain.Order),
		nextID:   make(map[string]int64),
	}
}

// Users returns a UserRepository view of the store.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Products returns a ProductRepository view of the store.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

// Orders returns an OrderRepository view of the store.
func (s *Store) Orders() repository.OrderRepository { return orderRepo{s} }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) allocate(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrConflict
		}
	}
	now := time.Now().UTC()
	user.ID = r.s.allocate("users")
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Username == username })
}

func (r userRepo) GetByUsernameOrEmail(ctx context.Context, login string) (*domain.User, error) {
	if user, err := r.GetByUsername(ctx, login); err == nil {
		return user, nil
	}
	return r.find(ctx, func(u domain.User) bool { return u.Email == login })
}

func (r userRepo) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if match(user) {
			found := user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

type productRepo struct{ s *Store }

func (r productRepo) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product.ID = r.s.allocate("products")
	product.CreatedAt = time.Now().UTC()
	r.s.products[product.ID] = *product
	return nil
}

func (r productRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	product, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &product, nil
}

func (r productRepo) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.s.products))
	for _, product := range r.s.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type orderRepo struct{ s *Store }

func (r orderRepo) Create(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkReferences(order); err != nil {
		return err
	}
	now := time.Now().UTC()
	order.ID = r.s.allocate("orders")
	order.CreatedAt = now
	order.UpdatedAt = now
	r.s.orders[order.ID] = *order
	return nil
}

func (r orderRepo) Update(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.checkReferences(order); err != nil {
		return err
	}
	existing.ProductID = order.ProductID
	existing.Quantity = order.Quantity
	existing.Status = order.Status
	existing.UpdatedAt = time.Now().UTC()
	r.s.orders[order.ID] = existing
	order.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r orderRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

func (r orderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	order, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &order, nil
}

func (r orderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filtered(filter), nil
}

func (r orderRepo) GetDetail(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	order, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	detail := r.join(order)
	return &detail, nil
}

func (r orderRepo) ListDetails(ctx context.Context, filter repository.OrderFilter) ([]domain.OrderDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := r.filtered(filter)
	result := make([]domain.OrderDetail, 0, len(orders))
	for _, order := range orders {
		result = append(result, r.join(order))
	}
	return result, nil
}

// checkReferences mirrors the orders table foreign keys. Caller holds the lock.
func (r orderRepo) checkReferences(order *domain.Order) error {
	if _, ok := r.s.users[order.UserID]; !ok {
		return repository.ErrMissingReference
	}
	if _, ok := r.s.products[order.ProductID]; !ok {
		return repository.ErrMissingReference
	}
	return nil
}

func (r orderRepo) join(order domain.Order) domain.OrderDetail {
	user := r.s.users[order.UserID]
	product := r.s.products[order.ProductID]
	return domain.OrderDetail{
		Order:   order,
		User:    user.Summary(),
		Product: product.Summary(),
	}
}

func (r orderRepo) filtered(filter repository.OrderFilter) []domain.Order {
	result := []domain.Order{}
	for _, order := range r.s.orders {
		if filter.UserID != nil && order.UserID != *filter.UserID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, order.Status) {
			continue
		}
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if filter.Limit <= 0 {
		return result
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(result) {
		return []domain.Order{}
	}
	end := offset + filter.Limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end]
}

func containsStatus(statuses []domain.OrderStatus, status domain.OrderStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}
