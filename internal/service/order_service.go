package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/events"
	"github.com/spec-kit/order-service/internal/repository"
	apperrors "github.com/spec-kit/order-service/pkg/util/errorutil"
)

// OrderService coordinates order workflows and ownership rules.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles repositories for order service.
type OrderDependencies struct {
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// OrderInput is the mutable part of an order.
type OrderInput struct {
	Quantity  int
	ProductID int64
}

// OrderListFilter describes optional listing filters.
type OrderListFilter struct {
	Statuses []domain.OrderStatus
	Limit    int
	Offset   int
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:     deps.OrderRepo,
		products:   deps.ProductRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateOrder places a PENDING order owned by user.
func (s *OrderService) CreateOrder(ctx context.Context, user *domain.User, input OrderInput) (*domain.Order, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:    user.ID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Status:    domain.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.publishEvent(ctx, events.EventOrderCreated, order.ID, user, events.OrderChangedPayload{
		OwnerID:   order.UserID,
		ProductID: order.ProductID,
		Quantity:  order.Quantity,
	})
	return order, nil
}

// ListOrders returns every order for staff and only the caller's orders otherwise.
func (s *OrderService) ListOrders(ctx context.Context, user *domain.User, filter OrderListFilter) ([]domain.Order, error) {
	repoFilter := repository.OrderFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	if !user.IsStaff {
		repoFilter.UserID = &user.ID
	}
	orders, err := s.orders.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return orders, nil
}

// GetOrder returns an enriched order visible to its owner and to staff.
func (s *OrderService) GetOrder(ctx context.Context, user *domain.User, orderID int64) (*domain.OrderDetail, error) {
	detail, err := s.orders.GetDetail(ctx, orderID)
	if err != nil {
		return nil, s.mapReadError(err, orderID)
	}
	if !detail.OwnedBy(user) && !user.IsStaff {
		return nil, apperrors.NewForbidden("You can not view other user's order")
	}
	return detail, nil
}

// ListUserOrders returns the caller's own enriched orders.
func (s *OrderService) ListUserOrders(ctx context.Context, user *domain.User, filter OrderListFilter) ([]domain.OrderDetail, error) {
	details, err := s.orders.ListDetails(ctx, repository.OrderFilter{
		UserID:   &user.ID,
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return details, nil
}

// GetUserOrder returns one of the caller's own orders; other users' orders are reported as missing.
func (s *OrderService) GetUserOrder(ctx context.Context, user *domain.User, orderID int64) (*domain.OrderDetail, error) {
	detail, err := s.orders.GetDetail(ctx, orderID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}
	if err != nil || !detail.OwnedBy(user) {
		return nil, apperrors.NewDomainError("NOT_FOUND", fmt.Sprintf("No order with this ID %d", orderID), http.StatusNotFound, nil)
	}
	return detail, nil
}

// UpdateOrder changes quantity and product of an order owned by user.
func (s *OrderService) UpdateOrder(ctx context.Context, user *domain.User, orderID int64, input OrderInput) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.mapReadError(err, orderID)
	}
	if !order.OwnedBy(user) {
		return nil, apperrors.NewForbidden("You can not update other user's order")
	}
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	order.Quantity = input.Quantity
	order.ProductID = input.ProductID
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.publishEvent(ctx, events.EventOrderUpdated, order.ID, user, events.OrderChangedPayload{
		OwnerID:   order.UserID,
		ProductID: order.ProductID,
		Quantity:  order.Quantity,
	})
	return order, nil
}

// DeleteOrder removes an order owned by user, whatever its status.
func (s *OrderService) DeleteOrder(ctx context.Context, user *domain.User, orderID int64) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return s.mapReadError(err, orderID)
	}
	if !order.OwnedBy(user) {
		return apperrors.NewForbidden("You can not delete other user's order")
	}
	if err := s.orders.Delete(ctx, orderID); err != nil {
		return s.mapReadError(err, orderID)
	}

	s.publishEvent(ctx, events.EventOrderDeleted, orderID, user, events.OrderChangedPayload{
		OwnerID:   order.UserID,
		ProductID: order.ProductID,
		Quantity:  order.Quantity,
	})
	return nil
}

// UpdateOrderStatus advances an order one step along PENDING -> IN_TRANSIT -> DELIVERED.
// Staff-only; the route enforces the role and this re-checks it.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, user *domain.User, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	if !user.IsStaff {
		return nil, apperrors.NewForbidden("staff privileges required")
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid order status", map[string]any{"order_status": status})
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.mapReadError(err, orderID)
	}
	previous := order.Status
	if !previous.CanTransitionTo(status) {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("cannot move order from %s to %s", previous, status),
			map[string]any{"current_status": previous},
		)
	}

	order.Status = status
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.publishEvent(ctx, events.EventOrderStatusChanged, order.ID, user, events.OrderStatusChangedPayload{
		OwnerID:   order.UserID,
		OldStatus: previous,
		NewStatus: status,
	})
	return order, nil
}

func (s *OrderService) validateInput(ctx context.Context, input OrderInput) error {
	if input.Quantity <= 0 {
		return apperrors.NewValidationError("quantity must be greater than 0", map[string]any{"quantity": input.Quantity})
	}
	if input.Quantity > domain.MaxOrderQuantity {
		return apperrors.NewValidationError("quantity is too large", map[string]any{"quantity": input.Quantity})
	}
	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Product", map[string]any{"product_id": input.ProductID})
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *OrderService) mapReadError(err error, orderID int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewDomainError("NOT_FOUND", fmt.Sprintf("Order with %d ID is not found", orderID), http.StatusNotFound, nil)
	}
	return apperrors.NewInternalError(err)
}

func (s *OrderService) mapWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrMissingReference):
		return apperrors.NewNotFound("Product", nil)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("Order", nil)
	default:
		return apperrors.NewInternalError(err)
	}
}

func (s *OrderService) publishEvent(ctx context.Context, eventType events.EventType, orderID int64, actor *domain.User, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   orderID,
		Actor:     events.ActorFrom(actor),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event_type", string(eventType)),
			zap.Int64("order_id", orderID),
			zap.Error(err))
	}
}
