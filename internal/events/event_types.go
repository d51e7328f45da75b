package events

import (
	"time"

	"github.com/spec-kit/order-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCreated       EventType = "order_created"
	EventOrderUpdated       EventType = "order_updated"
	EventOrderDeleted       EventType = "order_deleted"
	EventOrderStatusChanged EventType = "order_status_changed"
)

// Actor is the user who triggered an event.
type Actor struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	OrderID   int64     `json:"order_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// ActorFrom builds the actor for user.
func ActorFrom(user *domain.User) Actor {
	if user == nil {
		return Actor{}
	}
	return Actor{UserID: user.ID, Username: user.Username, IsStaff: user.IsStaff}
}

// OrderChangedPayload describes created and updated orders.
type OrderChangedPayload struct {
	OwnerID   int64 `json:"owner_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OwnerID   int64              `json:"owner_id"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}
