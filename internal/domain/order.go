package domain

import (
	"fmt"
	"math"
	"time"
)

// MaxOrderQuantity is the largest quantity the orders table can hold.
const MaxOrderQuantity = math.MaxInt32

// OrderStatus enumerates delivery states for orders.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusInTransit OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// orderFlow lists statuses in delivery order.
var orderFlow = []OrderStatus{OrderStatusPending, OrderStatusInTransit, OrderStatusDelivered}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return status, nil
}

// Valid reports whether s is one of the fixed statuses.
func (s OrderStatus) Valid() bool {
	return s.position() >= 0
}

// Next returns the status following s, or false when s is terminal.
func (s OrderStatus) Next() (OrderStatus, bool) {
	pos := s.position()
	if pos < 0 || pos == len(orderFlow)-1 {
		return "", false
	}
	return orderFlow[pos+1], true
}

// CanTransitionTo allows only a single forward step.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

func (s OrderStatus) position() int {
	for i, candidate := range orderFlow {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Order belongs to one user and references one product.
type Order struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the order belongs to the user.
func (o *Order) OwnedBy(user *User) bool {
	return user != nil && o.UserID == user.ID
}

// OrderDetail is an order joined with its user and product.
type OrderDetail struct {
	Order
	User    UserSummary
	Product ProductSummary
}

// TotalPrice is quantity times the product's unit price.
func (d *OrderDetail) TotalPrice() int64 {
	return int64(d.Quantity) * d.Product.Price
}
