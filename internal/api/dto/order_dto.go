package dto

import "github.com/spec-kit/order-service/internal/domain"

// OrderRequest payload for create and update.
type OrderRequest struct {
	Quantity  int   `json:"quantity" validate:"gt=0,max=2147483647"`
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// OrderStatusRequest payload for staff status transitions.
type OrderStatusRequest struct {
	OrderStatus string `json:"order_status" validate:"required,oneof=PENDING IN_TRANSIT DELIVERED"`
}

// OrderResponse is the flat order representation.
type OrderResponse struct {
	ID          int64              `json:"id"`
	Quantity    int                `json:"quantity"`
	UserID      int64              `json:"user_id"`
	ProductID   int64              `json:"product_id"`
	OrderStatus domain.OrderStatus `json:"order_status"`
}

// OrderUserSummary is nested inside enriched orders.
type OrderUserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// OrderProductSummary is nested inside enriched orders.
type OrderProductSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// OrderDetailResponse is the enriched order with computed total price.
type OrderDetailResponse struct {
	ID          int64               `json:"id"`
	User        OrderUserSummary    `json:"user"`
	Product     OrderProductSummary `json:"product"`
	Quantity    int                 `json:"quantity"`
	OrderStatus domain.OrderStatus  `json:"order_status"`
	TotalPrice  int64               `json:"total_price"`
}

// ConfirmationResponse wraps mutation results.
type ConfirmationResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// NewOrderResponse projects an order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		Quantity:    order.Quantity,
		UserID:      order.UserID,
		ProductID:   order.ProductID,
		OrderStatus: order.Status,
	}
}

// NewOrderDetailResponse projects an enriched order.
func NewOrderDetailResponse(detail *domain.OrderDetail) OrderDetailResponse {
	return OrderDetailResponse{
		ID: detail.ID,
		User: OrderUserSummary{
			ID:       detail.User.ID,
			Username: detail.User.Username,
			Email:    detail.User.Email,
		},
		Product: OrderProductSummary{
			ID:    detail.Product.ID,
			Name:  detail.Product.Name,
			Price: detail.Product.Price,
		},
		Quantity:    detail.Quantity,
		OrderStatus: detail.Status,
		TotalPrice:  detail.TotalPrice(),
	}
}
