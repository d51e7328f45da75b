package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/order-service/internal/api/dto"
	"github.com/spec-kit/order-service/internal/auth"
	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/service"
)

// OrdersHandler exposes the /order endpoints.
type OrdersHandler struct {
	service *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// Welcome GET /order/.
func (h *OrdersHandler) Welcome(c *fiber.Ctx) error {
	if _, err := auth.CurrentUser(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "This is order page."})
}

// CreateOrder POST /order/create.
func (h *OrdersHandler) CreateOrder(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	var req dto.OrderRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	order, err := h.service.CreateOrder(c.UserContext(), user, service.OrderInput{
		Quantity:  req.Quantity,
		ProductID: req.ProductID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.NewOrderResponse(order))
}

// ListOrders GET /order/list.
func (h *OrdersHandler) ListOrders(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	filter, err := parseListQuery(c)
	if err != nil {
		return err
	}
	orders, err := h.service.ListOrders(c.UserContext(), user, filter)
	if err != nil {
		return err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.NewOrderResponse(&orders[i]))
	}
	return c.JSON(items)
}

// GetOrder GET /order/:id.
func (h *OrdersHandler) GetOrder(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.service.GetOrder(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderDetailResponse(detail))
}

// ListUserOrders GET /order/user/orders.
func (h *OrdersHandler) ListUserOrders(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	filter, err := parseListQuery(c)
	if err != nil {
		return err
	}
	details, err := h.service.ListUserOrders(c.UserContext(), user, filter)
	if err != nil {
		return err
	}
	return c.JSON(detailResponses(details))
}

// GetUserOrder GET /order/user/order/:id.
func (h *OrdersHandler) GetUserOrder(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.service.GetUserOrder(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderDetailResponse(detail))
}

// UpdateOrder PUT /order/:id/update.
func (h *OrdersHandler) UpdateOrder(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.OrderRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	order, err := h.service.UpdateOrder(c.UserContext(), user, id, service.OrderInput{
		Quantity:  req.Quantity,
		ProductID: req.ProductID,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.ConfirmationResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: "Your order has been successfully modified",
		Data:    dto.NewOrderResponse(order),
	})
}

// DeleteOrder DELETE /order/:id/delete.
func (h *OrdersHandler) DeleteOrder(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteOrder(c.UserContext(), user, id); err != nil {
		return err
	}
	return c.JSON(dto.ConfirmationResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: "User order is successfully deleted",
	})
}

// UpdateOrderStatus PATCH /order/:id/status (staff).
func (h *OrdersHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.OrderStatusRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	order, err := h.service.UpdateOrderStatus(c.UserContext(), user, id, domain.OrderStatus(req.OrderStatus))
	if err != nil {
		return err
	}
	return c.JSON(dto.ConfirmationResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: "Order status has been updated",
		Data:    dto.NewOrderResponse(order),
	})
}

func detailResponses(details []domain.OrderDetail) []dto.OrderDetailResponse {
	resp := make([]dto.OrderDetailResponse, 0, len(details))
	for i := range details {
		resp = append(resp, dto.NewOrderDetailResponse(&details[i]))
	}
	return resp
}
