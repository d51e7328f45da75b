package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/order-service/internal/api/dto"
	"github.com/spec-kit/order-service/internal/service"
)

// ProductsHandler exposes the /product endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// CreateProduct POST /product/create (staff).
func (h *ProductsHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	product, err := h.service.CreateProduct(c.UserContext(), service.ProductInput{Name: req.Name, Price: req.Price})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewProductResponse(product))
}

// ListProducts GET /product/list.
func (h *ProductsHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, dto.NewProductResponse(&products[i]))
	}
	return c.JSON(items)
}

// GetProduct GET /product/:id.
func (h *ProductsHandler) GetProduct(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(product))
}
