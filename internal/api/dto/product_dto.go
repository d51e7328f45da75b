package dto

import "github.com/spec-kit/order-service/internal/domain"

// ProductRequest payload for catalog additions.
type ProductRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Price int64  `json:"price" validate:"gte=0"`
}

// ProductResponse is the product representation.
type ProductResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// NewProductResponse projects a product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{ID: product.ID, Name: product.Name, Price: product.Price}
}
