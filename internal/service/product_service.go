package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/order-service/internal/domain"
	"github.com/spec-kit/order-service/internal/repository"
	apperrors "github.com/spec-kit/order-service/pkg/util/errorutil"
)

// ProductService manages the product catalog.
type ProductService struct {
	products repository.ProductRepository
}

// ProductInput carries product fields.
type ProductInput struct {
	Name  string
	Price int64
}

// NewProductService constructs the service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// CreateProduct adds a product to the catalog.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", map[string]any{"price": input.Price})
	}

	product := &domain.Product{Name: name, Price: input.Price}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return product, nil
}

// GetProduct fetches a single product.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Product", map[string]any{"product_id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return product, nil
}

// ListProducts returns the whole catalog ordered by id.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return products, nil
}
