package repositories

import (
	"context"
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a specific product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products keyed by id.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProducts retrieves products ordered by name.
	ListProducts(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.Product, error)

	// HasReferences reports whether any stock movement or voucher item
	// references the product.
	HasReferences(ctx context.Context, productID string) (bool, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates an existing product's details.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// SoftDeleteProduct marks a product as deleted and inactive.
	SoftDeleteProduct(ctx context.Context, productID string, userID string, now time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
