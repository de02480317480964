package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/munimji/munim_backend/internal/apperrors"
	"github.com/munimji/munim_backend/internal/core/domain"
	portsrepo "github.com/munimji/munim_backend/internal/core/ports/repositories"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/dto"
	"github.com/munimji/munim_backend/internal/middleware"
)

var ErrProductHasReferences = fmt.Errorf("product is referenced by stock movements or voucher items: %w", apperrors.ErrConflict)

// productService provides product registry operations.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
	}
}

// Ensure productService implements the portssvc.ProductSvcFacade interface
var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct persists a new product.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: product code is required", apperrors.ErrValidation)
	}
	if req.PurchaseRate.IsNegative() || req.SaleRate.IsNegative() {
		return nil, fmt.Errorf("%w: product rates cannot be negative", apperrors.ErrValidation)
	}
	if req.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:    uuid.NewString(),
		Code:         code,
		Name:         strings.TrimSpace(req.Name),
		Unit:         req.Unit,
		PurchaseRate: req.PurchaseRate,
		SaleRate:     req.SaleRate,
		TaxRate:      req.TaxRate,
		OpeningStock: req.OpeningStock,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("code", code))
		return nil, err
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("code", product.Code))
	return &product, nil
}

// GetProductByID retrieves a specific product by its unique identifier.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find product by ID", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts retrieves products ordered by name.
func (s *productService) ListProducts(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	products, err := s.productRepo.ListProducts(ctx, includeInactive, limit, offset)
	if err != nil {
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// UpdateProduct updates an existing product's details. The code is immutable.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: product name cannot be empty", apperrors.ErrValidation)
		}
		product.Name = name
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.PurchaseRate != nil {
		if req.PurchaseRate.IsNegative() {
			return nil, fmt.Errorf("%w: purchase rate cannot be negative", apperrors.ErrValidation)
		}
		product.PurchaseRate = *req.PurchaseRate
	}
	if req.SaleRate != nil {
		if req.SaleRate.IsNegative() {
			return nil, fmt.Errorf("%w: sale rate cannot be negative", apperrors.ErrValidation)
		}
		product.SaleRate = *req.SaleRate
	}
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
		}
		product.TaxRate = *req.TaxRate
	}
	if req.OpeningStock != nil {
		product.OpeningStock = *req.OpeningStock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, err
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	return product, nil
}

// DeleteProduct soft-deletes a product. Rejected while any stock movement or
// voucher item references it.
func (s *productService) DeleteProduct(ctx context.Context, productID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	referenced, err := s.productRepo.HasReferences(ctx, productID)
	if err != nil {
		logger.Error("Failed to check references for product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return fmt.Errorf("failed to check references for product %s: %w", productID, err)
	}
	if referenced {
		return fmt.Errorf("%w: product %s", ErrProductHasReferences, product.Code)
	}

	if err := s.productRepo.SoftDeleteProduct(ctx, productID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return err
	}

	logger.Info("Product deleted", slog.String("product_id", productID), slog.String("code", product.Code))
	return nil
}
