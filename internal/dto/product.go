package dto

import (
	"time"

	"github.com/munimji/munim_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a new product.
type CreateProductRequest struct {
	Code         string          `json:"code" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Unit         string          `json:"unit"`
	PurchaseRate decimal.Decimal `json:"purchaseRate"`
	SaleRate     decimal.Decimal `json:"saleRate"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	OpeningStock decimal.Decimal `json:"openingStock"`
}

// UpdateProductRequest defines the data allowed for updating a product.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Unit         *string          `json:"unit"`
	PurchaseRate *decimal.Decimal `json:"purchaseRate"`
	SaleRate     *decimal.Decimal `json:"saleRate"`
	TaxRate      *decimal.Decimal `json:"taxRate"`
	OpeningStock *decimal.Decimal `json:"openingStock"`
	IsActive     *bool            `json:"isActive"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	PurchaseRate  decimal.Decimal `json:"purchaseRate"`
	SaleRate      decimal.Decimal `json:"saleRate"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	OpeningStock  decimal.Decimal `json:"openingStock"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Code:          p.Code,
		Name:          p.Name,
		Unit:          p.Unit,
		PurchaseRate:  p.PurchaseRate,
		SaleRate:      p.SaleRate,
		TaxRate:       p.TaxRate,
		OpeningStock:  p.OpeningStock,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToListProductResponse converts a slice of domain.Product to a slice of ProductResponse DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = ToProductResponse(&p)
	}
	return res
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit           int  `form:"limit,default=50"`
	Offset          int  `form:"offset,default=0"`
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}
