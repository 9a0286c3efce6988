package request

import (
	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ProductRequest represents a product creation or full replacement request
type ProductRequest struct {
	SKU         string           `json:"sku" binding:"required,max=100"`
	Name        string           `json:"name" binding:"required,min=2,max=255"`
	BrandID     string           `json:"brand_id" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	SubCategory string           `json:"sub_category" binding:"max=100"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Cost        decimal.Decimal  `json:"cost"`
	Active      *bool            `json:"active"`
	Variants    []VariantRequest `json:"variants" binding:"required,min=1,dive"`
}

// VariantRequest is one size/color row. Id is kept on updates to preserve the variant.
type VariantRequest struct {
	ID    string `json:"id"`
	Size  string `json:"size" binding:"required,max=20"`
	Color string `json:"color" binding:"max=50"`
	Stock int    `json:"stock"`
}

// ToEntity converts the request to a product; new products default to active
func (r *ProductRequest) ToEntity(id string) entity.Product {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	p := entity.Product{
		ID:          id,
		SKU:         r.SKU,
		Name:        r.Name,
		BrandID:     r.BrandID,
		Category:    enum.ProductCategory(r.Category),
		SubCategory: r.SubCategory,
		Description: r.Description,
		Price:       entity.MoneyFromDecimal(r.Price),
		Cost:        entity.MoneyFromDecimal(r.Cost),
		Active:      active,
		Variants:    make([]entity.Variant, 0, len(r.Variants)),
	}
	for _, v := range r.Variants {
		p.Variants = append(p.Variants, entity.Variant{
			ID:    v.ID,
			Size:  v.Size,
			Color: v.Color,
			Stock: v.Stock,
		})
	}
	return p
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	BrandID    string `form:"brand_id"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
