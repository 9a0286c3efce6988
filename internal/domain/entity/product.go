package entity

import (
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
)

// Product is a catalogue item. Stock lives on its variants.
type Product struct {
	ID          string               `json:"id"`
	SKU         string               `json:"sku"`
	Name        string               `json:"name"`
	BrandID     string               `json:"brand_id"`
	Category    enum.ProductCategory `json:"category"`
	SubCategory string               `json:"sub_category"`
	Description string               `json:"description"`
	Price       Money                `json:"price"`
	Cost        Money                `json:"cost"`
	Active      bool                 `json:"active"`
	Variants    []Variant            `json:"variants"`
}

// Variant is a size/color combination and the unit of stock tracking
type Variant struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Stock     int    `json:"stock"`
}

// FindVariant returns the index of the variant with the given id, or -1
func (p *Product) FindVariant(variantID string) int {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return i
		}
	}
	return -1
}

// TotalStock sums stock across all variants
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// Clone returns a deep copy of the product
func (p Product) Clone() Product {
	p.Variants = append([]Variant(nil), p.Variants...)
	return p
}

// CloneProducts deep-copies a product list
func CloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i := range products {
		out[i] = products[i].Clone()
	}
	return out
}
