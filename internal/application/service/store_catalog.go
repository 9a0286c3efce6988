package service

import (
	"context"
	"strings"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/repository"
	"github.com/cuatrovientos/retail-api/pkg/apperror"
)

// AddProduct registers a new product. The product id, missing variant ids and
// variant back-references are assigned here; variant sizes are upper-cased.
func (s *StoreService) AddProduct(ctx context.Context, draft entity.Product) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := draft.Clone()
	product.ID = s.newID()
	s.normalizeVariants(&product)

	if err := s.validateProduct(&product); err != nil {
		return nil, err
	}

	products := append(entity.CloneProducts(s.state.products), product)
	if err := s.commit(ctx, map[string]any{repository.KeyProducts: products}); err != nil {
		return nil, err
	}
	s.state.products = products
	s.metrics.SetUnitsInStock(totalUnits(products))

	s.logger.Info("product added", "product_id", product.ID, "sku", product.SKU, "variants", len(product.Variants))
	out := product.Clone()
	return &out, nil
}

// UpdateProduct replaces the stored product with the same id as a whole
func (s *StoreService) UpdateProduct(ctx context.Context, updated entity.Product) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findProduct(s.state.products, updated.ID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Product")
	}

	product := updated.Clone()
	s.normalizeVariants(&product)

	if err := s.validateProduct(&product); err != nil {
		return nil, err
	}

	products := entity.CloneProducts(s.state.products)
	products[idx] = product
	if err := s.commit(ctx, map[string]any{repository.KeyProducts: products}); err != nil {
		return nil, err
	}
	s.state.products = products
	s.metrics.SetUnitsInStock(totalUnits(products))

	s.logger.Info("product updated", "product_id", product.ID, "sku", product.SKU)
	out := product.Clone()
	return &out, nil
}

func (s *StoreService) normalizeVariants(p *entity.Product) {
	p.SKU = strings.TrimSpace(p.SKU)
	p.Name = strings.TrimSpace(p.Name)
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.ID == "" {
			v.ID = s.newID()
		}
		v.ProductID = p.ID
		v.Size = strings.ToUpper(strings.TrimSpace(v.Size))
		v.Color = strings.TrimSpace(v.Color)
	}
}

// validateProduct checks field rules, then the brand, then SKU uniqueness
func (s *StoreService) validateProduct(p *entity.Product) error {
	var fieldErrors []apperror.FieldError
	if p.SKU == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sku", Message: "SKU is required"})
	}
	if p.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if !p.Category.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "Unknown category"})
	}
	if p.Price < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if p.Cost < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cost", Message: "Cost cannot be negative"})
	}
	if len(p.Variants) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "variants", Message: "At least one variant is required"})
	}
	seen := make(map[string]bool, len(p.Variants))
	for _, v := range p.Variants {
		if v.Size == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "variants.size", Message: "Size is required"})
		}
		if v.Stock < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "variants.stock", Message: "Stock cannot be negative"})
		}
		if seen[v.ID] {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "variants.id", Message: "Duplicate variant id " + v.ID})
		}
		seen[v.ID] = true
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	if s.findBrand(p.BrandID) == nil {
		return apperror.NewNotFoundError("Brand")
	}

	for i := range s.state.products {
		other := &s.state.products[i]
		if other.ID != p.ID && strings.EqualFold(other.SKU, p.SKU) {
			return apperror.NewConflictError("SKU " + p.SKU + " is already in use")
		}
	}
	return nil
}
