package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	domainRepo "github.com/cuatrovientos/retail-api/internal/domain/repository"
)

// DefaultUsers are the operators available at the login picker
func DefaultUsers() []entity.User {
	return []entity.User{
		{ID: "u1", Name: "Admin User", Email: "admin@cuatrovientos.com", Role: enum.RoleAdmin, Password: "123"},
		{ID: "u2", Name: "Encargado Depósito", Email: "stock@cuatrovientos.com", Role: enum.RoleStock, Password: "123"},
		{ID: "u3", Name: "Cajero Principal", Email: "caja@cuatrovientos.com", Role: enum.RoleCashier, Password: "123"},
	}
}

func DefaultBrands() []entity.Brand {
	mixed, clothing, footwear := enum.BrandTypeMixed, enum.BrandTypeClothing, enum.BrandTypeFootwear
	return []entity.Brand{
		{ID: "b1", Name: "Nike", Type: &mixed},
		{ID: "b2", Name: "Adidas", Type: &mixed},
		{ID: "b3", Name: "Cuatro Vientos", Type: &clothing},
		{ID: "b4", Name: "Puma", Type: &footwear},
	}
}

// DefaultProducts is the catalogue written on first run
func DefaultProducts() []entity.Product {
	return []entity.Product{
		{
			ID:          "p1",
			SKU:         "NK-AIR-001",
			Name:        "Air Force 1",
			BrandID:     "b1",
			Category:    enum.CategoryFootwear,
			SubCategory: "Zapatillas",
			Description: "Clásicas zapatillas blancas.",
			Price:       12000000,
			Cost:        8000000,
			Active:      true,
			Variants: []entity.Variant{
				{ID: "v1", ProductID: "p1", Size: "40", Color: "Blanco", Stock: 10},
				{ID: "v2", ProductID: "p1", Size: "41", Color: "Blanco", Stock: 5},
				{ID: "v3", ProductID: "p1", Size: "42", Color: "Blanco", Stock: 2},
			},
		},
		{
			ID:          "p2",
			SKU:         "CV-REM-001",
			Name:        "Remera Básica Logo",
			BrandID:     "b3",
			Category:    enum.CategoryClothing,
			SubCategory: "Remeras",
			Description: "Algodón 100% peinado.",
			Price:       1500000,
			Cost:        700000,
			Active:      true,
			Variants: []entity.Variant{
				{ID: "v4", ProductID: "p2", Size: "S", Color: "Negro", Stock: 20},
				{ID: "v5", ProductID: "p2", Size: "M", Color: "Negro", Stock: 15},
				{ID: "v6", ProductID: "p2", Size: "L", Color: "Negro", Stock: 8},
				{ID: "v7", ProductID: "p2", Size: "M", Color: "Blanco", Stock: 12},
			},
		},
	}
}

// SeedDefaultData writes the default catalogue when no products have ever been stored.
// Existing state is left untouched.
func SeedDefaultData(ctx context.Context, repo domainRepo.StateRepository) error {
	existing, err := repo.Load(ctx, domainRepo.KeyProducts)
	if err != nil {
		return fmt.Errorf("failed to read products: %w", err)
	}
	if existing != nil {
		slog.Debug("catalogue already present, skipping seed")
		return nil
	}

	raw, err := json.Marshal(DefaultProducts())
	if err != nil {
		return err
	}
	if err := repo.SaveBatch(ctx, map[string][]byte{domainRepo.KeyProducts: raw}); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	slog.Info("seeded default catalogue")
	return nil
}
