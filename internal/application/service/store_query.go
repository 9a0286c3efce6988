package service

import (
	"strings"
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/cuatrovientos/retail-api/pkg/apperror"
	"github.com/cuatrovientos/retail-api/pkg/pagination"
)

// Snapshot is a consistent deep copy of the store, for read-only aggregation
type Snapshot struct {
	Users      []entity.User
	Brands     []entity.Brand
	Products   []entity.Product
	Sales      []entity.Sale
	Movements  []entity.StockMovement
	CashCloses []entity.CashClose
	Taken      time.Time // store clock when the copy was made
}

// Snapshot copies every collection under a single lock
func (s *StoreService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales := make([]entity.Sale, len(s.state.sales))
	for i := range s.state.sales {
		sales[i] = s.state.sales[i].Clone()
	}
	return Snapshot{
		Users:      append([]entity.User(nil), s.users...),
		Brands:     append([]entity.Brand(nil), s.brands...),
		Products:   entity.CloneProducts(s.state.products),
		Sales:      sales,
		Movements:  append([]entity.StockMovement(nil), s.state.movements...),
		CashCloses: append([]entity.CashClose(nil), s.state.cashCloses...),
		Taken:      s.now(),
	}
}

func (s *StoreService) Users() []entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.User(nil), s.users...)
}

func (s *StoreService) Brands() []entity.Brand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Brand(nil), s.brands...)
}

// User looks up a user by id
func (s *StoreService) User(id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUser(id)
	if u == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	out := *u
	return &out, nil
}

// Products returns all products in insertion order
func (s *StoreService) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.CloneProducts(s.state.products)
}

func (s *StoreService) Product(id string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := findProduct(s.state.products, id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Product")
	}
	p := s.state.products[idx].Clone()
	return &p, nil
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	Search     string // matched against name and SKU, case-insensitive
	Category   enum.ProductCategory
	BrandID    string
	ActiveOnly bool
}

func (f *ProductFilter) matches(p *entity.Product) bool {
	if f.ActiveOnly && !p.Active {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.BrandID != "" && p.BrandID != f.BrandID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			return false
		}
	}
	return true
}

func (s *StoreService) ListProducts(filter ProductFilter, params *pagination.PaginationParams) *pagination.PaginatedResult[entity.Product] {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]entity.Product, 0, len(s.state.products))
	for i := range s.state.products {
		if filter.matches(&s.state.products[i]) {
			matched = append(matched, s.state.products[i].Clone())
		}
	}
	return pagination.Paginate(matched, params)
}

// MovementFilter narrows the movement log
type MovementFilter struct {
	Type      enum.MovementType
	ProductID string
}

// ListMovements pages through the movement log, most recent first
func (s *StoreService) ListMovements(filter MovementFilter, params *pagination.PaginationParams) *pagination.PaginatedResult[entity.StockMovement] {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]entity.StockMovement, 0, len(s.state.movements))
	for _, mv := range s.state.movements {
		if filter.Type != "" && mv.Type != filter.Type {
			continue
		}
		if filter.ProductID != "" && mv.ProductID != filter.ProductID {
			continue
		}
		matched = append(matched, mv)
	}
	return pagination.Paginate(matched, params)
}

// ListSales pages through sales, most recent first. A non-empty date keeps only that business date.
func (s *StoreService) ListSales(date string, params *pagination.PaginationParams) *pagination.PaginatedResult[entity.Sale] {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]entity.Sale, 0, len(s.state.sales))
	for i := range s.state.sales {
		if date != "" && s.businessDate(s.state.sales[i].Date) != date {
			continue
		}
		matched = append(matched, s.state.sales[i].Clone())
	}
	return pagination.Paginate(matched, params)
}

func (s *StoreService) Sale(id string) (*entity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.sales {
		if s.state.sales[i].ID == id {
			out := s.state.sales[i].Clone()
			return &out, nil
		}
	}
	return nil, apperror.NewNotFoundError("Sale")
}

func (s *StoreService) ListCashCloses(params *pagination.PaginationParams) *pagination.PaginatedResult[entity.CashClose] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pagination.Paginate(s.state.cashCloses, params)
}

// Sales returns every sale, most recent first
func (s *StoreService) Sales() []entity.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Sale, len(s.state.sales))
	for i := range s.state.sales {
		out[i] = s.state.sales[i].Clone()
	}
	return out
}

// Movements returns the movement log, most recent first
func (s *StoreService) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.state.movements...)
}

func (s *StoreService) CashCloses() []entity.CashClose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.CashClose(nil), s.state.cashCloses...)
}
