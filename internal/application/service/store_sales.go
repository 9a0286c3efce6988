package service

import (
	"context"
	"fmt"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/cuatrovientos/retail-api/internal/domain/repository"
	"github.com/cuatrovientos/retail-api/pkg/apperror"
)

const (
	OriginCounterSale = "Counter Sale"
	CounterSaleNotes  = "Cash sale"
)

// SaleLine is one requested line of a sale
type SaleLine struct {
	ProductID string
	VariantID string
	Quantity  int
}

type resolvedLine struct {
	line    SaleLine
	product *entity.Product
	variant *entity.Variant
}

// CreateSale records a cash sale for the session user. Every line is resolved and
// checked against stock before anything changes; the stock deductions, their EXIT
// movements and the sale are then committed together.
func (s *StoreService) CreateSale(ctx context.Context, lines []SaleLine) (*entity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cashier, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "items", Message: "A sale needs at least one item"}})
	}
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "Quantity must be greater than zero",
			}})
		}
	}

	// Resolve every line first so a bad id later in the cart leaves nothing changed.
	resolved := make([]resolvedLine, len(lines))
	for i, line := range lines {
		pi := findProduct(s.state.products, line.ProductID)
		if pi < 0 {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}
		p := &s.state.products[pi]
		if !p.Active {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   fmt.Sprintf("items[%d].product_id", i),
				Message: fmt.Sprintf("%s is not for sale", p.Name),
			}})
		}
		vi := p.FindVariant(line.VariantID)
		if vi < 0 {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Variant %s", line.VariantID))
		}
		resolved[i] = resolvedLine{line: line, product: p, variant: &p.Variants[vi]}
	}

	// Stock check, fail-fast on the first short line. Repeated variants are
	// checked against their cumulative quantity.
	requested := make(map[string]int, len(lines))
	for _, r := range resolved {
		requested[r.variant.ID] += r.line.Quantity
		if requested[r.variant.ID] > r.variant.Stock {
			s.metrics.ObserveRejectedSale()
			s.logger.Info("sale rejected for insufficient stock",
				"variant_id", r.variant.ID, "requested", requested[r.variant.ID], "stock", r.variant.Stock)
			return nil, apperror.NewInsufficientStockError(r.product.Name, r.variant.Size, r.variant.Color)
		}
	}

	now := s.now()
	sale := entity.Sale{
		ID:            s.newID(),
		Date:          now,
		UserID:        cashier.ID,
		Items:         make([]entity.SaleItem, 0, len(resolved)),
		PaymentMethod: enum.PaymentCash,
	}
	products := entity.CloneProducts(s.state.products)
	movements := s.state.movements

	for _, r := range resolved {
		subtotal := r.product.Price * entity.Money(r.line.Quantity)
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID:   r.product.ID,
			VariantID:   r.variant.ID,
			ProductName: r.product.Name,
			Size:        r.variant.Size,
			Color:       r.variant.Color,
			Quantity:    r.line.Quantity,
			UnitPrice:   r.product.Price,
			Subtotal:    subtotal,
		})
		sale.Total += subtotal

		mv := entity.StockMovement{
			ID:        s.newID(),
			Type:      enum.MovementExit,
			ProductID: r.product.ID,
			VariantID: r.variant.ID,
			Quantity:  r.line.Quantity,
			Date:      now,
			UserID:    cashier.ID,
			Origin:    OriginCounterSale,
			Notes:     CounterSaleNotes,
		}
		if err := applyMovement(products, &mv); err != nil {
			return nil, err
		}
		movements = prepend(movements, mv)
	}
	sales := prepend(s.state.sales, sale)

	err = s.commit(ctx, map[string]any{
		repository.KeyProducts:  products,
		repository.KeyMovements: movements,
		repository.KeySales:     sales,
	})
	if err != nil {
		return nil, err
	}
	s.state.products = products
	s.state.movements = movements
	s.state.sales = sales

	s.metrics.ObserveSale(sale.Total.Float(), sale.ItemCount())
	for range sale.Items {
		s.metrics.ObserveMovement(enum.MovementExit.String())
	}
	s.metrics.SetUnitsInStock(totalUnits(products))
	s.logger.Info("sale created",
		"sale_id", sale.ID, "user_id", cashier.ID, "lines", len(sale.Items), "total", sale.Total.String())

	out := sale.Clone()
	return &out, nil
}
