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
	OriginBulkEntry   = "Bulk Entry"
	DefaultEntryNotes = "Stock replenishment"
)

// MovementInput describes a stock movement to record. Id and date are assigned by the store.
type MovementInput struct {
	Type      enum.MovementType
	ProductID string
	VariantID string
	Quantity  int
	UserID    string // defaults to the session user
	Origin    string
	Notes     string
}

// StockEntryLine is one line of a bulk stock entry
type StockEntryLine struct {
	ProductID string
	VariantID string
	Quantity  int
}

// AddStockMovement records a movement and applies its delta to the variant's stock.
// ENTRY adds, EXIT subtracts and ADJUSTMENT adds a signed quantity.
func (s *StoreService) AddStockMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "type", Message: "Unknown movement type"}})
	}
	if input.Quantity == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "quantity", Message: "Quantity cannot be zero"}})
	}
	if input.Type != enum.MovementAdjustment && input.Quantity < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "quantity", Message: "Quantity cannot be negative"}})
	}
	userID := actor.ID
	if input.UserID != "" {
		if s.findUser(input.UserID) == nil {
			return nil, apperror.NewNotFoundError("User")
		}
		userID = input.UserID
	}

	products := entity.CloneProducts(s.state.products)
	mv := entity.StockMovement{
		ID:        s.newID(),
		Type:      input.Type,
		ProductID: input.ProductID,
		VariantID: input.VariantID,
		Quantity:  input.Quantity,
		Date:      s.now(),
		UserID:    userID,
		Origin:    input.Origin,
		Notes:     input.Notes,
	}
	if err := applyMovement(products, &mv); err != nil {
		return nil, err
	}
	movements := prepend(s.state.movements, mv)

	err = s.commit(ctx, map[string]any{
		repository.KeyProducts:  products,
		repository.KeyMovements: movements,
	})
	if err != nil {
		return nil, err
	}
	s.state.products = products
	s.state.movements = movements

	s.metrics.ObserveMovement(mv.Type.String())
	s.metrics.SetUnitsInStock(totalUnits(products))
	s.logger.Info("stock movement recorded",
		"movement_id", mv.ID, "type", mv.Type, "variant_id", mv.VariantID, "quantity", mv.Quantity)
	return &mv, nil
}

// AddStockEntries registers a bulk ENTRY of several variants at once. Lines with
// a quantity of zero or less are skipped. Every remaining line is validated before
// any stock changes, and all of them are committed together.
func (s *StoreService) AddStockEntries(ctx context.Context, lines []StockEntryLine, notes string) ([]entity.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	if notes == "" {
		notes = DefaultEntryNotes
	}

	products := entity.CloneProducts(s.state.products)
	now := s.now()
	recorded := make([]entity.StockMovement, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		mv := entity.StockMovement{
			ID:        s.newID(),
			Type:      enum.MovementEntry,
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			Date:      now,
			UserID:    actor.ID,
			Origin:    OriginBulkEntry,
			Notes:     notes,
		}
		if err := applyMovement(products, &mv); err != nil {
			return nil, err
		}
		recorded = append(recorded, mv)
	}
	if len(recorded) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "items", Message: "No quantities to register"}})
	}

	movements := s.state.movements
	for _, mv := range recorded {
		movements = prepend(movements, mv)
	}
	err = s.commit(ctx, map[string]any{
		repository.KeyProducts:  products,
		repository.KeyMovements: movements,
	})
	if err != nil {
		return nil, err
	}
	s.state.products = products
	s.state.movements = movements

	for range recorded {
		s.metrics.ObserveMovement(enum.MovementEntry.String())
	}
	s.metrics.SetUnitsInStock(totalUnits(products))
	s.logger.Info("bulk stock entry recorded", "lines", len(recorded), "user_id", actor.ID)
	return recorded, nil
}

// applyMovement resolves the movement's variant in products and applies its delta in place
func applyMovement(products []entity.Product, mv *entity.StockMovement) error {
	pi := findProduct(products, mv.ProductID)
	if pi < 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Product %s", mv.ProductID))
	}
	vi := products[pi].FindVariant(mv.VariantID)
	if vi < 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Variant %s", mv.VariantID))
	}
	products[pi].Variants[vi].Stock += mv.Type.Delta(mv.Quantity)
	return nil
}

// prepend returns a new slice with item first, leaving list untouched
func prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}
