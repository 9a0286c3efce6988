package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSale(t *testing.T) {
	s := newTestStore(t)
	s.login(t, cashierEmail)

	sale, err := s.CreateSale(context.Background(), []SaleLine{
		{ProductID: "p1", VariantID: "v1", Quantity: 2},
		{ProductID: "p2", VariantID: "v5", Quantity: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, s.stockOf(t, "p1", "v1"))
	assert.Equal(t, 12, s.stockOf(t, "p2", "v5"))

	assert.Equal(t, "u3", sale.UserID)
	assert.Equal(t, enum.PaymentCash, sale.PaymentMethod)
	assert.True(t, sale.Date.Equal(s.clock.Now()))
	assert.Equal(t, entity.Money(2*12000000+3*1500000), sale.Total)
	assert.Equal(t, 5, sale.ItemCount())

	require.Len(t, sale.Items, 2)
	first := sale.Items[0]
	assert.Equal(t, "Air Force 1", first.ProductName)
	assert.Equal(t, "40", first.Size)
	assert.Equal(t, "Blanco", first.Color)
	assert.Equal(t, entity.Money(12000000), first.UnitPrice)
	assert.Equal(t, entity.Money(24000000), first.Subtotal)

	movements := s.Movements()
	require.Len(t, movements, 2)
	for _, mv := range movements {
		assert.Equal(t, enum.MovementExit, mv.Type)
		assert.Equal(t, OriginCounterSale, mv.Origin)
		assert.Equal(t, CounterSaleNotes, mv.Notes)
		assert.Equal(t, "u3", mv.UserID)
	}

	sales := s.Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)
}

func TestCreateSale_PriceIsSnapshotted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.login(t, adminEmail)

	sale, err := s.CreateSale(ctx, []SaleLine{{ProductID: "p2", VariantID: "v4", Quantity: 1}})
	require.NoError(t, err)

	p, err := s.Product("p2")
	require.NoError(t, err)
	p.Price = 9999
	p.Name = "Renamed"
	_, err = s.UpdateProduct(ctx, *p)
	require.NoError(t, err)

	stored, err := s.Sale(sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.Money(1500000), stored.Items[0].UnitPrice)
	assert.Equal(t, "Remera Básica Logo", stored.Items[0].ProductName)
}

func TestCreateSale_ExactStockThenSoldOut(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.login(t, cashierEmail)
	require.Equal(t, 5, s.stockOf(t, "p1", "v2"))

	_, err := s.CreateSale(ctx, []SaleLine{{ProductID: "p1", VariantID: "v2", Quantity: 5}})
	require.NoError(t, err)
	assert.Equal(t, 0, s.stockOf(t, "p1", "v2"))

	_, err = s.CreateSale(ctx, []SaleLine{{ProductID: "p1", VariantID: "v2", Quantity: 1}})
	appErr := assertAppError(t, err, http.StatusConflict)
	assert.Equal(t, "Insufficient stock for Air Force 1 (41/Blanco)", appErr.Message)
	assert.Equal(t, 0, s.stockOf(t, "p1", "v2"))
	assert.Len(t, s.Sales(), 1)
}

func TestCreateSale_InsufficientStockIsAtomic(t *testing.T) {
	s := newTestStore(t)
	s.login(t, cashierEmail)
	before := s.Snapshot()

	_, err := s.CreateSale(context.Background(), []SaleLine{
		{ProductID: "p2", VariantID: "v4", Quantity: 1},
		{ProductID: "p1", VariantID: "v3", Quantity: 3},
	})
	assertAppError(t, err, http.StatusConflict)

	after := s.Snapshot()
	assert.Equal(t, before.Products, after.Products)
	assert.Empty(t, after.Movements)
	assert.Empty(t, after.Sales)
}

func TestCreateSale_RepeatedVariantUsesCumulativeQuantity(t *testing.T) {
	s := newTestStore(t)
	s.login(t, cashierEmail)

	_, err := s.CreateSale(context.Background(), []SaleLine{
		{ProductID: "p1", VariantID: "v3", Quantity: 1},
		{ProductID: "p1", VariantID: "v3", Quantity: 2},
	})
	assertAppError(t, err, http.StatusConflict)
	assert.Equal(t, 2, s.stockOf(t, "p1", "v3"))

	sale, err := s.CreateSale(context.Background(), []SaleLine{
		{ProductID: "p1", VariantID: "v3", Quantity: 1},
		{ProductID: "p1", VariantID: "v3", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Len(t, sale.Items, 2)
	assert.Equal(t, 0, s.stockOf(t, "p1", "v3"))
	assert.Len(t, s.Movements(), 2)
}

func TestCreateSale_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		lines []SaleLine
		code  int
	}{
		{"empty cart", nil, http.StatusUnprocessableEntity},
		{"zero quantity", []SaleLine{{ProductID: "p1", VariantID: "v1", Quantity: 0}}, http.StatusUnprocessableEntity},
		{"negative quantity", []SaleLine{{ProductID: "p1", VariantID: "v1", Quantity: -2}}, http.StatusUnprocessableEntity},
		{"unknown product", []SaleLine{
			{ProductID: "p1", VariantID: "v1", Quantity: 1},
			{ProductID: "p7", VariantID: "v1", Quantity: 1},
		}, http.StatusNotFound},
		{"unknown variant", []SaleLine{{ProductID: "p2", VariantID: "v1", Quantity: 1}}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			s.login(t, cashierEmail)

			_, err := s.CreateSale(context.Background(), tt.lines)
			assertAppError(t, err, tt.code)
			assert.Equal(t, 10, s.stockOf(t, "p1", "v1"))
			assert.Empty(t, s.Sales())
			assert.Empty(t, s.Movements())
		})
	}
}

func TestCreateSale_InactiveProduct(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Product("p1")
	require.NoError(t, err)
	p.Active = false
	_, err = s.UpdateProduct(context.Background(), *p)
	require.NoError(t, err)
	s.login(t, cashierEmail)

	_, err = s.CreateSale(context.Background(), []SaleLine{{ProductID: "p1", VariantID: "v1", Quantity: 1}})
	assertAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, 10, s.stockOf(t, "p1", "v1"))
	assert.Empty(t, s.Sales())
	assert.Empty(t, s.Movements())
}

func TestCreateSale_RequiresSession(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateSale(context.Background(), []SaleLine{{ProductID: "p1", VariantID: "v1", Quantity: 1}})
	assertAppError(t, err, http.StatusUnauthorized)
}

func TestCreateSale_PersistFailureChangesNothing(t *testing.T) {
	s := newTestStore(t)
	s.login(t, cashierEmail)
	s.repo.FailNext = errors.New("connection refused")

	_, err := s.CreateSale(context.Background(), []SaleLine{{ProductID: "p1", VariantID: "v1", Quantity: 1}})
	require.Error(t, err)

	assert.Equal(t, 10, s.stockOf(t, "p1", "v1"))
	assert.Empty(t, s.Sales())
	assert.Empty(t, s.Movements())

	reopened := openTestStore(t, s.repo)
	assert.Equal(t, 10, reopened.stockOf(t, "p1", "v1"))
	assert.Empty(t, reopened.Sales())
}

func TestCreateSale_ConcurrentSalesNeverOversell(t *testing.T) {
	s := newTestStore(t)
	s.login(t, cashierEmail)

	const attempts = 20
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			_, err := s.CreateSale(context.Background(), []SaleLine{{ProductID: "p1", VariantID: "v1", Quantity: 1}})
			results <- err
		}()
	}

	succeeded := 0
	for i := 0; i < attempts; i++ {
		if err := <-results; err == nil {
			succeeded++
		} else {
			assertAppError(t, err, http.StatusConflict)
		}
	}
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, s.stockOf(t, "p1", "v1"))
	assert.Len(t, s.Sales(), 10)
}
