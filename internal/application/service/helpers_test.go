package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/infrastructure/database"
	"github.com/cuatrovientos/retail-api/internal/infrastructure/repository"
	"github.com/cuatrovientos/retail-api/pkg/apperror"
	"github.com/cuatrovientos/retail-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail   = "admin@cuatrovientos.com"
	stockEmail   = "stock@cuatrovientos.com"
	cashierEmail = "caja@cuatrovientos.com"
)

// fakeClock is a settable store clock
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testStore struct {
	*StoreService
	repo  *repository.MemoryStateRepository
	clock *fakeClock
	loc   *time.Location
}

func mustLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)
	return loc
}

// newTestStore builds a store over a seeded in-memory repository. The clock starts at
// 2024-03-15 14:30 local time.
func newTestStore(t *testing.T) *testStore {
	t.Helper()
	repo := repository.NewMemoryStateRepository()
	require.NoError(t, database.SeedDefaultData(context.Background(), repo))
	return openTestStore(t, repo)
}

func openTestStore(t *testing.T, repo *repository.MemoryStateRepository) *testStore {
	t.Helper()
	loc := mustLocation(t)
	clock := &fakeClock{t: time.Date(2024, 3, 15, 14, 30, 0, 0, loc)}
	seq := 0
	store, err := NewStoreService(context.Background(), repo, StoreOptions{
		Users:    database.DefaultUsers(),
		Brands:   database.DefaultBrands(),
		Location: loc,
		Clock:    clock.Now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%03d", seq)
		},
		Logger: logger.Discard(),
	})
	require.NoError(t, err)
	return &testStore{StoreService: store, repo: repo, clock: clock, loc: loc}
}

func (s *testStore) login(t *testing.T, email string) *entity.User {
	t.Helper()
	u, err := s.Login(context.Background(), email)
	require.NoError(t, err)
	return u
}

func (s *testStore) stockOf(t *testing.T, productID, variantID string) int {
	t.Helper()
	p, err := s.Product(productID)
	require.NoError(t, err)
	i := p.FindVariant(variantID)
	require.GreaterOrEqual(t, i, 0, "variant %s not found", variantID)
	return p.Variants[i].Stock
}

func assertAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected AppError, got %v", err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

// pricedProduct is a draft with a single variant, for tests that need exact amounts
func pricedProduct(sku string, price entity.Money, stock int) entity.Product {
	return entity.Product{
		SKU:      sku,
		Name:     "Test " + sku,
		BrandID:  "b3",
		Category: "Clothing",
		Price:    price,
		Cost:     price / 2,
		Active:   true,
		Variants: []entity.Variant{{Size: "m", Color: "Gris", Stock: stock}},
	}
}
