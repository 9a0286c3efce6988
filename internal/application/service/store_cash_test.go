package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sellOnce adds a one-variant product at price and sells a single unit of it
func sellOnce(t *testing.T, s *testStore, sku string, price entity.Money) *entity.Sale {
	t.Helper()
	ctx := context.Background()
	p, err := s.AddProduct(ctx, pricedProduct(sku, price, 5))
	require.NoError(t, err)
	sale, err := s.CreateSale(ctx, []SaleLine{{ProductID: p.ID, VariantID: p.Variants[0].ID, Quantity: 1}})
	require.NoError(t, err)
	return sale
}

func TestDailyCashTotal(t *testing.T) {
	s := newTestStore(t)
	s.login(t, adminEmail)

	assert.Equal(t, entity.Money(0), s.DailyCashTotal())

	sellOnce(t, s, "T-100", 10000)
	sellOnce(t, s, "T-250", 25000)

	assert.Equal(t, entity.Money(35000), s.DailyCashTotal())
	assert.Equal(t, "350.00", s.DailyCashTotal().String())
	assert.Equal(t, s.DailyCashTotal(), s.DailyCashTotal())
}

func TestDailyCashTotal_OnlyToday(t *testing.T) {
	s := newTestStore(t)
	s.login(t, adminEmail)

	sellOnce(t, s, "T-OLD", 50000)
	s.clock.Advance(24 * time.Hour)
	assert.Equal(t, entity.Money(0), s.DailyCashTotal())

	sellOnce(t, s, "T-NEW", 7000)
	assert.Equal(t, entity.Money(7000), s.DailyCashTotal())
}

func TestDailyCashTotal_LateEveningBelongsToLocalDay(t *testing.T) {
	s := newTestStore(t)
	s.login(t, adminEmail)

	// 23:30 local is already the next day in UTC
	s.clock.t = time.Date(2024, 3, 15, 23, 30, 0, 0, s.loc)
	sellOnce(t, s, "T-LATE", 12345)

	s.clock.t = time.Date(2024, 3, 15, 9, 0, 0, 0, s.loc)
	assert.Equal(t, entity.Money(12345), s.DailyCashTotal())
}

func TestTodayCash(t *testing.T) {
	s := newTestStore(t)
	s.login(t, cashierEmail)
	sellOnce(t, s, "T-100", 10000)

	day := s.TodayCash()
	assert.Equal(t, "2024-03-15", day.Date)
	assert.Equal(t, entity.Money(10000), day.CashTotal)
	assert.Nil(t, day.CashClose)

	cc, err := s.CloseCash(context.Background(), 10000, "")
	require.NoError(t, err)

	day = s.TodayCash()
	require.NotNil(t, day.CashClose)
	assert.Equal(t, cc.ID, day.CashClose.ID)
	assert.Equal(t, day.CashTotal, day.CashClose.SystemAmount)

	// the returned close is a copy
	day.CashClose.Notes = "edited"
	assert.Empty(t, s.CashCloseForDate("2024-03-15").Notes)
}

func TestCloseCash_ExactMatch(t *testing.T) {
	s := newTestStore(t)
	s.login(t, cashierEmail)
	sellOnce(t, s, "T-100", 10000)

	system := s.DailyCashTotal()
	cc, err := s.CloseCash(context.Background(), system, "all good")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", cc.Date)
	assert.Equal(t, system, cc.ReportedAmount)
	assert.Equal(t, system, cc.SystemAmount)
	assert.Equal(t, entity.Money(0), cc.Difference)
	assert.True(t, cc.Balanced())
	assert.Equal(t, "u3", cc.UserID)
	assert.Equal(t, "all good", cc.Notes)
	assert.True(t, cc.FullTimestamp.Equal(s.clock.Now()))
}

func TestCloseCash_Difference(t *testing.T) {
	s := newTestStore(t)
	s.login(t, cashierEmail)
	sellOnce(t, s, "T-100", 10000)

	cc, err := s.CloseCash(context.Background(), 9050, "")
	require.NoError(t, err)
	assert.Equal(t, entity.Money(-950), cc.Difference)
	assert.False(t, cc.Balanced())
}

func TestCloseCash_OncePerBusinessDate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.login(t, cashierEmail)

	_, err := s.CloseCash(ctx, 0, "")
	require.NoError(t, err)

	_, err = s.CloseCash(ctx, 0, "again")
	appErr := assertAppError(t, err, http.StatusConflict)
	assert.Equal(t, "Cash is already closed for 2024-03-15", appErr.Message)
	assert.Len(t, s.CashCloses(), 1)

	s.clock.Advance(24 * time.Hour)
	next, err := s.CloseCash(ctx, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-16", next.Date)

	closes := s.CashCloses()
	require.Len(t, closes, 2)
	assert.Equal(t, "2024-03-16", closes[0].Date, "most recent first")
	assert.NotNil(t, s.CashCloseForDate("2024-03-15"))
	assert.Nil(t, s.CashCloseForDate("2024-03-14"))
}

func TestCloseCash_Rejections(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CloseCash(context.Background(), 100, "")
	assertAppError(t, err, http.StatusUnauthorized)

	s.login(t, cashierEmail)
	_, err = s.CloseCash(context.Background(), -1, "")
	assertAppError(t, err, http.StatusUnprocessableEntity)
	assert.Empty(t, s.CashCloses())
}
