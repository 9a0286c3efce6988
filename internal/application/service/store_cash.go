package service

import (
	"context"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/cuatrovientos/retail-api/internal/domain/repository"
	"github.com/cuatrovientos/retail-api/pkg/apperror"
)

// DailyCashTotal sums the totals of today's cash sales
func (s *StoreService) DailyCashTotal() entity.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cashTotalFor(s.businessDate(s.now()))
}

func (s *StoreService) cashTotalFor(date string) entity.Money {
	var total entity.Money
	for i := range s.state.sales {
		sale := &s.state.sales[i]
		if sale.PaymentMethod == enum.PaymentCash && s.businessDate(sale.Date) == date {
			total += sale.Total
		}
	}
	return total
}

// CashDay is today's till state read under a single lock
type CashDay struct {
	Date      string            `json:"date"`
	CashTotal entity.Money      `json:"cash_total"`
	CashClose *entity.CashClose `json:"cash_close"`
}

// TodayCash returns the business date, its cash total and its close together
func (s *StoreService) TodayCash() CashDay {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.businessDate(s.now())
	day := CashDay{Date: today, CashTotal: s.cashTotalFor(today)}
	if cc := s.closeFor(today); cc != nil {
		out := *cc
		day.CashClose = &out
	}
	return day
}

// CloseCash records the counted cash for today against the system total.
// Only one close is accepted per business date.
func (s *StoreService) CloseCash(ctx context.Context, reported entity.Money, notes string) (*entity.CashClose, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	if reported < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "reported_amount", Message: "Amount cannot be negative"}})
	}

	now := s.now()
	today := s.businessDate(now)
	if existing := s.closeFor(today); existing != nil {
		return nil, apperror.NewConflictError("Cash is already closed for " + today)
	}

	system := s.cashTotalFor(today)
	cc := entity.CashClose{
		ID:             s.newID(),
		Date:           today,
		FullTimestamp:  now,
		UserID:         user.ID,
		ReportedAmount: reported,
		SystemAmount:   system,
		Difference:     reported - system,
		Notes:          notes,
	}
	closes := prepend(s.state.cashCloses, cc)
	if err := s.commit(ctx, map[string]any{repository.KeyCashCloses: closes}); err != nil {
		return nil, err
	}
	s.state.cashCloses = closes

	s.metrics.ObserveCashClose(cc.Difference.Float())
	s.logger.Info("cash closed",
		"date", cc.Date, "user_id", user.ID,
		"reported", cc.ReportedAmount.String(), "system", cc.SystemAmount.String(), "difference", cc.Difference.String())
	return &cc, nil
}

func (s *StoreService) closeFor(date string) *entity.CashClose {
	for i := range s.state.cashCloses {
		if s.state.cashCloses[i].Date == date {
			return &s.state.cashCloses[i]
		}
	}
	return nil
}

// CashCloseForDate returns the close recorded for a business date, or nil
func (s *StoreService) CashCloseForDate(date string) *entity.CashClose {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cc := s.closeFor(date); cc != nil {
		out := *cc
		return &out
	}
	return nil
}
