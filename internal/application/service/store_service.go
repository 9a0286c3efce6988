package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/repository"
	"github.com/cuatrovientos/retail-api/internal/infrastructure/metrics"
	"github.com/cuatrovientos/retail-api/pkg/apperror"
	"github.com/google/uuid"
)

// BusinessDateLayout formats the calendar day sales and cash closes are grouped by
const BusinessDateLayout = "2006-01-02"

// StoreService owns every store collection and the active session.
// All operations are serialized by one mutex; mutations are persisted before
// they become visible.
type StoreService struct {
	mu sync.Mutex

	repo    repository.StateRepository
	users   []entity.User
	brands  []entity.Brand
	state   storeState
	now     func() time.Time
	loc     *time.Location
	newID   func() string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type storeState struct {
	session    entity.Session
	products   []entity.Product
	sales      []entity.Sale
	movements  []entity.StockMovement
	cashCloses []entity.CashClose
}

// StoreOptions configures a StoreService. Zero values fall back to sensible defaults.
type StoreOptions struct {
	Users    []entity.User
	Brands   []entity.Brand
	Location *time.Location
	Clock    func() time.Time
	NewID    func() string
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// NewStoreService creates the store and hydrates it from repo
func NewStoreService(ctx context.Context, repo repository.StateRepository, opts StoreOptions) (*StoreService, error) {
	s := &StoreService{
		repo:    repo,
		users:   append([]entity.User(nil), opts.Users...),
		brands:  append([]entity.Brand(nil), opts.Brands...),
		now:     opts.Clock,
		loc:     opts.Location,
		newID:   opts.NewID,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StoreService) load(ctx context.Context) error {
	targets := []struct {
		key string
		dst any
	}{
		{repository.KeySession, &s.state.session},
		{repository.KeyProducts, &s.state.products},
		{repository.KeySales, &s.state.sales},
		{repository.KeyMovements, &s.state.movements},
		{repository.KeyCashCloses, &s.state.cashCloses},
	}
	for _, t := range targets {
		raw, err := s.repo.Load(ctx, t.key)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", t.key, err)
		}
		if raw == nil {
			continue
		}
		if err := json.Unmarshal(raw, t.dst); err != nil {
			return fmt.Errorf("corrupt %s record: %w", t.key, err)
		}
	}

	// A stored session for a user that no longer exists is dropped.
	if s.state.session.Active() && s.findUser(s.state.session.UserID) == nil {
		s.logger.Warn("discarding session for unknown user", "user_id", s.state.session.UserID)
		s.state.session = entity.Session{}
	}

	s.logger.Info("store loaded",
		"products", len(s.state.products),
		"sales", len(s.state.sales),
		"movements", len(s.state.movements),
		"cash_closes", len(s.state.cashCloses),
	)
	s.metrics.SetUnitsInStock(totalUnits(s.state.products))
	return nil
}

// commit persists the staged collections in one batch. Callers swap the staged
// values into s.state only after commit succeeds.
func (s *StoreService) commit(ctx context.Context, records map[string]any) error {
	batch := make(map[string][]byte, len(records))
	for key, value := range records {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		batch[key] = raw
	}
	if err := s.repo.SaveBatch(ctx, batch); err != nil {
		s.logger.Error("persisting store state failed", "error", err)
		return fmt.Errorf("failed to persist store state: %w", err)
	}
	return nil
}

// requireSession returns the logged-in user or ErrNoSession
func (s *StoreService) requireSession() (*entity.User, error) {
	if !s.state.session.Active() {
		return nil, apperror.ErrNoSession
	}
	u := s.findUser(s.state.session.UserID)
	if u == nil {
		return nil, apperror.ErrNoSession
	}
	return u, nil
}

func (s *StoreService) findUser(id string) *entity.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *StoreService) findBrand(id string) *entity.Brand {
	for i := range s.brands {
		if s.brands[i].ID == id {
			return &s.brands[i]
		}
	}
	return nil
}

func findProduct(products []entity.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func totalUnits(products []entity.Product) int {
	total := 0
	for i := range products {
		total += products[i].TotalStock()
	}
	return total
}

// businessDate returns the calendar day of t in the store's time zone
func (s *StoreService) businessDate(t time.Time) string {
	return t.In(s.loc).Format(BusinessDateLayout)
}

// Today returns the current business date
func (s *StoreService) Today() string {
	return s.businessDate(s.now())
}

// Location returns the store's business time zone
func (s *StoreService) Location() *time.Location {
	return s.loc
}

// Now returns the store clock's current time
func (s *StoreService) Now() time.Time {
	return s.now()
}
