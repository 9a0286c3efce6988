package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/cuatrovientos/retail-api/pkg/apperror"
)

const (
	LowStockThreshold   = 5
	RecentMovementLimit = 10
	DefaultTopSellers   = 5
	UnknownBrand        = "Unknown"
)

// SalesRange is the window of the admin sales summary
type SalesRange string

const (
	RangeDay   SalesRange = "day"
	RangeWeek  SalesRange = "week"
	RangeMonth SalesRange = "month"
	RangeYear  SalesRange = "year"
)

func (r SalesRange) IsValid() bool {
	switch r {
	case RangeDay, RangeWeek, RangeMonth, RangeYear:
		return true
	}
	return false
}

// ReportService derives dashboard and report aggregates from store snapshots
type ReportService struct {
	store *StoreService
}

// NewReportService creates a new report service
func NewReportService(store *StoreService) *ReportService {
	return &ReportService{store: store}
}

// SalesSummary represents the admin sales figures for a period
type SalesSummary struct {
	Range        SalesRange    `json:"range"`
	Revenue      entity.Money  `json:"revenue"`
	Transactions int           `json:"transactions"`
	ItemsSold    int           `json:"items_sold"`
	Chart        []ChartPoint  `json:"chart"`
	Sales        []entity.Sale `json:"sales"`
}

// ChartPoint is one bucket of the revenue chart
type ChartPoint struct {
	Label string       `json:"label"`
	Total entity.Money `json:"total"`
}

// StockSummary represents the warehouse dashboard
type StockSummary struct {
	TotalProducts   int                    `json:"total_products"`
	TotalVariants   int                    `json:"total_variants"`
	UnitsInStock    int                    `json:"units_in_stock"`
	LowStock        []LowStockItem         `json:"low_stock"`
	EntryCount      int                    `json:"entry_count"`
	RecentMovements []entity.StockMovement `json:"recent_movements"`
}

// LowStockItem is a variant below the low-stock threshold
type LowStockItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantID   string `json:"variant_id"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Stock       int    `json:"stock"`
	SoldOut     bool   `json:"sold_out"`
}

// CashierSummary represents the till dashboard
type CashierSummary struct {
	Date       string            `json:"date"`
	Sales      []entity.Sale     `json:"sales"`
	CashTotal  entity.Money      `json:"cash_total"`
	Transacts  int               `json:"transactions"`
	CashClosed *entity.CashClose `json:"cash_close,omitempty"`
}

// ProductPerformance represents per-product sales and stock rotation
type ProductPerformance struct {
	ProductID    string               `json:"product_id"`
	Name         string               `json:"name"`
	Category     enum.ProductCategory `json:"category"`
	Sold         int                  `json:"sold"`
	Revenue      entity.Money         `json:"revenue"`
	CurrentStock int                  `json:"current_stock"`
}

// CategoryRevenue is revenue grouped by product category
type CategoryRevenue struct {
	Category enum.ProductCategory `json:"category"`
	Revenue  entity.Money         `json:"revenue"`
}

// BrandUnits is units sold grouped by brand name
type BrandUnits struct {
	Brand string `json:"brand"`
	Units int    `json:"units"`
}

// Dashboard is the role-specific landing view. Exactly one section is set.
type Dashboard struct {
	Role    enum.Role       `json:"role"`
	Sales   *SalesSummary   `json:"sales,omitempty"`
	Stock   *StockSummary   `json:"stock,omitempty"`
	Cashier *CashierSummary `json:"cashier,omitempty"`
}

// SalesSummary aggregates sales inside the given range, relative to the store clock
func (s *ReportService) SalesSummary(r SalesRange) (*SalesSummary, error) {
	if !r.IsValid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown range %q", r))
	}
	snap := s.store.Snapshot()
	loc := s.store.Location()
	now := s.store.Now().In(loc)

	summary := &SalesSummary{Range: r, Sales: []entity.Sale{}}
	buckets := map[string]*chartBucket{}
	for _, sale := range snap.Sales {
		d := sale.Date.In(loc)
		if !inRange(r, d, now) {
			continue
		}
		summary.Sales = append(summary.Sales, sale)
		summary.Revenue += sale.Total
		summary.Transactions++
		summary.ItemsSold += sale.ItemCount()

		label, start := bucketFor(r, d)
		b, ok := buckets[label]
		if !ok {
			b = &chartBucket{start: start}
			buckets[label] = b
		}
		b.total += sale.Total
	}

	summary.Chart = make([]ChartPoint, 0, len(buckets))
	for label, b := range buckets {
		summary.Chart = append(summary.Chart, ChartPoint{Label: label, Total: b.total})
	}
	sort.Slice(summary.Chart, func(i, j int) bool {
		return buckets[summary.Chart[i].Label].start.Before(buckets[summary.Chart[j].Label].start)
	})
	return summary, nil
}

type chartBucket struct {
	start time.Time
	total entity.Money
}

func inRange(r SalesRange, d, now time.Time) bool {
	switch r {
	case RangeDay:
		return d.Format(BusinessDateLayout) == now.Format(BusinessDateLayout)
	case RangeWeek:
		return !d.Before(now.AddDate(0, 0, -7))
	case RangeMonth:
		return d.Year() == now.Year() && d.Month() == now.Month()
	case RangeYear:
		return d.Year() == now.Year()
	}
	return false
}

// bucketFor groups by hour for a day, by date for a week or month and by month for a year
func bucketFor(r SalesRange, d time.Time) (string, time.Time) {
	switch r {
	case RangeDay:
		start := time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), 0, 0, 0, d.Location())
		return start.Format("15:04"), start
	case RangeYear:
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		return start.Format("January"), start
	default:
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		return start.Format(BusinessDateLayout), start
	}
}

// StockSummary builds the warehouse dashboard
func (s *ReportService) StockSummary() *StockSummary {
	snap := s.store.Snapshot()
	summary := &StockSummary{
		TotalProducts:   len(snap.Products),
		LowStock:        []LowStockItem{},
		RecentMovements: []entity.StockMovement{},
	}
	for _, p := range snap.Products {
		summary.TotalVariants += len(p.Variants)
		for _, v := range p.Variants {
			summary.UnitsInStock += v.Stock
			if v.Stock < LowStockThreshold {
				summary.LowStock = append(summary.LowStock, LowStockItem{
					ProductID:   p.ID,
					ProductName: p.Name,
					VariantID:   v.ID,
					Size:        v.Size,
					Color:       v.Color,
					Stock:       v.Stock,
					SoldOut:     v.Stock <= 0,
				})
			}
		}
	}
	for _, mv := range snap.Movements {
		if mv.Type == enum.MovementEntry {
			summary.EntryCount++
		}
		if (mv.Type == enum.MovementEntry || mv.Type == enum.MovementAdjustment) &&
			len(summary.RecentMovements) < RecentMovementLimit {
			summary.RecentMovements = append(summary.RecentMovements, mv)
		}
	}
	return summary
}

// CashierSummary builds the till dashboard for today
func (s *ReportService) CashierSummary() *CashierSummary {
	snap := s.store.Snapshot()
	today := s.store.businessDate(snap.Taken)
	summary := &CashierSummary{Date: today, Sales: []entity.Sale{}}
	for _, sale := range snap.Sales {
		if s.store.businessDate(sale.Date) != today {
			continue
		}
		summary.Sales = append(summary.Sales, sale)
		if sale.PaymentMethod == enum.PaymentCash {
			summary.CashTotal += sale.Total
		}
	}
	for i := range snap.CashCloses {
		if snap.CashCloses[i].Date == today {
			summary.CashClosed = &snap.CashCloses[i]
			break
		}
	}
	summary.Transacts = len(summary.Sales)
	return summary
}

// ProductPerformance lists every product, sold or not, in catalogue order
func (s *ReportService) ProductPerformance() []ProductPerformance {
	return performance(s.store.Snapshot())
}

func performance(snap Snapshot) []ProductPerformance {
	out := make([]ProductPerformance, len(snap.Products))
	index := make(map[string]int, len(snap.Products))
	for i, p := range snap.Products {
		out[i] = ProductPerformance{
			ProductID:    p.ID,
			Name:         p.Name,
			Category:     p.Category,
			CurrentStock: p.TotalStock(),
		}
		index[p.ID] = i
	}
	for _, sale := range snap.Sales {
		for _, item := range sale.Items {
			if i, ok := index[item.ProductID]; ok {
				out[i].Sold += item.Quantity
				out[i].Revenue += item.Subtotal
			}
		}
	}
	return out
}

// TopSellers returns the n best-selling products by units. Ties keep catalogue order.
func (s *ReportService) TopSellers(n int) []ProductPerformance {
	if n <= 0 {
		n = DefaultTopSellers
	}
	perf := performance(s.store.Snapshot())
	sort.SliceStable(perf, func(i, j int) bool { return perf[i].Sold > perf[j].Sold })
	if len(perf) > n {
		perf = perf[:n]
	}
	return perf
}

// SalesByCategory sums revenue per category over products that sold at least once
func (s *ReportService) SalesByCategory() []CategoryRevenue {
	totals := map[enum.ProductCategory]entity.Money{}
	var order []enum.ProductCategory
	for _, p := range performance(s.store.Snapshot()) {
		if p.Sold <= 0 {
			continue
		}
		if _, seen := totals[p.Category]; !seen {
			order = append(order, p.Category)
		}
		totals[p.Category] += p.Revenue
	}
	out := make([]CategoryRevenue, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryRevenue{Category: c, Revenue: totals[c]})
	}
	return out
}

// SalesByBrand sums units sold per brand name, highest first
func (s *ReportService) SalesByBrand() []BrandUnits {
	snap := s.store.Snapshot()
	brandNames := make(map[string]string, len(snap.Brands))
	for _, b := range snap.Brands {
		brandNames[b.ID] = b.Name
	}
	productBrand := make(map[string]string, len(snap.Products))
	for _, p := range snap.Products {
		productBrand[p.ID] = p.BrandID
	}

	units := map[string]int{}
	for _, sale := range snap.Sales {
		for _, item := range sale.Items {
			brandID, ok := productBrand[item.ProductID]
			if !ok {
				continue
			}
			name, ok := brandNames[brandID]
			if !ok {
				name = UnknownBrand
			}
			units[name] += item.Quantity
		}
	}

	out := make([]BrandUnits, 0, len(units))
	for name, n := range units {
		out = append(out, BrandUnits{Brand: name, Units: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].Brand < out[j].Brand
	})
	return out
}

// Dashboard composes the landing view for the user's role
func (s *ReportService) Dashboard(user *entity.User, r SalesRange) (*Dashboard, error) {
	d := &Dashboard{Role: user.Role}
	switch user.Role {
	case enum.RoleAdmin:
		if r == "" {
			r = RangeDay
		}
		summary, err := s.SalesSummary(r)
		if err != nil {
			return nil, err
		}
		d.Sales = summary
	case enum.RoleStock:
		d.Stock = s.StockSummary()
	case enum.RoleCashier:
		d.Cashier = s.CashierSummary()
	default:
		return nil, apperror.ErrForbidden
	}
	return d, nil
}
