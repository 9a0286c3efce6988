package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the store's prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	SalesTotal        prometheus.Counter
	SalesRevenue      prometheus.Counter
	ItemsSold         prometheus.Counter
	InsufficientStock prometheus.Counter
	StockMovements    *prometheus.CounterVec
	CashCloses        prometheus.Counter
	CashDifference    prometheus.Gauge
	UnitsInStock      prometheus.Gauge
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SalesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retail",
			Name:      "sales_total",
			Help:      "Completed counter sales.",
		}),
		SalesRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retail",
			Name:      "sales_revenue",
			Help:      "Revenue from completed sales, in currency units.",
		}),
		ItemsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retail",
			Name:      "items_sold_total",
			Help:      "Units sold across all sales.",
		}),
		InsufficientStock: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retail",
			Name:      "sales_rejected_insufficient_stock_total",
			Help:      "Sales rejected because a variant lacked stock.",
		}),
		StockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retail",
			Name:      "stock_movements_total",
			Help:      "Stock movements recorded, by type.",
		}, []string{"type"}),
		CashCloses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retail",
			Name:      "cash_closes_total",
			Help:      "Daily cash closes recorded.",
		}),
		CashDifference: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "retail",
			Name:      "cash_close_difference",
			Help:      "Reported minus system cash at the last close, in currency units.",
		}),
		UnitsInStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "retail",
			Name:      "units_in_stock",
			Help:      "Units across all variants after the last stock change.",
		}),
	}
	reg.MustRegister(
		m.SalesTotal, m.SalesRevenue, m.ItemsSold, m.InsufficientStock,
		m.StockMovements, m.CashCloses, m.CashDifference, m.UnitsInStock,
	)
	return m
}

func (m *Metrics) ObserveSale(revenue float64, items int) {
	if m == nil {
		return
	}
	m.SalesTotal.Inc()
	m.SalesRevenue.Add(revenue)
	m.ItemsSold.Add(float64(items))
}

func (m *Metrics) ObserveRejectedSale() {
	if m == nil {
		return
	}
	m.InsufficientStock.Inc()
}

func (m *Metrics) ObserveMovement(movementType string) {
	if m == nil {
		return
	}
	m.StockMovements.WithLabelValues(movementType).Inc()
}

func (m *Metrics) ObserveCashClose(difference float64) {
	if m == nil {
		return
	}
	m.CashCloses.Inc()
	m.CashDifference.Set(difference)
}

func (m *Metrics) SetUnitsInStock(units int) {
	if m == nil {
		return
	}
	m.UnitsInStock.Set(float64(units))
}
