package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSale(150.5, 3)
	m.ObserveSale(49.5, 1)
	m.ObserveRejectedSale()
	m.ObserveMovement("EXIT")
	m.ObserveMovement("EXIT")
	m.ObserveMovement("ENTRY")
	m.ObserveCashClose(-9.5)
	m.SetUnitsInStock(77)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SalesTotal))
	assert.Equal(t, 200.0, testutil.ToFloat64(m.SalesRevenue))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ItemsSold))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InsufficientStock))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StockMovements.WithLabelValues("EXIT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CashCloses))
	assert.Equal(t, -9.5, testutil.ToFloat64(m.CashDifference))
	assert.Equal(t, 77.0, testutil.ToFloat64(m.UnitsInStock))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSale(1, 1)
		m.ObserveRejectedSale()
		m.ObserveMovement("ENTRY")
		m.ObserveCashClose(0)
		m.SetUnitsInStock(1)
	})
}
