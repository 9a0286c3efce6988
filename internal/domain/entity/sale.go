package entity

import (
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/enum"
)

// Sale is a completed counter sale. Items carry snapshots taken at sale time.
type Sale struct {
	ID            string             `json:"id"`
	Date          time.Time          `json:"date"`
	UserID        string             `json:"user_id"`
	Items         []SaleItem         `json:"items"`
	Total         Money              `json:"total"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
}

// SaleItem is one line of a sale
type SaleItem struct {
	ProductID   string `json:"product_id"`
	VariantID   string `json:"variant_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unit_price"`
	Subtotal    Money  `json:"subtotal"`
}

// Clone returns a deep copy of the sale
func (s Sale) Clone() Sale {
	s.Items = append([]SaleItem(nil), s.Items...)
	return s
}

// ItemCount sums the quantities of all lines
func (s *Sale) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// StockMovement is an append-only record of a stock change
type StockMovement struct {
	ID        string            `json:"id"`
	Type      enum.MovementType `json:"type"`
	ProductID string            `json:"product_id"`
	VariantID string            `json:"variant_id"`
	Quantity  int               `json:"quantity"`
	Date      time.Time         `json:"date"`
	UserID    string            `json:"user_id"`
	Origin    string            `json:"origin,omitempty"`
	Notes     string            `json:"notes,omitempty"`
}

// CashClose is the end-of-day reconciliation of counted cash against recorded sales
type CashClose struct {
	ID             string    `json:"id"`
	Date           string    `json:"date"` // business date, YYYY-MM-DD
	FullTimestamp  time.Time `json:"full_timestamp"`
	UserID         string    `json:"user_id"`
	ReportedAmount Money     `json:"reported_amount"`
	SystemAmount   Money     `json:"system_amount"`
	Difference     Money     `json:"difference"`
	Notes          string    `json:"notes,omitempty"`
}

// Balanced reports whether the counted cash matched the system total exactly
func (c *CashClose) Balanced() bool {
	return c.Difference == 0
}
