package request

import "github.com/shopspring/decimal"

// CreateSaleRequest represents a counter sale
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CloseCashRequest carries the cash counted in the drawer
type CloseCashRequest struct {
	ReportedAmount decimal.Decimal `json:"reported_amount"`
	Notes          string          `json:"notes" binding:"max=500"`
}
