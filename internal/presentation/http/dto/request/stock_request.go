package request

// MovementRequest records a single stock movement
type MovementRequest struct {
	Type      string `json:"type" binding:"required,oneof=ENTRY EXIT ADJUSTMENT"`
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	UserID    string `json:"user_id"`
	Origin    string `json:"origin" binding:"max=100"`
	Notes     string `json:"notes" binding:"max=500"`
}

// StockEntryRequest registers incoming stock for several variants at once
type StockEntryRequest struct {
	Items []StockEntryItem `json:"items" binding:"required,min=1,dive"`
	Notes string           `json:"notes" binding:"max=500"`
}

type StockEntryItem struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// MovementFilterRequest represents movement log filter parameters
type MovementFilterRequest struct {
	Type      string `form:"type"`
	ProductID string `form:"product_id"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
