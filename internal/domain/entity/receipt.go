package entity

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single sold line on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Variant   string `json:"variant"` // size/color
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	Total     Money  `json:"total"`
}

// Receipt is a value object composed from a sale at print time.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	SaleID      string        `json:"sale_id"`
	Date        string        `json:"date"`
	Cashier     string        `json:"cashier,omitempty"`
	PaymentType string        `json:"payment_type,omitempty"`
	Items       []ReceiptItem `json:"items"`
	ItemCount   int           `json:"item_count"`
	Total       Money         `json:"total"`
}
