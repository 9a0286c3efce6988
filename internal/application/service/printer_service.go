package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	store       *StoreService
	header      entity.ReceiptHeader
	printerType string
	width       int
	logger      *slog.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	store *StoreService,
	header entity.ReceiptHeader,
	printerType string,
	width int,
	logger *slog.Logger,
) *PrinterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrinterService{
		printer:     p,
		store:       store,
		header:      header,
		printerType: printerType,
		width:       width,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// BuildSaleReceipt composes the receipt of a stored sale without printing it.
func (s *PrinterService) BuildSaleReceipt(saleID string) (*entity.Receipt, error) {
	sale, err := s.store.Sale(saleID)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header:      s.header,
		SaleID:      sale.ID,
		Date:        sale.Date.In(s.store.Location()).Format("2006-01-02 15:04"),
		PaymentType: sale.PaymentMethod.String(),
		ItemCount:   sale.ItemCount(),
		Total:       sale.Total,
		Items:       make([]entity.ReceiptItem, 0, len(sale.Items)),
	}
	if cashier, err := s.store.User(sale.UserID); err == nil {
		receipt.Cashier = cashier.Name
	}

	for _, it := range sale.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      it.ProductName,
			Variant:   it.Size + "/" + it.Color,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Subtotal,
		})
	}
	return receipt, nil
}

// PrintSaleReceipt builds and prints the receipt of a sale. On a printer failure the
// receipt is still returned together with the error.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID string) (*entity.Receipt, error) {
	receipt, err := s.BuildSaleReceipt(saleID)
	if err != nil {
		return nil, err
	}

	data := FormatReceipt(receipt, s.width)
	if err := s.printer.Print(ctx, data); err != nil {
		s.logger.Error("printer error", "sale_id", saleID, "error", err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width) // 58mm paper = 32 chars

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	ticket := r.SaleID
	if len(ticket) > 8 {
		ticket = ticket[:8]
	}
	doc.KeyValue("Ticket:", ticket).
		KeyValue("Date:", r.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.PaymentType != "" {
		doc.KeyValue("Payment:", r.PaymentType)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total.String())
		doc.TextF("   %s", item.Variant)
		if item.Quantity > 1 {
			doc.TextF("   @ %s each", item.UnitPrice.String())
		}
	}

	doc.Separator('-')

	doc.KeyValue("Items:", fmt.Sprintf("%d", r.ItemCount))
	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total.String()).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your purchase!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
