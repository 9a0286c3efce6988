package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPrinter struct {
	printed [][]byte
	err     error
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.printed = append(p.printed, data)
	return nil
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.err == nil }

var testHeader = entity.ReceiptHeader{StoreName: "Cuatro Vientos", Address: "Av. Siempre Viva 742", Phone: "555-0101"}

func newPrinterFixture(t *testing.T, p *recordingPrinter) (*testStore, *PrinterService, *entity.Sale) {
	t.Helper()
	s := newTestStore(t)
	s.login(t, cashierEmail)
	sale, err := s.CreateSale(context.Background(), []SaleLine{
		{ProductID: "p2", VariantID: "v5", Quantity: 2},
		{ProductID: "p1", VariantID: "v1", Quantity: 1},
	})
	require.NoError(t, err)
	return s, NewPrinterService(p, s.StoreService, testHeader, "network", 32, logger.Discard()), sale
}

func TestBuildSaleReceipt(t *testing.T) {
	_, svc, sale := newPrinterFixture(t, &recordingPrinter{})

	r, err := svc.BuildSaleReceipt(sale.ID)
	require.NoError(t, err)

	assert.Equal(t, testHeader, r.Header)
	assert.Equal(t, "Cajero Principal", r.Cashier)
	assert.Equal(t, "2024-03-15 14:30", r.Date)
	assert.Equal(t, "CASH", r.PaymentType)
	assert.Equal(t, 3, r.ItemCount)
	assert.Equal(t, sale.Total, r.Total)
	require.Len(t, r.Items, 2)
	assert.Equal(t, "M/Negro", r.Items[0].Variant)
	assert.Equal(t, entity.Money(3000000), r.Items[0].Total)
}

func TestBuildSaleReceipt_UnknownSale(t *testing.T) {
	_, svc, _ := newPrinterFixture(t, &recordingPrinter{})
	_, err := svc.BuildSaleReceipt("missing")
	assertAppError(t, err, http.StatusNotFound)
}

func TestPrintSaleReceipt(t *testing.T) {
	p := &recordingPrinter{}
	_, svc, sale := newPrinterFixture(t, p)

	r, err := svc.PrintSaleReceipt(context.Background(), sale.ID)
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Len(t, p.printed, 1)
	assert.True(t, bytes.Contains(p.printed[0], []byte("Remera Basica Logo")))
}

func TestPrintSaleReceipt_PrinterFailureKeepsReceipt(t *testing.T) {
	p := &recordingPrinter{err: errors.New("connection refused")}
	s, svc, sale := newPrinterFixture(t, p)

	r, err := svc.PrintSaleReceipt(context.Background(), sale.ID)
	require.Error(t, err)
	require.NotNil(t, r)
	assert.Equal(t, sale.ID, r.SaleID)
	assert.Len(t, s.Sales(), 1, "the sale is unaffected")
}

func TestFormatReceipt(t *testing.T) {
	r := &entity.Receipt{
		Header:      testHeader,
		SaleID:      "0123456789abcdef",
		Date:        "2024-03-15 14:30",
		Cashier:     "Cajero Principal",
		PaymentType: "CASH",
		Items: []entity.ReceiptItem{
			{Name: "Remera Básica Logo", Variant: "M/Negro", Quantity: 2, UnitPrice: 1500000, Total: 3000000},
			{Name: "Air Force 1", Variant: "40/Blanco", Quantity: 1, UnitPrice: 12000000, Total: 12000000},
		},
		ItemCount: 3,
		Total:     15000000,
	}

	out := string(FormatReceipt(r, 32))

	assert.Contains(t, out, "Cuatro Vientos")
	assert.Contains(t, out, "Ticket:")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "2x Remera Basica Logo")
	assert.Contains(t, out, "   M/Negro")
	assert.Contains(t, out, "@ 15000.00 each")
	assert.NotContains(t, out, "@ 120000.00 each")
	assert.Contains(t, out, "150000.00")
	assert.Contains(t, out, "Thank you for your purchase!")
}

func TestGetStatus(t *testing.T) {
	_, svc, _ := newPrinterFixture(t, &recordingPrinter{})
	status := svc.GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, "network", status.Type)

	none := NewPrinterService(&recordingPrinter{}, nil, testHeader, "none", 32, nil).GetStatus()
	assert.False(t, none.Configured)
}
