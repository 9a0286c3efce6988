package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReportWorkbook(t *testing.T) {
	s := newTestStore(t)
	seedSales(t, s)
	reports := NewReportService(s.StoreService)

	var buf bytes.Buffer
	require.NoError(t, NewExportService(s.StoreService, reports).WriteReportWorkbook(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetTopSellers, SheetCategories, SheetBrands, SheetMovements}, f.GetSheetList())

	top, err := f.GetRows(SheetTopSellers)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"product", "category", "sold", "revenue", "current_stock"}, top[0])
	assert.Equal(t, "Remera Básica Logo", top[1][0])
	assert.Equal(t, "6", top[1][2])

	brands, err := f.GetRows(SheetBrands)
	require.NoError(t, err)
	require.Len(t, brands, 3)
	assert.Equal(t, []string{"Cuatro Vientos", "6"}, brands[1])

	movements, err := f.GetRows(SheetMovements)
	require.NoError(t, err)
	assert.Len(t, movements, 1+4, "header plus one EXIT per sale line")
	assert.Equal(t, "EXIT", movements[1][1])
}

func TestWriteReportWorkbook_Empty(t *testing.T) {
	s := newTestStore(t)

	var buf bytes.Buffer
	require.NoError(t, NewExportService(s.StoreService, NewReportService(s.StoreService)).WriteReportWorkbook(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	cats, err := f.GetRows(SheetCategories)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}
