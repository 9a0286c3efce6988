package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	SheetTopSellers = "Top sellers"
	SheetCategories = "By category"
	SheetBrands     = "By brand"
	SheetMovements  = "Movements"
)

// ExportService renders reports to spreadsheet workbooks
type ExportService struct {
	store   *StoreService
	reports *ReportService
}

// NewExportService creates a new export service
func NewExportService(store *StoreService, reports *ReportService) *ExportService {
	return &ExportService{store: store, reports: reports}
}

// WriteReportWorkbook writes an xlsx with the report sheets and the movement log to w
func (s *ExportService) WriteReportWorkbook(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// the default sheet becomes the first report
	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, SheetTopSellers); err != nil {
		return err
	}

	perf := s.reports.TopSellers(DefaultTopSellers)
	rows := make([][]interface{}, 0, len(perf))
	for _, p := range perf {
		rows = append(rows, []interface{}{p.Name, string(p.Category), p.Sold, p.Revenue.Float(), p.CurrentStock})
	}
	if err := writeSheet(f, SheetTopSellers, []interface{}{"product", "category", "sold", "revenue", "current_stock"}, rows); err != nil {
		return err
	}

	cats := s.reports.SalesByCategory()
	rows = rows[:0]
	for _, c := range cats {
		rows = append(rows, []interface{}{string(c.Category), c.Revenue.Float()})
	}
	if err := writeSheet(f, SheetCategories, []interface{}{"category", "revenue"}, rows); err != nil {
		return err
	}

	brands := s.reports.SalesByBrand()
	rows = rows[:0]
	for _, b := range brands {
		rows = append(rows, []interface{}{b.Brand, b.Units})
	}
	if err := writeSheet(f, SheetBrands, []interface{}{"brand", "units"}, rows); err != nil {
		return err
	}

	snap := s.store.Snapshot()
	loc := s.store.Location()
	rows = rows[:0]
	for _, mv := range snap.Movements {
		rows = append(rows, []interface{}{
			mv.Date.In(loc).Format("2006-01-02 15:04:05"),
			string(mv.Type), mv.ProductID, mv.VariantID, mv.Quantity, mv.UserID, mv.Origin, mv.Notes,
		})
	}
	header := []interface{}{"date", "type", "product_id", "variant_id", "quantity", "user_id", "origin", "notes"}
	if err := writeSheet(f, SheetMovements, header, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
