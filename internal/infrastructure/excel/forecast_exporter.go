// Package excel exports analytics reports as .xlsx workbooks.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/atolyeos/atolye-api/internal/application/dto"
)

// ForecastExporter renders the stock forecast as a spreadsheet for the
// purchasing side of the workshop.
type ForecastExporter struct{}

// NewForecastExporter builds the exporter.
func NewForecastExporter() *ForecastExporter {
	return &ForecastExporter{}
}

const forecastSheet = "Stok Tahmini"

// Export writes one row per problem material plus a header carrying the
// pending-order count.
func (e *ForecastExporter) Export(report *dto.StockForecastDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(forecastSheet)
	if err != nil {
		return nil, fmt.Errorf("excel: create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: drop default sheet: %w", err)
	}

	header := []any{"Malzeme", "Mevcut Stok", "Bekleyen İhtiyaç", "Öngörülen Stok", "Min. Seviye", "Durum"}
	if err := f.SetSheetRow(forecastSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: write header: %w", err)
	}
	if err := f.SetCellValue(forecastSheet, "H1", fmt.Sprintf("Bekleyen sipariş: %d", report.PendingOrdersCount)); err != nil {
		return nil, fmt.Errorf("excel: write order count: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: create header style: %w", err)
	}
	if err := f.SetCellStyle(forecastSheet, "A1", "H1", bold); err != nil {
		return nil, fmt.Errorf("excel: style header: %w", err)
	}

	for i, row := range report.Forecast {
		values := []any{
			row.MaterialName,
			row.CurrentStock.InexactFloat64(),
			row.ReservedForPending.InexactFloat64(),
			row.ProjectedStock.InexactFloat64(),
			row.MinStockLevel.InexactFloat64(),
			row.Status,
		}
		anchor := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(forecastSheet, anchor, &values); err != nil {
			return nil, fmt.Errorf("excel: write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(forecastSheet, "A", "A", 30); err != nil {
		return nil, fmt.Errorf("excel: set column width: %w", err)
	}
	if err := f.SetColWidth(forecastSheet, "B", "F", 16); err != nil {
		return nil, fmt.Errorf("excel: set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
