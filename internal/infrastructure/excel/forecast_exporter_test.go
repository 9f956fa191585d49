package excel_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/infrastructure/excel"
)

func TestForecastExport_RendersWorkbook(t *testing.T) {
	report := &dto.StockForecastDTO{
		PendingOrdersCount: 3,
		Forecast: []dto.MaterialForecastDTO{
			{
				MaterialName:       "DKP Sac",
				CurrentStock:       decimal.NewFromInt(60),
				ReservedForPending: decimal.NewFromInt(80),
				ProjectedStock:     decimal.NewFromInt(-20),
				MinStockLevel:      decimal.NewFromInt(10),
				Status:             "CRITICAL_SHORTAGE",
			},
			{
				MaterialName:       "Kilit",
				CurrentStock:       decimal.NewFromInt(8),
				ReservedForPending: decimal.NewFromInt(5),
				ProjectedStock:     decimal.NewFromInt(3),
				MinStockLevel:      decimal.NewFromInt(10),
				Status:             "CRITICAL_SHORTAGE",
			},
		},
	}

	raw, err := excel.NewForecastExporter().Export(report)
	require.NoError(t, err, "export with header styling must succeed")
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	sheet := "Stok Tahmini"
	a1, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Malzeme", a1)

	h1, err := f.GetCellValue(sheet, "H1")
	require.NoError(t, err)
	assert.Equal(t, "Bekleyen sipariş: 3", h1)

	a2, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "DKP Sac", a2)

	status, err := f.GetCellValue(sheet, "F3")
	require.NoError(t, err)
	assert.Equal(t, "CRITICAL_SHORTAGE", status)
}

func TestForecastExport_EmptyReport(t *testing.T) {
	raw, err := excel.NewForecastExporter().Export(&dto.StockForecastDTO{
		PendingOrdersCount: 0,
		Forecast:           []dto.MaterialForecastDTO{},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, raw, "an empty report still yields a header-only workbook")
}
