package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lumaclean/wfm-backend-go/internal/domain/billing"
)

type ExportService struct {
	billing billing.Service
}

func NewExportService(billingSvc billing.Service) *ExportService {
	return &ExportService{billing: billingSvc}
}

var reportHeaders = []string{
	"Cantiere", "Tipo", "Attività", "Ore effettive",
	"Costo manodopera", "Costo biancheria", "Costo prodotti",
	"Fatturato", "Margine",
}

// MonthlyReportXLSX renders one monthly billing report as a workbook: one
// row per site plus a totals row.
func (s *ExportService) MonthlyReportXLSX(ctx context.Context, year, month int) ([]byte, error) {
	report, err := s.billing.BuildMonthlyReport(ctx, year, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := fmt.Sprintf("Report %04d-%02d", year, month)
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	last, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	f.SetCellStyle(sheet, "A1", last, headerStyle)

	var totals billing.Row
	for i, row := range report.Rows {
		values := []interface{}{
			row.Name,
			row.Type,
			row.TotalActivities,
			row.TotalEffectiveMinutes / 60,
			row.LaborCost,
			row.ConsumablesCost,
			row.ProductsCost,
			row.TotalRevenue,
			row.Margin,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}

		totals.TotalActivities += row.TotalActivities
		totals.TotalEffectiveMinutes += row.TotalEffectiveMinutes
		totals.LaborCost += row.LaborCost
		totals.ConsumablesCost += row.ConsumablesCost
		totals.ProductsCost += row.ProductsCost
		totals.TotalRevenue += row.TotalRevenue
		totals.Margin += row.Margin
	}

	totalsRow := len(report.Rows) + 2
	totalValues := []interface{}{
		"Totale",
		"",
		totals.TotalActivities,
		totals.TotalEffectiveMinutes / 60,
		totals.LaborCost,
		totals.ConsumablesCost,
		totals.ProductsCost,
		totals.TotalRevenue,
		totals.Margin,
	}
	for col, v := range totalValues {
		cell, _ := excelize.CoordinatesToCellName(col+1, totalsRow)
		f.SetCellValue(sheet, cell, v)
	}
	first, _ := excelize.CoordinatesToCellName(1, totalsRow)
	lastTotal, _ := excelize.CoordinatesToCellName(len(totalValues), totalsRow)
	f.SetCellStyle(sheet, first, lastTotal, headerStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
