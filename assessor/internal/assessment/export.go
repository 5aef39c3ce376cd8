package assessment

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Krimson/cardio-risk/assessor/internal/risk"
	"github.com/Krimson/cardio-risk/assessor/internal/store"
)

const historySheet = "Predictions"

// HistoryExportHeader is the first row of the export workbook.
var HistoryExportHeader = []string{
	"ID",
	"Created At",
	"Age",
	"Height (cm)",
	"Weight (kg)",
	"Gender",
	"Systolic BP",
	"Diastolic BP",
	"Cholesterol",
	"Glucose",
	"Smoking",
	"Alcohol",
	"Physical Activity",
	"BMI",
	"Risk Result",
	"Probability (%)",
	"Risk Tier",
}

var historyColumnWidths = []float64{38, 20, 8, 12, 12, 10, 12, 12, 18, 18, 10, 10, 18, 8, 14, 16, 14}

// GenerateHistoryExport writes records into a single-sheet xlsx workbook.
func GenerateHistoryExport(records []*store.PredictionRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(historySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(HistoryExportHeader))
	for i, title := range HistoryExportHeader {
		header[i] = title
	}
	if err := f.SetSheetRow(historySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(HistoryExportHeader), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(historySheet, "A1", lastCell, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range historyColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(historySheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		row := historyRow(rec)
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(historySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func historyRow(rec *store.PredictionRecord) []interface{} {
	return []interface{}{
		rec.ID,
		rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		rec.Age,
		rec.Height,
		rec.Weight,
		rec.Gender,
		rec.SystolicBP,
		rec.DiastolicBP,
		risk.Level(rec.Cholesterol).Label(),
		risk.Level(rec.Glucose).Label(),
		yesNo(rec.Smoking),
		yesNo(rec.Alcohol),
		yesNo(rec.PhysicalActivity),
		rec.BMI,
		rec.RiskResult,
		rec.Probability,
		risk.Describe(rec.Probability).Label,
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
