package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cleberrangel/meeting-cost-api/internal/engine"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

const (
	summarySheetName  = "Resumo"
	meetingsSheetName = "Reuniões"
)

// ExcelGenerator gera a versão Excel de um relatório de custo de reuniões:
// uma aba de resumo com os agregados e uma aba com o detalhamento por reunião.
type ExcelGenerator struct{}

// NewExcelGenerator cria um novo gerador de Excel
func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

// Generate gera o arquivo Excel em memória a partir do resultado do relatório
func (g *ExcelGenerator) Generate(report engine.Report, meetings []model.Meeting) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Renomeia a sheet padrão para o resumo
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, summarySheetName); err != nil {
		return nil, fmt.Errorf("renomear sheet: %w", err)
	}
	if _, err := f.NewSheet(meetingsSheetName); err != nil {
		return nil, fmt.Errorf("criar sheet de reuniões: %w", err)
	}

	if err := g.writeSummary(f, report); err != nil {
		return nil, fmt.Errorf("escrever resumo: %w", err)
	}
	if err := g.writeMeetings(f, meetings); err != nil {
		return nil, fmt.Errorf("escrever reuniões: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escrever buffer: %w", err)
	}

	return buf, nil
}

func (g *ExcelGenerator) headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
}

// writeSummary escreve a aba de resumo com os agregados do relatório
func (g *ExcelGenerator) writeSummary(f *excelize.File, report engine.Report) error {
	style, err := g.headerStyle(f)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(summarySheetName, "A1", "Métrica"); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheetName, "B1", "Valor"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheetName, "A1", "B1", style); err != nil {
		return err
	}

	rows := []struct {
		label string
		value interface{}
	}{
		{"Total de reuniões", report.MeetingCount},
		{"Reuniões recorrentes", report.RecurringCount},
		{"Horas em reunião", report.TotalHours},
		{"Custo total", report.TotalCost},
		{"Horas de refoco (mental tax)", report.MentalTaxHours},
		{"Custo de refoco", report.MentalTaxCost},
		{"Score de eficiência", report.EfficiencyScore},
		{"Taxa horária", report.Settings.HourlyRate},
		{"Taxa horária combinada", report.Settings.BlendedHourlyRate},
	}

	for i, r := range rows {
		row := i + 2
		if err := f.SetCellValue(summarySheetName, fmt.Sprintf("A%d", row), r.label); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheetName, fmt.Sprintf("B%d", row), r.value); err != nil {
			return err
		}
	}

	// Seção de comparações logo abaixo dos agregados
	base := len(rows) + 3
	if err := f.SetCellValue(summarySheetName, fmt.Sprintf("A%d", base), "Equivalente a"); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheetName, fmt.Sprintf("B%d", base), "Quantidade"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheetName, fmt.Sprintf("A%d", base), fmt.Sprintf("B%d", base), style); err != nil {
		return err
	}
	for i, item := range report.Comparisons {
		row := base + 1 + i
		if err := f.SetCellValue(summarySheetName, fmt.Sprintf("A%d", row), item.Name); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheetName, fmt.Sprintf("B%d", row), item.Quantity); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(summarySheetName, "A", "A", 32); err != nil {
		return err
	}
	return f.SetColWidth(summarySheetName, "B", "B", 20)
}

// writeMeetings escreve o detalhamento por reunião
func (g *ExcelGenerator) writeMeetings(f *excelize.File, meetings []model.Meeting) error {
	style, err := g.headerStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Título", "Início", "Fim", "Duração (h)", "Participantes", "Recorrente", "Custo"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(meetingsSheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(meetingsSheetName, cell, cell, style); err != nil {
			return err
		}
	}

	styleOdd, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"F2F2F2"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "D9D9D9", Style: 1},
			{Type: "top", Color: "D9D9D9", Style: 1},
			{Type: "bottom", Color: "D9D9D9", Style: 1},
			{Type: "right", Color: "D9D9D9", Style: 1},
		},
	})
	styleEven, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFFFFF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "D9D9D9", Style: 1},
			{Type: "top", Color: "D9D9D9", Style: 1},
			{Type: "bottom", Color: "D9D9D9", Style: 1},
			{Type: "right", Color: "D9D9D9", Style: 1},
		},
	})

	const timeLayout = "02/01/2006 15:04"

	for row, m := range meetings {
		excelRow := row + 2

		style := styleEven
		if row%2 == 1 {
			style = styleOdd
		}

		recurring := "Não"
		if m.IsRecurring {
			recurring = "Sim"
		}

		values := []interface{}{
			m.Title,
			m.StartTime.Format(timeLayout),
			m.EndTime.Format(timeLayout),
			m.DurationInHours,
			m.Attendees,
			recurring,
			m.Cost,
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, excelRow)
			if err := f.SetCellValue(meetingsSheetName, cell, value); err != nil {
				return err
			}
			if err := f.SetCellStyle(meetingsSheetName, cell, cell, style); err != nil {
				return err
			}
		}
	}

	for col := 1; col <= len(headers); col++ {
		colName, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(meetingsSheetName, colName, colName, 20); err != nil {
			return err
		}
	}
	return nil
}
