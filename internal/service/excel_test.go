package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cleberrangel/meeting-cost-api/internal/engine"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

func sampleMeetings() []model.Meeting {
	start := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	return []model.Meeting{
		{
			ID:              "m1",
			Title:           "Planning",
			StartTime:       start,
			EndTime:         start.Add(time.Hour),
			DurationInHours: 1,
			Attendees:       4,
		},
		{
			ID:              "m2",
			Title:           "Retro",
			StartTime:       start.Add(24 * time.Hour),
			EndTime:         start.Add(25 * time.Hour),
			DurationInHours: 1,
			Attendees:       6,
			IsRecurring:     true,
		},
	}
}

func TestExcelGenerate(t *testing.T) {
	meetings := sampleMeetings()
	report := engine.BuildReport(meetings, model.DefaultSettings())

	buf, err := NewExcelGenerator().Generate(report, engine.Recost(meetings, report.Settings))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("generated file is empty")
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Resumo" || sheets[1] != "Reuniões" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	// Primeira linha do resumo traz a contagem de reuniões
	label, err := f.GetCellValue("Resumo", "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if label != "Total de reuniões" {
		t.Errorf("unexpected first metric label: %q", label)
	}
	count, _ := f.GetCellValue("Resumo", "B2")
	if count != strconv.Itoa(report.MeetingCount) {
		t.Errorf("expected meeting count %d, got %q", report.MeetingCount, count)
	}

	// Aba de reuniões: cabeçalho + uma linha por reunião
	rows, err := f.GetRows("Reuniões")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != len(meetings)+1 {
		t.Fatalf("expected %d rows, got %d", len(meetings)+1, len(rows))
	}
	if rows[1][0] != "Planning" {
		t.Errorf("unexpected first meeting title: %q", rows[1][0])
	}
	if rows[2][5] != "Sim" {
		t.Errorf("recurring meeting should be marked Sim, got %q", rows[2][5])
	}
}

func TestExcelGenerateEmptyReport(t *testing.T) {
	report := engine.BuildReport(nil, model.DefaultSettings())

	buf, err := NewExcelGenerator().Generate(report, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Reuniões")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected only the header row, got %d rows", len(rows))
	}
}
