package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

var demoNow = time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)

func int64Ptr(v int64) *int64 { return &v }

func TestGenerateDemoSeededIsDeterministic(t *testing.T) {
	svc := NewReportService(nil, nil)
	req := model.DemoReportRequest{
		Role: "software-engineer",
		Days: 5,
		Seed: int64Ptr(42),
	}

	a, err := svc.GenerateDemo(context.Background(), req, demoNow)
	if err != nil {
		t.Fatalf("GenerateDemo: %v", err)
	}
	b, err := svc.GenerateDemo(context.Background(), req, demoNow)
	if err != nil {
		t.Fatalf("GenerateDemo: %v", err)
	}

	if a.Meta.TotalMeetings != b.Meta.TotalMeetings {
		t.Fatalf("seeded runs disagree on meeting count: %d vs %d",
			a.Meta.TotalMeetings, b.Meta.TotalMeetings)
	}
	if a.Report.TotalCost != b.Report.TotalCost {
		t.Errorf("seeded runs disagree on total cost: %v vs %v",
			a.Report.TotalCost, b.Report.TotalCost)
	}
	for i := range a.Meetings {
		if a.Meetings[i].ID != b.Meetings[i].ID {
			t.Fatalf("meeting %d differs between seeded runs", i)
		}
	}
}

func TestGenerateDemoUsesRoleRate(t *testing.T) {
	svc := NewReportService(nil, nil)

	// Sem settings, a taxa horária do papel prevalece sobre o padrão.
	result, err := svc.GenerateDemo(context.Background(), model.DemoReportRequest{
		Role: "c-level",
		Days: 5,
		Seed: int64Ptr(7),
	}, demoNow)
	if err != nil {
		t.Fatalf("GenerateDemo: %v", err)
	}

	if result.Report.Settings.HourlyRate != 700 {
		t.Errorf("expected role rate 700, got %v", result.Report.Settings.HourlyRate)
	}
	if result.Meta.Role != "c-level" {
		t.Errorf("expected role in meta, got %q", result.Meta.Role)
	}
}

func TestGenerateDemoExplicitRateWins(t *testing.T) {
	svc := NewReportService(nil, nil)

	result, err := svc.GenerateDemo(context.Background(), model.DemoReportRequest{
		Role:     "c-level",
		Days:     5,
		Seed:     int64Ptr(7),
		Settings: &model.Settings{HourlyRate: 120},
	}, demoNow)
	if err != nil {
		t.Fatalf("GenerateDemo: %v", err)
	}

	if result.Report.Settings.HourlyRate != 120 {
		t.Errorf("expected explicit rate 120, got %v", result.Report.Settings.HourlyRate)
	}
}

func TestGenerateDemoUnknownRole(t *testing.T) {
	svc := NewReportService(nil, nil)

	_, err := svc.GenerateDemo(context.Background(), model.DemoReportRequest{
		Role: "astronaut",
		Days: 5,
	}, demoNow)

	if !errors.Is(err, model.ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestGenerateDemoDefaultsDays(t *testing.T) {
	svc := NewReportService(nil, nil)

	result, err := svc.GenerateDemo(context.Background(), model.DemoReportRequest{
		Role: "product-manager",
		Seed: int64Ptr(1),
	}, demoNow)
	if err != nil {
		t.Fatalf("GenerateDemo: %v", err)
	}

	if result.Meta.Days != DefaultDays {
		t.Errorf("expected default window of %d days, got %d", DefaultDays, result.Meta.Days)
	}
}

func TestRecompute(t *testing.T) {
	svc := NewReportService(nil, nil)
	start := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	meetings := []model.Meeting{
		{
			ID:              "m1",
			Title:           "Weekly",
			StartTime:       start,
			EndTime:         start.Add(time.Hour),
			DurationInHours: 1,
			Attendees:       4,
			// Custo obsoleto do produtor; deve ser recalculado
			Cost: 9999,
		},
	}

	report := svc.Recompute(meetings, nil)
	if report.TotalCost != 625 {
		t.Errorf("expected recomputed cost 625, got %v", report.TotalCost)
	}

	report = svc.Recompute(meetings, &model.Settings{HourlyRate: 50, BlendedHourlyRate: 50})
	if report.TotalCost != 200 {
		t.Errorf("expected recomputed cost 200, got %v", report.TotalCost)
	}

	report = svc.Recompute(nil, nil)
	if report.MeetingCount != 0 || report.TotalCost != 0 {
		t.Errorf("empty batch should produce empty report, got %+v", report)
	}
}
