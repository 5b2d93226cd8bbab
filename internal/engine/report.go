package engine

import (
	"github.com/cleberrangel/meeting-cost-api/internal/catalog"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

// Report is the full dashboard aggregate computed over one batch of
// meetings. It is what the API returns and what the websocket pushes on
// every settings change.
type Report struct {
	MeetingCount   int     `json:"meeting_count"`
	RecurringCount int     `json:"recurring_count"`
	TotalHours     float64 `json:"total_hours"`
	TotalCost      float64 `json:"total_cost"`

	MentalTaxHours float64 `json:"mental_tax_hours"`
	MentalTaxCost  float64 `json:"mental_tax_cost"`

	EfficiencyScore int `json:"efficiency_score"`

	CleanupSuggestions []model.Meeting `json:"cleanup_suggestions"`
	Comparisons        []PricedItem    `json:"comparisons"`
	Categorized        []CategoryGroup `json:"categorized_comparisons"`

	Insights []Insight `json:"insights"`

	Settings   model.Settings     `json:"settings"`
	Benchmarks catalog.Benchmarks `json:"benchmarks"`
}

// Insight is a display notification derived from the computed aggregates.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // ok | warn | alert
}

// BuildReport runs the whole engine over one batch. Costs are recomputed
// from the settings before aggregating, so stale producer-side costs never
// leak into the totals.
func BuildReport(meetings []model.Meeting, s model.Settings) Report {
	s = s.Normalize()
	meetings = Recost(meetings, s)

	var totalHours, totalCost float64
	recurring := 0
	for _, m := range meetings {
		totalHours += clampNonNegative(m.DurationInHours)
		totalCost += m.Cost
		if m.IsRecurring {
			recurring++
		}
	}

	taxHours := MentalTax(meetings, s.ContextSwitchMinutes)
	score := EfficiencyScore(meetings)

	r := Report{
		MeetingCount:       len(meetings),
		RecurringCount:     recurring,
		TotalHours:         totalHours,
		TotalCost:          totalCost,
		MentalTaxHours:     taxHours,
		MentalTaxCost:      taxHours * s.HourlyRate,
		EfficiencyScore:    score,
		CleanupSuggestions: CleanupSuggestions(meetings, s.HourlyRate),
		Comparisons:        PayForXComparisons(totalCost),
		Categorized:        CategorizedPayForX(totalCost),
		Settings:           s,
		Benchmarks:         catalog.DefaultBenchmarks(),
	}
	r.Insights = buildInsights(r)
	return r
}

func buildInsights(r Report) []Insight {
	insights := make([]Insight, 0, 3)

	if r.EfficiencyScore >= r.Settings.EfficiencyScoreThreshold {
		insights = append(insights, Insight{
			Title:       "Healthy meeting structure",
			Description: "Most meetings stay within one hour and six people.",
			Severity:    "ok",
		})
	} else {
		insights = append(insights, Insight{
			Title:       "Meetings run long or large",
			Description: "Long or oversized meetings are dragging the efficiency score down.",
			Severity:    "warn",
		})
	}

	switch n := len(r.CleanupSuggestions); {
	case n == 0:
		insights = append(insights, Insight{
			Title:       "No budget burners",
			Description: "No meeting crossed the cost or size thresholds.",
			Severity:    "ok",
		})
	case n >= maxCleanupSuggestions:
		insights = append(insights, Insight{
			Title:       "Calendar cleanup recommended",
			Description: "Several meetings are strong candidates for shortening or going async.",
			Severity:    "alert",
		})
	default:
		insights = append(insights, Insight{
			Title:       "A few meetings stand out",
			Description: "Some meetings cost noticeably more than the rest of the calendar.",
			Severity:    "warn",
		})
	}

	if r.MeetingCount > 0 && r.MentalTaxHours >= r.TotalHours/2 && r.TotalHours > 0 {
		insights = append(insights, Insight{
			Title:       "High context-switch overhead",
			Description: "Refocus time is a large share of total meeting time; consider batching meetings.",
			Severity:    "warn",
		})
	}

	return insights
}
