package engine

import (
	"math"
	"testing"

	"github.com/cleberrangel/meeting-cost-api/internal/catalog"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

func TestMeetingCost(t *testing.T) {
	tests := []struct {
		name        string
		duration    float64
		attendees   int
		hourlyRate  float64
		blendedRate float64
		want        float64
	}{
		{
			name:        "single attendee bills only own rate",
			duration:    1,
			attendees:   1,
			hourlyRate:  100,
			blendedRate: 175,
			want:        100,
		},
		{
			name:        "five attendees one hour",
			duration:    1,
			attendees:   5,
			hourlyRate:  100,
			blendedRate: 150,
			want:        700,
		},
		{
			name:        "duration scales linearly",
			duration:    2,
			attendees:   5,
			hourlyRate:  100,
			blendedRate: 150,
			want:        1400,
		},
		{
			name:        "zero attendees cost nothing",
			duration:    3,
			attendees:   0,
			hourlyRate:  100,
			blendedRate: 175,
			want:        0,
		},
		{
			name:        "negative attendees cost nothing",
			duration:    1,
			attendees:   -4,
			hourlyRate:  100,
			blendedRate: 175,
			want:        0,
		},
		{
			name:        "negative duration clamps to zero",
			duration:    -2,
			attendees:   5,
			hourlyRate:  100,
			blendedRate: 175,
			want:        0,
		},
		{
			name:        "fractional duration",
			duration:    0.5,
			attendees:   2,
			hourlyRate:  100,
			blendedRate: 175,
			want:        137.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeetingCost(tt.duration, tt.attendees, tt.hourlyRate, tt.blendedRate)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MeetingCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMentalTax(t *testing.T) {
	meetings := func(n int) []model.Meeting {
		out := make([]model.Meeting, n)
		for i := range out {
			out[i] = model.Meeting{DurationInHours: 1, Attendees: 3}
		}
		return out
	}

	tests := []struct {
		name    string
		count   int
		minutes float64
		want    float64
	}{
		{"no meetings no tax", 0, 20, 0},
		{"three meetings at twenty minutes", 3, 20, 1},
		{"six meetings at thirty minutes", 6, 30, 3},
		{"negative minutes clamp to zero", 5, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MentalTax(meetings(tt.count), tt.minutes)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MentalTax() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEfficiencyScore(t *testing.T) {
	tests := []struct {
		name     string
		meetings []model.Meeting
		want     int
	}{
		{
			name:     "empty batch is perfect",
			meetings: nil,
			want:     100,
		},
		{
			name: "short small meeting keeps full score",
			meetings: []model.Meeting{
				{DurationInHours: 1, Attendees: 6},
			},
			want: 100,
		},
		{
			name: "duration penalty",
			meetings: []model.Meeting{
				{DurationInHours: 2, Attendees: 4},
			},
			want: 80,
		},
		{
			name: "attendee penalty",
			meetings: []model.Meeting{
				{DurationInHours: 0.5, Attendees: 8},
			},
			want: 80,
		},
		{
			name: "both penalties stack",
			meetings: []model.Meeting{
				{DurationInHours: 3, Attendees: 10},
			},
			want: 20,
		},
		{
			name: "score floors at zero per meeting",
			meetings: []model.Meeting{
				{DurationInHours: 10, Attendees: 30},
			},
			want: 0,
		},
		{
			name: "mean rounds half up",
			meetings: []model.Meeting{
				{DurationInHours: 1, Attendees: 6},   // 100
				{DurationInHours: 1.5, Attendees: 6}, // 90
			},
			want: 95,
		},
		{
			name: "negative inputs treated as zero",
			meetings: []model.Meeting{
				{DurationInHours: -1, Attendees: -3},
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EfficiencyScore(tt.meetings); got != tt.want {
				t.Errorf("EfficiencyScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPayForXComparisons(t *testing.T) {
	t.Run("zero budget affords nothing", func(t *testing.T) {
		if got := PayForXComparisons(0); len(got) != 0 {
			t.Errorf("expected no items, got %d", len(got))
		}
	})

	t.Run("negative budget affords nothing", func(t *testing.T) {
		if got := PayForXComparisons(-500); len(got) != 0 {
			t.Errorf("expected no items, got %d", len(got))
		}
	})

	t.Run("at most one item per category", func(t *testing.T) {
		got := PayForXComparisons(250000)
		seen := make(map[catalog.Category]bool)
		for _, item := range got {
			if seen[item.Category] {
				t.Errorf("category %q appears twice", item.Category)
			}
			seen[item.Category] = true
		}
	})

	t.Run("picks priciest affordable item", func(t *testing.T) {
		// Budget affords every daily item; the pick must be the most
		// expensive one in the category.
		budget := 100000.0
		got := PayForXComparisons(budget)

		var maxDaily float64
		for _, it := range catalog.ItemsByCategory(catalog.CategoryDaily) {
			if it.Cost <= budget && it.Cost > maxDaily {
				maxDaily = it.Cost
			}
		}

		found := false
		for _, item := range got {
			if item.Category == catalog.CategoryDaily {
				found = true
				if item.Cost != maxDaily {
					t.Errorf("daily pick cost = %v, want %v", item.Cost, maxDaily)
				}
			}
		}
		if !found {
			t.Error("expected a daily category pick")
		}
	})

	t.Run("quantity is floor of budget over cost", func(t *testing.T) {
		for _, item := range PayForXComparisons(5000) {
			want := int(math.Floor(5000 / item.Cost))
			if item.Quantity != want {
				t.Errorf("item %q quantity = %d, want %d", item.Name, item.Quantity, want)
			}
			if item.Quantity < 1 {
				t.Errorf("item %q has quantity below 1", item.Name)
			}
		}
	})
}

func TestCategorizedPayForX(t *testing.T) {
	t.Run("zero budget yields empty result", func(t *testing.T) {
		if got := CategorizedPayForX(0); len(got) != 0 {
			t.Errorf("expected no groups, got %d", len(got))
		}
	})

	t.Run("groups follow fixed category order", func(t *testing.T) {
		order := map[catalog.Category]int{
			catalog.CategoryDaily:       0,
			catalog.CategoryLuxury:      1,
			catalog.CategoryTesla:       2,
			catalog.CategoryHousing:     3,
			catalog.CategoryExtraLuxury: 4,
		}

		got := CategorizedPayForX(2000000)
		last := -1
		for _, group := range got {
			idx, ok := order[group.Category]
			if !ok {
				t.Fatalf("unexpected category %q", group.Category)
			}
			if idx <= last {
				t.Errorf("category %q out of order", group.Category)
			}
			last = idx
		}
	})

	t.Run("items within a group ascend by cost", func(t *testing.T) {
		for _, group := range CategorizedPayForX(500000) {
			for i := 1; i < len(group.Items); i++ {
				if group.Items[i].Cost < group.Items[i-1].Cost {
					t.Errorf("group %q not sorted ascending at index %d", group.Category, i)
				}
			}
		}
	})

	t.Run("small budget omits expensive categories", func(t *testing.T) {
		for _, group := range CategorizedPayForX(50) {
			if group.Category == catalog.CategoryHousing || group.Category == catalog.CategoryTesla {
				t.Errorf("category %q should not be affordable at $50", group.Category)
			}
			if len(group.Items) == 0 {
				t.Errorf("group %q emitted empty", group.Category)
			}
		}
	})
}

func TestCleanupSuggestions(t *testing.T) {
	t.Run("expensive meetings are flagged", func(t *testing.T) {
		meetings := []model.Meeting{
			{ID: "cheap", Cost: 100, DurationInHours: 0.5, Attendees: 3},
			{ID: "pricey", Cost: 600, DurationInHours: 1, Attendees: 4},
		}
		got := CleanupSuggestions(meetings, 100)
		if len(got) != 1 || got[0].ID != "pricey" {
			t.Errorf("expected only the pricey meeting, got %v", got)
		}
	})

	t.Run("large long meetings are flagged regardless of cost", func(t *testing.T) {
		meetings := []model.Meeting{
			{ID: "big", Cost: 10, DurationInHours: 1, Attendees: 11},
		}
		got := CleanupSuggestions(meetings, 100)
		if len(got) != 1 || got[0].ID != "big" {
			t.Errorf("expected the big meeting flagged, got %v", got)
		}
	})

	t.Run("large but short meetings are not flagged", func(t *testing.T) {
		meetings := []model.Meeting{
			{ID: "standup", Cost: 10, DurationInHours: 0.5, Attendees: 15},
		}
		if got := CleanupSuggestions(meetings, 100); len(got) != 0 {
			t.Errorf("expected nothing flagged, got %v", got)
		}
	})

	t.Run("sorted by cost descending and capped at five", func(t *testing.T) {
		meetings := make([]model.Meeting, 8)
		for i := range meetings {
			meetings[i] = model.Meeting{
				ID:              string(rune('a' + i)),
				Cost:            600 + float64(i)*100,
				DurationInHours: 1,
				Attendees:       4,
			}
		}
		got := CleanupSuggestions(meetings, 100)
		if len(got) != 5 {
			t.Fatalf("expected 5 suggestions, got %d", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Cost > got[i-1].Cost {
				t.Errorf("not sorted descending at index %d", i)
			}
		}
		if got[0].Cost != 1300 {
			t.Errorf("top suggestion cost = %v, want 1300", got[0].Cost)
		}
	})

	t.Run("non-positive rate falls back to default", func(t *testing.T) {
		meetings := []model.Meeting{
			{ID: "m", Cost: model.DefaultHourlyRate*5 + 1, DurationInHours: 1, Attendees: 2},
		}
		if got := CleanupSuggestions(meetings, 0); len(got) != 1 {
			t.Errorf("expected fallback threshold to flag the meeting, got %v", got)
		}
	})
}

func TestRecost(t *testing.T) {
	settings := model.Settings{HourlyRate: 100, BlendedHourlyRate: 150}.Normalize()

	t.Run("cost recomputed from settings", func(t *testing.T) {
		meetings := []model.Meeting{
			{DurationInHours: 1, Attendees: 5, Cost: 999999},
		}
		got := Recost(meetings, settings)
		if got[0].Cost != 700 {
			t.Errorf("Cost = %v, want 700", got[0].Cost)
		}
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		meetings := []model.Meeting{
			{DurationInHours: 1, Attendees: 5, Cost: 42},
		}
		_ = Recost(meetings, settings)
		if meetings[0].Cost != 42 {
			t.Errorf("input mutated: Cost = %v", meetings[0].Cost)
		}
	})
}

func TestBuildReport(t *testing.T) {
	settings := model.DefaultSettings()

	t.Run("empty batch", func(t *testing.T) {
		r := BuildReport(nil, settings)
		if r.MeetingCount != 0 || r.TotalCost != 0 || r.TotalHours != 0 {
			t.Errorf("unexpected aggregates for empty batch: %+v", r)
		}
		if r.EfficiencyScore != 100 {
			t.Errorf("EfficiencyScore = %d, want 100", r.EfficiencyScore)
		}
		if len(r.Comparisons) != 0 {
			t.Errorf("expected no comparisons on zero cost")
		}
	})

	t.Run("aggregates add up", func(t *testing.T) {
		meetings := []model.Meeting{
			{DurationInHours: 1, Attendees: 5, IsRecurring: true},
			{DurationInHours: 0.5, Attendees: 2},
		}
		r := BuildReport(meetings, settings)

		if r.MeetingCount != 2 {
			t.Errorf("MeetingCount = %d, want 2", r.MeetingCount)
		}
		if r.RecurringCount != 1 {
			t.Errorf("RecurringCount = %d, want 1", r.RecurringCount)
		}
		if math.Abs(r.TotalHours-1.5) > 1e-9 {
			t.Errorf("TotalHours = %v, want 1.5", r.TotalHours)
		}

		wantCost := MeetingCost(1, 5, settings.HourlyRate, settings.BlendedHourlyRate) +
			MeetingCost(0.5, 2, settings.HourlyRate, settings.BlendedHourlyRate)
		if math.Abs(r.TotalCost-wantCost) > 1e-9 {
			t.Errorf("TotalCost = %v, want %v", r.TotalCost, wantCost)
		}

		wantTax := MentalTax(meetings, settings.ContextSwitchMinutes)
		if math.Abs(r.MentalTaxHours-wantTax) > 1e-9 {
			t.Errorf("MentalTaxHours = %v, want %v", r.MentalTaxHours, wantTax)
		}
		if math.Abs(r.MentalTaxCost-wantTax*settings.HourlyRate) > 1e-9 {
			t.Errorf("MentalTaxCost = %v, want %v", r.MentalTaxCost, wantTax*settings.HourlyRate)
		}
	})

	t.Run("insights always present", func(t *testing.T) {
		r := BuildReport([]model.Meeting{{DurationInHours: 1, Attendees: 3}}, settings)
		if len(r.Insights) < 2 {
			t.Errorf("expected at least 2 insights, got %d", len(r.Insights))
		}
	})
}
