package engine

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

func genMeeting() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(-2, 8),
		gen.IntRange(-3, 30),
	).Map(func(values []interface{}) model.Meeting {
		return model.Meeting{
			DurationInHours: values[0].(float64),
			Attendees:       values[1].(int),
		}
	})
}

func genMeetings() gopter.Gen {
	return gen.SliceOf(genMeeting())
}

// TestCostProperties checks the structural guarantees of the pricing
// formula: non-negativity, the empty-room rule and monotonicity.
func TestCostProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("cost is never negative", prop.ForAll(
		func(duration float64, attendees int, rate, blended float64) bool {
			return MeetingCost(duration, attendees, rate, blended) >= 0
		},
		gen.Float64Range(-5, 10),
		gen.IntRange(-5, 50),
		gen.Float64Range(1, 1000),
		gen.Float64Range(1, 1000),
	))

	properties.Property("no attendees means no cost", prop.ForAll(
		func(duration float64, attendees int) bool {
			if attendees > 0 {
				attendees = -attendees
			}
			return MeetingCost(duration, attendees, 100, 175) == 0
		},
		gen.Float64Range(0, 10),
		gen.IntRange(0, 50),
	))

	properties.Property("cost grows with duration", prop.ForAll(
		func(duration float64, attendees int) bool {
			base := MeetingCost(duration, attendees, 100, 175)
			longer := MeetingCost(duration+1, attendees, 100, 175)
			return longer >= base
		},
		gen.Float64Range(0, 10),
		gen.IntRange(1, 50),
	))

	properties.Property("cost grows with attendees", prop.ForAll(
		func(duration float64, attendees int) bool {
			base := MeetingCost(duration, attendees, 100, 175)
			bigger := MeetingCost(duration, attendees+1, 100, 175)
			return bigger >= base
		},
		gen.Float64Range(0, 10),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestScoreAndTaxProperties checks the bounds of the efficiency score and
// the count-based nature of the mental tax.
func TestScoreAndTaxProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("efficiency score stays within 0..100", prop.ForAll(
		func(meetings []model.Meeting) bool {
			score := EfficiencyScore(meetings)
			return score >= 0 && score <= 100
		},
		genMeetings(),
	))

	properties.Property("mental tax depends only on count", prop.ForAll(
		func(meetings []model.Meeting, minutes float64) bool {
			got := MentalTax(meetings, minutes)
			want := float64(len(meetings)) * (minutes / 60)
			return math.Abs(got-want) < 1e-9
		},
		genMeetings(),
		gen.Float64Range(0, 120),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestComparisonProperties checks the affordability invariants of the
// comparison builders for arbitrary budgets.
func TestComparisonProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every comparison is affordable at least once", prop.ForAll(
		func(budget float64) bool {
			for _, item := range PayForXComparisons(budget) {
				if item.Quantity < 1 || item.Cost > budget {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 3000000),
	))

	properties.Property("categorized items are affordable and ascending", prop.ForAll(
		func(budget float64) bool {
			for _, group := range CategorizedPayForX(budget) {
				if len(group.Items) == 0 {
					return false
				}
				for i, item := range group.Items {
					if item.Quantity < 1 || item.Cost > budget {
						return false
					}
					if i > 0 && item.Cost < group.Items[i-1].Cost {
						return false
					}
				}
			}
			return true
		},
		gen.Float64Range(0, 3000000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestCleanupProperties checks the shortlist rules: cap, ordering and that
// every flagged meeting actually satisfies a trigger.
func TestCleanupProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("shortlist is capped and sorted descending", prop.ForAll(
		func(meetings []model.Meeting, rate float64) bool {
			meetings = Recost(meetings, model.Settings{HourlyRate: rate}.Normalize())
			got := CleanupSuggestions(meetings, rate)
			if len(got) > 5 {
				return false
			}
			for i := 1; i < len(got); i++ {
				if got[i].Cost > got[i-1].Cost {
					return false
				}
			}
			return true
		},
		genMeetings(),
		gen.Float64Range(1, 1000),
	))

	properties.Property("every suggestion satisfies a trigger", prop.ForAll(
		func(meetings []model.Meeting, rate float64) bool {
			meetings = Recost(meetings, model.Settings{HourlyRate: rate}.Normalize())
			threshold := rate * 5
			for _, m := range CleanupSuggestions(meetings, rate) {
				costly := m.Cost > threshold
				oversized := m.Attendees > 10 && m.DurationInHours >= 1
				if !costly && !oversized {
					return false
				}
			}
			return true
		},
		genMeetings(),
		gen.Float64Range(1, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestRecostProperties checks that recosting is idempotent and preserves
// everything but the cost.
func TestRecostProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	settings := model.DefaultSettings()

	properties.Property("recost is idempotent", prop.ForAll(
		func(meetings []model.Meeting) bool {
			once := Recost(meetings, settings)
			twice := Recost(once, settings)
			for i := range once {
				if once[i] != twice[i] {
					return false
				}
			}
			return true
		},
		genMeetings(),
	))

	properties.Property("recost preserves identity fields", prop.ForAll(
		func(meetings []model.Meeting) bool {
			out := Recost(meetings, settings)
			for i := range meetings {
				if out[i].DurationInHours != meetings[i].DurationInHours ||
					out[i].Attendees != meetings[i].Attendees {
					return false
				}
			}
			return true
		},
		genMeetings(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
