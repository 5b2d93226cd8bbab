// Package engine is the pure calculation core of the meeting cost service.
// Every function is a total, side-effect-free function of its arguments: all
// tunables come in through model.Settings and no state is retained between
// calls, so concurrent invocations are safe without locking.
//
// Input policy: malformed numeric input (negative duration or attendee
// count) is clamped to zero. The policy is applied uniformly across every
// function in this package.
package engine

import (
	"math"
	"sort"

	"github.com/cleberrangel/meeting-cost-api/internal/catalog"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

// MeetingCost prices a single meeting. One attendee is the user, billed at
// hourlyRate; the remaining attendees are billed at blendedRate each. A
// meeting with no attendees costs nothing.
//
//	1h, 5 people, you at $100, others at $150 each = 1 × (100 + 4×150) = 700
func MeetingCost(durationHours float64, attendees int, hourlyRate, blendedRate float64) float64 {
	if attendees <= 0 {
		return 0
	}
	durationHours = clampNonNegative(durationHours)
	others := float64(attendees - 1)
	return durationHours * (hourlyRate + others*blendedRate)
}

// MentalTax estimates total hours lost to context switching. Each meeting
// carries a fixed per-meeting refocus cost regardless of its own duration;
// the result is purely count-based.
func MentalTax(meetings []model.Meeting, contextSwitchMinutes float64) float64 {
	contextSwitchMinutes = clampNonNegative(contextSwitchMinutes)
	return float64(len(meetings)) * (contextSwitchMinutes / 60)
}

// EfficiencyScore grades a batch of meetings from 0 to 100. Each meeting
// starts at 100 and loses 20 points per hour beyond the first and 10 points
// per attendee beyond six (the two-pizza rule); both penalties can apply to
// the same meeting and a meeting never scores below 0. The batch score is
// the rounded mean. An empty batch is vacuously perfect.
func EfficiencyScore(meetings []model.Meeting) int {
	if len(meetings) == 0 {
		return 100
	}

	total := 0.0
	for _, m := range meetings {
		score := 100.0

		dur := clampNonNegative(m.DurationInHours)
		if dur > 1 {
			score -= (dur - 1) * 20
		}

		att := m.Attendees
		if att < 0 {
			att = 0
		}
		if att > 6 {
			score -= float64(att-6) * 10
		}

		total += math.Max(0, score)
	}

	return int(math.Floor(total/float64(len(meetings)) + 0.5))
}

// PricedItem is a catalog entry annotated with how many units a given budget
// affords.
type PricedItem struct {
	catalog.Item
	Quantity int `json:"quantity"`
}

// payForXCategories is the reduced set used for the one-per-category
// comparison cards, in fixed emission order.
var payForXCategories = []catalog.Category{
	catalog.CategoryDaily,
	catalog.CategoryBusiness,
	catalog.CategoryLuxury,
	catalog.CategoryTesla,
}

// categorizedCategories is the full set used for the grouped breakdown, in
// fixed emission order.
var categorizedCategories = []catalog.Category{
	catalog.CategoryDaily,
	catalog.CategoryLuxury,
	catalog.CategoryTesla,
	catalog.CategoryHousing,
	catalog.CategoryExtraLuxury,
}

// PayForXComparisons returns at most one priced item per category: the most
// expensive item the budget still affords at least once. Picking the priciest
// affordable item keeps displayed quantities from being absurd ("3 MacBooks"
// instead of "1249 coffees"). Categories with nothing affordable contribute
// nothing.
func PayForXComparisons(totalCost float64) []PricedItem {
	totalCost = clampNonNegative(totalCost)

	out := make([]PricedItem, 0, len(payForXCategories))
	for _, cat := range payForXCategories {
		var best *PricedItem
		for _, it := range catalog.ItemsByCategory(cat) {
			qty := int(math.Floor(totalCost / it.Cost))
			if qty < 1 {
				continue
			}
			if best == nil || it.Cost > best.Cost {
				priced := PricedItem{Item: it, Quantity: qty}
				best = &priced
			}
		}
		if best != nil {
			out = append(out, *best)
		}
	}
	return out
}

// CategoryGroup is one category's affordable items, ordered ascending by
// unit cost.
type CategoryGroup struct {
	Category catalog.Category `json:"category"`
	Items    []PricedItem     `json:"items"`
}

// CategorizedPayForX returns every affordable catalog item grouped by
// category. Groups follow the fixed category sequence; categories with no
// affordable item are omitted entirely. A zero budget yields an empty result.
func CategorizedPayForX(totalCost float64) []CategoryGroup {
	totalCost = clampNonNegative(totalCost)

	out := make([]CategoryGroup, 0, len(categorizedCategories))
	for _, cat := range categorizedCategories {
		var items []PricedItem
		for _, it := range catalog.ItemsByCategory(cat) {
			qty := int(math.Floor(totalCost / it.Cost))
			if qty < 1 {
				continue
			}
			items = append(items, PricedItem{Item: it, Quantity: qty})
		}
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Cost < items[j].Cost
		})
		out = append(out, CategoryGroup{Category: cat, Items: items})
	}
	return out
}

// maxCleanupSuggestions caps the "budget burner" shortlist.
const maxCleanupSuggestions = 5

// CleanupSuggestions flags meetings worth reducing: anything costing more
// than five hours of the user's rate, or any 1h+ meeting with more than ten
// people. Either trigger suffices. The result is sorted by cost descending
// (ties keep input order) and capped at five entries. A non-positive rate
// falls back to the default.
func CleanupSuggestions(meetings []model.Meeting, hourlyRate float64) []model.Meeting {
	if hourlyRate <= 0 {
		hourlyRate = model.DefaultHourlyRate
	}
	costThreshold := hourlyRate * 5

	selected := make([]model.Meeting, 0)
	for _, m := range meetings {
		dur := clampNonNegative(m.DurationInHours)
		if m.Cost > costThreshold || (m.Attendees > 10 && dur >= 1) {
			selected = append(selected, m)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Cost > selected[j].Cost
	})

	if len(selected) > maxCleanupSuggestions {
		selected = selected[:maxCleanupSuggestions]
	}
	return selected
}

// Recost returns a copy of meetings with every Cost recomputed from the
// given settings. The input slice is left untouched so repeated calls with
// the same arguments are bit-identical.
func Recost(meetings []model.Meeting, s model.Settings) []model.Meeting {
	s = s.Normalize()
	out := make([]model.Meeting, len(meetings))
	for i, m := range meetings {
		m.Cost = MeetingCost(m.DurationInHours, m.Attendees, s.HourlyRate, s.BlendedHourlyRate)
		out[i] = m
	}
	return out
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
