package demo

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

// Generation constants. Meetings land on half-hour slots inside business
// hours; slots run 9:00 through 16:30 so even a multi-hour meeting starts
// inside the workday.
const (
	firstStartHour = 9
	lastStartHour  = 16

	// skewLongChance is the probability of a +1h bonus for skew-long roles,
	// applied before rounding.
	skewLongChance = 0.3
	// skewLargeChance is the probability of doubling attendance for
	// skew-large roles.
	skewLargeChance = 0.2
)

// Generate synthesizes a chronologically ordered meeting calendar covering
// the trailing `days` calendar days ending at `now` (inclusive, going
// backward). Weekend days produce no meetings. Randomness comes exclusively
// from the supplied source, so a seeded rng makes the output reproducible.
//
// Generated meetings carry Cost 0; the engine prices them once the caller's
// rate is known.
func Generate(rng *rand.Rand, now time.Time, days int, role Role) ([]model.Meeting, error) {
	if rng == nil {
		return nil, fmt.Errorf("demo: nil random source")
	}
	if days < 0 {
		days = 0
	}
	cfg, ok := profiles[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownRole, role)
	}

	meetings := make([]model.Meeting, 0, days*cfg.MeetingsPerDay.Max)

	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		count := intBetween(rng, cfg.MeetingsPerDay.Min, cfg.MeetingsPerDay.Max)
		for j := 0; j < count; j++ {
			meetings = append(meetings, synthesize(rng, cfg, date, i, j))
		}
	}

	sort.SliceStable(meetings, func(a, b int) bool {
		return meetings[a].StartTime.Before(meetings[b].StartTime)
	})
	return meetings, nil
}

// synthesize draws one meeting for the given day. dayIdx/seq feed the
// deterministic id so every meeting in a batch is unique.
func synthesize(rng *rand.Rand, cfg Profile, date time.Time, dayIdx, seq int) model.Meeting {
	duration := cfg.Duration.Min + rng.Float64()*(cfg.Duration.Max-cfg.Duration.Min)
	if cfg.Duration.SkewLong && rng.Float64() < skewLongChance {
		duration++ // occasional long session
	}
	duration = math.Round(duration*2) / 2 // nearest half hour

	attendees := intBetween(rng, cfg.Attendees.Min, cfg.Attendees.Max)
	if cfg.Attendees.SkewLarge && rng.Float64() < skewLargeChance {
		attendees *= 2 // occasional huge meeting
	}

	isRecurring := rng.Float64() < cfg.RecurringChance
	title := cfg.Titles[rng.Intn(len(cfg.Titles))]

	startHour := intBetween(rng, firstStartHour, lastStartHour)
	startMin := 0
	if rng.Intn(2) == 1 {
		startMin = 30
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), startHour, startMin, 0, 0, date.Location())
	end := start.Add(time.Duration(duration * float64(time.Hour)))

	return model.Meeting{
		ID:              fmt.Sprintf("demo-%d-%d", dayIdx, seq),
		Title:           title,
		StartTime:       start,
		EndTime:         end,
		DurationInHours: duration,
		Attendees:       attendees,
		IsRecurring:     isRecurring,
		Cost:            0,
	}
}

// intBetween draws a uniform integer in [min,max].
func intBetween(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
