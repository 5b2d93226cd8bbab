package client

import (
	"context"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/cleberrangel/meeting-cost-api/internal/logger"
)

const maxOccurrencesPerEvent = 1000

// occurrence is one concrete instance of an event inside the lookback
// window, after recurrence expansion.
type occurrence struct {
	UID       string
	Summary   string
	Start     time.Time
	End       time.Time
	AllDay    bool
	Attendees int
	Recurring bool
}

// expandEvents expands parsed events into concrete occurrences within
// [windowStart, windowEnd]. Non-recurring events pass through when they
// intersect the window; RRULE events are expanded with EXDATE removal and
// RECURRENCE-ID overrides applied.
func expandEvents(ctx context.Context, events []parsedEvent, windowStart, windowEnd time.Time) []occurrence {
	baseByUID := make(map[string][]parsedEvent)
	overridesByUID := make(map[string][]parsedEvent)

	for _, ev := range events {
		if ev.IsOverride && ev.Recurrence != nil {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
		} else {
			baseByUID[ev.UID] = append(baseByUID[ev.UID], ev)
		}
	}

	out := make([]occurrence, 0, len(events))

	for uid, baseEvents := range baseByUID {
		overrides := overridesByUID[uid]
		for _, ev := range baseEvents {
			if ev.RawRRule == "" {
				out = append(out, expandSingle(ev, overrides, windowStart, windowEnd)...)
				continue
			}
			occs, hitCap := expandRecurring(ctx, ev, overrides, windowStart, windowEnd)
			if hitCap {
				logger.Get(ctx).Warn().
					Str("uid", uid).
					Int("cap", maxOccurrencesPerEvent).
					Msg("Expansão de recorrência truncada pelo limite")
			}
			out = append(out, occs...)
		}
	}

	return out
}

func expandSingle(ev parsedEvent, overrides []parsedEvent, windowStart, windowEnd time.Time) []occurrence {
	if !rangesOverlap(ev.Start, ev.End, windowStart, windowEnd) {
		return nil
	}

	start, end := ev.Start, ev.End
	if o, ok := findOverride(overrides, start); ok {
		ev = o
		start, end = o.Start, o.End
	}

	return []occurrence{makeOccurrence(ev, start, end, false)}
}

func expandRecurring(ctx context.Context, ev parsedEvent, overrides []parsedEvent, windowStart, windowEnd time.Time) ([]occurrence, bool) {
	out := make([]occurrence, 0)

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		logger.Get(ctx).Warn().
			Err(err).
			Str("uid", ev.UID).
			Str("rrule", ev.RawRRule).
			Msg("RRULE inválida, evento ignorado")
		return out, false
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	rangeStart := windowStart.In(ev.Start.Location())
	rangeEnd := windowEnd.In(ev.Start.Location())
	occTimes := set.Between(rangeStart, rangeEnd, true)

	hitCap := false
	if len(occTimes) > maxOccurrencesPerEvent {
		occTimes = occTimes[:maxOccurrencesPerEvent]
		hitCap = true
	}

	dur := ev.End.Sub(ev.Start)
	for _, occStart := range occTimes {
		occEnd := occStart.Add(dur)

		instEv := ev
		start, end := occStart, occEnd
		if o, ok := findOverride(overrides, occStart); ok {
			instEv = o
			start, end = o.Start, o.End
		}

		out = append(out, makeOccurrence(instEv, start, end, true))
	}

	return out, hitCap
}

func findOverride(overrides []parsedEvent, baseStart time.Time) (parsedEvent, bool) {
	for _, ov := range overrides {
		if ov.Recurrence == nil {
			continue
		}
		if ov.Recurrence.In(baseStart.Location()).Equal(baseStart) {
			return ov, true
		}
	}
	return parsedEvent{}, false
}

func makeOccurrence(ev parsedEvent, start, end time.Time, recurring bool) occurrence {
	return occurrence{
		UID:       ev.UID,
		Summary:   ev.Summary,
		Start:     start,
		End:       end,
		AllDay:    ev.AllDay,
		Attendees: ev.Attendees,
		Recurring: recurring,
	}
}

func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.Before(bStart) {
		return false
	}
	if bEnd.Before(aStart) {
		return false
	}
	return true
}
