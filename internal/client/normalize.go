package client

import (
	"fmt"
	"sort"
	"time"

	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

const untitledMeeting = "Untitled Meeting"

// normalize converte ocorrências expandidas em reuniões do modelo interno.
// Descarta eventos de dia inteiro, sem horários válidos ou com menos de dois
// participantes (bloqueios individuais não são reuniões). O custo fica zerado;
// o motor de cálculo o preenche conforme as configurações do relatório.
func normalize(occurrences []occurrence) []model.Meeting {
	meetings := make([]model.Meeting, 0, len(occurrences))

	for _, occ := range occurrences {
		if occ.AllDay {
			continue
		}
		if occ.Start.IsZero() || occ.End.IsZero() || !occ.End.After(occ.Start) {
			continue
		}
		if occ.Attendees < 2 {
			continue
		}

		title := occ.Summary
		if title == "" {
			title = untitledMeeting
		}

		meetings = append(meetings, model.Meeting{
			ID:              occurrenceID(occ),
			Title:           title,
			StartTime:       occ.Start,
			EndTime:         occ.End,
			DurationInHours: occ.End.Sub(occ.Start).Hours(),
			Attendees:       occ.Attendees,
			IsRecurring:     occ.Recurring,
		})
	}

	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})

	if len(meetings) > MaxMeetings {
		meetings = meetings[:MaxMeetings]
	}

	return meetings
}

// occurrenceID gera um identificador estável por instância: o UID puro para
// eventos únicos e UID + horário de início para instâncias recorrentes.
func occurrenceID(occ occurrence) string {
	if !occ.Recurring {
		return occ.UID
	}
	return fmt.Sprintf("%s_%s", occ.UID, occ.Start.UTC().Format(time.RFC3339))
}
