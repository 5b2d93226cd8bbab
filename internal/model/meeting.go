package model

import "time"

// Meeting representa um evento de calendário relevante para análise de custo.
// É produzido pelo adaptador de calendário (feed ICS) ou pelo gerador de
// dados demo, e consumido pelo engine de métricas.
type Meeting struct {
	// ID único dentro do lote
	ID string `json:"id"`
	// Título do evento
	Title string `json:"title"`
	// Início e fim (end >= start)
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	// Duração em horas decimais (1.5 = 1h30)
	DurationInHours float64 `json:"duration_in_hours"`
	// Número de participantes (inclui o próprio usuário)
	Attendees int `json:"attendees"`
	// Evento recorrente
	IsRecurring bool `json:"is_recurring"`
	// Custo calculado pelo engine; produtores que não conhecem a taxa
	// inicializam com 0
	Cost float64 `json:"cost"`
}

// Duration retorna a duração derivada dos timestamps, em horas.
// Deve concordar com DurationInHours quando ambos estão preenchidos.
func (m Meeting) Duration() float64 {
	return m.EndTime.Sub(m.StartTime).Hours()
}

// Settings controla o comportamento dos cálculos. É fornecido pelo caller a
// cada computação; o engine não guarda estado próprio.
type Settings struct {
	// Taxa horária do próprio usuário
	HourlyRate float64 `json:"hourly_rate"`
	// Taxa média assumida para os demais participantes
	BlendedHourlyRate float64 `json:"blended_hourly_rate"`
	// Custo de refoco por reunião, em minutos
	ContextSwitchMinutes float64 `json:"context_switch_minutes"`
	// Corte bom/ruim do score de eficiência (apenas exibição)
	EfficiencyScoreThreshold int `json:"efficiency_score_threshold"`
	// Bandas de exibição do meeting tax (% da folha)
	MeetingTaxGoodPercent float64 `json:"meeting_tax_good_percent"`
	MeetingTaxBadPercent  float64 `json:"meeting_tax_bad_percent"`
}

// Defaults das configurações de cálculo
const (
	DefaultHourlyRate               = 100
	DefaultBlendedHourlyRate        = 175
	DefaultContextSwitchMinutes     = 20
	DefaultEfficiencyScoreThreshold = 80
	DefaultMeetingTaxGoodPercent    = 10
	DefaultMeetingTaxBadPercent     = 20
)

// DefaultSettings retorna as configurações padrão
func DefaultSettings() Settings {
	return Settings{
		HourlyRate:               DefaultHourlyRate,
		BlendedHourlyRate:        DefaultBlendedHourlyRate,
		ContextSwitchMinutes:     DefaultContextSwitchMinutes,
		EfficiencyScoreThreshold: DefaultEfficiencyScoreThreshold,
		MeetingTaxGoodPercent:    DefaultMeetingTaxGoodPercent,
		MeetingTaxBadPercent:     DefaultMeetingTaxBadPercent,
	}
}

// Normalize preenche campos zerados com os defaults. Permite que o caller
// envie apenas os campos que quer sobrescrever.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if s.HourlyRate <= 0 {
		s.HourlyRate = def.HourlyRate
	}
	if s.BlendedHourlyRate <= 0 {
		s.BlendedHourlyRate = def.BlendedHourlyRate
	}
	if s.ContextSwitchMinutes <= 0 {
		s.ContextSwitchMinutes = def.ContextSwitchMinutes
	}
	if s.EfficiencyScoreThreshold <= 0 {
		s.EfficiencyScoreThreshold = def.EfficiencyScoreThreshold
	}
	if s.MeetingTaxGoodPercent <= 0 {
		s.MeetingTaxGoodPercent = def.MeetingTaxGoodPercent
	}
	if s.MeetingTaxBadPercent <= 0 {
		s.MeetingTaxBadPercent = def.MeetingTaxBadPercent
	}
	return s
}
