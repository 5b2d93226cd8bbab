package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/cleberrangel/meeting-cost-api/internal/cache"
	"github.com/cleberrangel/meeting-cost-api/internal/client"
	"github.com/cleberrangel/meeting-cost-api/internal/demo"
	"github.com/cleberrangel/meeting-cost-api/internal/engine"
	"github.com/cleberrangel/meeting-cost-api/internal/logger"
	"github.com/cleberrangel/meeting-cost-api/internal/metrics"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

// DefaultDays é a janela de lookback quando o cliente não informa uma.
const DefaultDays = 14

// ReportService orquestra a geração de relatórios de custo de reuniões,
// tanto a partir de feeds ICS reais quanto de dados sintéticos por papel.
type ReportService struct {
	feedClient   *client.Client
	meetingCache *cache.MeetingCache
}

// NewReportService cria um novo serviço de relatórios
func NewReportService(feedClient *client.Client, meetingCache *cache.MeetingCache) *ReportService {
	return &ReportService{
		feedClient:   feedClient,
		meetingCache: meetingCache,
	}
}

// ReportResult contém o relatório computado, as reuniões que o originaram e
// os metadados da resposta.
type ReportResult struct {
	Report   engine.Report
	Meetings []model.Meeting
	Meta     model.Meta
}

// GenerateFromFeed busca reuniões de um feed ICS (com cache em memória por
// URL+janela) e computa o relatório completo.
func (s *ReportService) GenerateFromFeed(ctx context.Context, req model.ReportRequest, now time.Time) (*ReportResult, error) {
	log := logger.Get(ctx)

	days := req.Days
	if days <= 0 {
		days = DefaultDays
	}

	settings := resolveSettings(req.Settings)

	cacheKey := cache.Key(req.FeedURL, days)
	meetings, cached := s.meetingCache.Get(cacheKey)
	fromCache := cached

	if !cached {
		fetched, _, err := s.feedClient.FetchMeetings(ctx, req.FeedURL, days, now)
		if err != nil {
			metrics.Get().IncrementReportGenerated(false)
			return nil, fmt.Errorf("buscar reuniões do feed: %w", err)
		}
		meetings = fetched
		s.meetingCache.Set(cacheKey, meetings)
	}

	report := engine.BuildReport(meetings, settings)
	metrics.Get().IncrementReportGenerated(true)

	log.Info().
		Int("meetings", len(meetings)).
		Int("days", days).
		Bool("from_cache", fromCache).
		Float64("total_cost", report.TotalCost).
		Msg("Relatório gerado a partir do feed")

	return &ReportResult{
		Report:   report,
		Meetings: meetings,
		Meta: model.Meta{
			TotalMeetings: len(meetings),
			Days:          days,
			FromCache:     fromCache,
		},
	}, nil
}

// GenerateDemo sintetiza um calendário plausível para o papel informado e
// computa o relatório completo. Quando a requisição traz uma semente, a
// geração é determinística.
func (s *ReportService) GenerateDemo(ctx context.Context, req model.DemoReportRequest, now time.Time) (*ReportResult, error) {
	role, err := demo.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	days := req.Days
	if days <= 0 {
		days = DefaultDays
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	meetings, err := demo.Generate(rng, now, days, role)
	if err != nil {
		return nil, err
	}

	settings := resolveSettings(req.Settings)
	if req.Settings == nil || req.Settings.HourlyRate <= 0 {
		// Sem taxa explícita, usa a taxa típica do papel.
		settings.HourlyRate = demo.HourlyRate(role)
	}

	report := engine.BuildReport(meetings, settings)
	metrics.Get().IncrementDemoBatch(len(meetings))

	logger.Get(ctx).Info().
		Str("role", string(role)).
		Int("meetings", len(meetings)).
		Int("days", days).
		Bool("seeded", req.Seed != nil).
		Msg("Relatório demo gerado")

	return &ReportResult{
		Report:   report,
		Meetings: meetings,
		Meta: model.Meta{
			TotalMeetings: len(meetings),
			Days:          days,
			Role:          string(role),
		},
	}, nil
}

// Recompute reaplica as configurações sobre um lote de reuniões já coletado.
// Usado pelas sessões websocket de recálculo ao vivo.
func (s *ReportService) Recompute(meetings []model.Meeting, settings *model.Settings) engine.Report {
	return engine.BuildReport(meetings, resolveSettings(settings))
}

func resolveSettings(s *model.Settings) model.Settings {
	if s == nil {
		return model.DefaultSettings()
	}
	return s.Normalize()
}
