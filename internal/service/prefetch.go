package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cleberrangel/meeting-cost-api/internal/client"
	"github.com/cleberrangel/meeting-cost-api/internal/logger"
	"github.com/cleberrangel/meeting-cost-api/internal/repository"
)

// feedCacheMaxAge é a idade máxima de uma entrada do cache em disco antes de
// ser removida pelo job de manutenção.
const feedCacheMaxAge = 7 * 24 * time.Hour

// PrefetchService mantém o cache condicional dos feeds configurados aquecido,
// refazendo o fetch em um agendamento cron e podando entradas antigas.
type PrefetchService struct {
	feedClient *client.Client
	feedCache  *repository.FeedCache
	feeds      []string

	cron    *cron.Cron
	mu      sync.Mutex
	started bool
}

// NewPrefetchService cria o serviço de prefetch para os feeds informados
func NewPrefetchService(feedClient *client.Client, feedCache *repository.FeedCache, feeds []string) *PrefetchService {
	return &PrefetchService{
		feedClient: feedClient,
		feedCache:  feedCache,
		feeds:      feeds,
		cron:       cron.New(),
	}
}

// Start agenda o job de refresh com a spec cron informada e inicia o
// agendador. Sem feeds configurados, não faz nada.
func (s *PrefetchService) Start(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.feeds) == 0 || s.started {
		return nil
	}

	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return fmt.Errorf("agendar prefetch: %w", err)
	}

	s.cron.Start()
	s.started = true

	logger.Global().Info().
		Str("cron", spec).
		Int("feeds", len(s.feeds)).
		Msg("Prefetch de feeds agendado")

	return nil
}

// Stop interrompe o agendador, aguardando o job corrente terminar
func (s *PrefetchService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.started = false
	}
}

func (s *PrefetchService) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log := logger.Global()

	for _, feed := range s.feeds {
		if err := s.feedClient.Refresh(ctx, feed); err != nil {
			log.Warn().Err(err).Msg("Falha no refresh de feed durante prefetch")
		}
	}

	removed, err := s.feedCache.PruneOlderThan(feedCacheMaxAge)
	if err != nil {
		log.Warn().Err(err).Msg("Falha ao podar cache de feeds")
		return
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("Entradas antigas removidas do cache de feeds")
	}
}
