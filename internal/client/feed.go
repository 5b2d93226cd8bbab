package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cleberrangel/meeting-cost-api/internal/logger"
	"github.com/cleberrangel/meeting-cost-api/internal/metrics"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
	"github.com/cleberrangel/meeting-cost-api/internal/repository"
	"golang.org/x/time/rate"
)

const (
	// RequestsPerMinute limite conservador por provedor de feed
	RequestsPerMinute = 60

	// DefaultTimeout timeout padrão para requisições
	DefaultTimeout = 15 * time.Second

	// RetryMaxAttempts número máximo de tentativas por fetch
	RetryMaxAttempts = 3

	// RetryBackoff tempo de espera entre retries
	RetryBackoff = 2 * time.Second

	// MaxMeetings limite de eventos normalizados por requisição
	MaxMeetings = 2500
)

// Client é o cliente HTTP para feeds ICS de calendário. Faz GET condicional
// (ETag/Last-Modified) usando o cache em disco e cai para o corpo cacheado
// em caso de erro de rede.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *repository.FeedCache
}

// NewClient cria um novo cliente de feeds
func NewClient(cache *repository.FeedCache) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/RequestsPerMinute), 10),
		cache:   cache,
	}
}

// FetchMeetings busca o feed, expande recorrências dentro da janela de
// lookback e normaliza para o registro interno de reunião. Retorna também
// se o corpo veio do cache condicional.
func (c *Client) FetchMeetings(ctx context.Context, feedURL string, days int, now time.Time) ([]model.Meeting, bool, error) {
	start := time.Now()

	body, fromCache, err := c.fetchBodyWithRetry(ctx, feedURL)
	latency := time.Since(start).Milliseconds()
	metrics.Get().IncrementFeedFetch(err == nil, fromCache, latency)
	if err != nil {
		return nil, false, err
	}

	events, err := parseFeed(body)
	if err != nil {
		logger.Get(ctx).Error().Err(err).Msg("Falha ao interpretar feed ICS")
		return nil, fromCache, model.ErrInvalidFeed
	}

	windowStart := now.AddDate(0, 0, -days)
	occurrences := expandEvents(ctx, events, windowStart, now)
	meetings := normalize(occurrences)

	logger.Get(ctx).Info().
		Int("events", len(events)).
		Int("occurrences", len(occurrences)).
		Int("meetings", len(meetings)).
		Bool("from_cache", fromCache).
		Int("days", days).
		Msg("Feed processado")

	return meetings, fromCache, nil
}

// Refresh força um fetch condicional do feed para manter o cache aquecido.
// Usado pelo job agendado de prefetch.
func (c *Client) Refresh(ctx context.Context, feedURL string) error {
	_, _, err := c.fetchBodyWithRetry(ctx, feedURL)
	return err
}

// fetchBodyWithRetry executa o fetch com retry e backoff
func (c *Client) fetchBodyWithRetry(ctx context.Context, feedURL string) ([]byte, bool, error) {
	var lastErr error

	for attempt := 1; attempt <= RetryMaxAttempts; attempt++ {
		body, fromCache, err := c.fetchBody(ctx, feedURL)
		if err == nil {
			return body, fromCache, nil
		}

		lastErr = err

		// Se é erro de contexto cancelado, não faz retry
		if ctx.Err() != nil {
			return nil, false, err
		}

		// Erros definitivos não merecem retry
		if errors.Is(err, model.ErrFeedUnauthorized) || errors.Is(err, model.ErrFeedNotFound) || errors.Is(err, model.ErrRateLimited) {
			return nil, false, err
		}

		if attempt < RetryMaxAttempts {
			logger.Get(ctx).Warn().
				Int("attempt", attempt).
				Int("max_attempts", RetryMaxAttempts).
				Err(err).
				Dur("backoff", RetryBackoff).
				Msg("Tentativa falhou, aguardando retry")

			select {
			case <-time.After(RetryBackoff):
			case <-ctx.Done():
				return nil, false, ctx.Err()
			}
		}
	}

	return nil, false, lastErr
}

// fetchBody executa um GET condicional no feed
func (c *Client) fetchBody(ctx context.Context, feedURL string) ([]byte, bool, error) {
	// Aguarda rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	meta, cachedBody, cacheErr := c.cache.Load(feedURL)
	hasCached := cacheErr == nil && len(cachedBody) > 0

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, false, err
	}

	// Headers condicionais a partir do cache
	if hasCached {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, model.ErrTimeout
		}
		// Erro de rede: usa o corpo cacheado se existir
		if hasCached {
			logger.Get(ctx).Warn().Err(err).Msg("Erro de rede no feed, usando corpo cacheado")
			return cachedBody, true, nil
		}
		return nil, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, false, readErr
		}

		newMeta := repository.FeedMeta{
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		}
		if saveErr := c.cache.Save(feedURL, newMeta, body); saveErr != nil {
			// Loga mas ainda retorna o corpo recém baixado
			logger.Get(ctx).Error().Err(saveErr).Msg("Falha ao gravar cache do feed")
		}

		return body, false, nil

	case http.StatusNotModified:
		if !hasCached {
			return nil, false, errors.New("304 Not Modified sem corpo cacheado")
		}
		return cachedBody, true, nil

	case http.StatusTooManyRequests:
		return nil, false, model.ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, false, model.ErrFeedUnauthorized
	case http.StatusNotFound, http.StatusGone:
		return nil, false, model.ErrFeedNotFound
	default:
		if hasCached {
			logger.Get(ctx).Warn().Int("status", resp.StatusCode).Msg("Status não-OK no feed, usando corpo cacheado")
			return cachedBody, true, nil
		}
		return nil, false, errors.New(resp.Status)
	}
}
