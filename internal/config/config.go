package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config armazena as configurações da aplicação
type Config struct {
	TokenAPI string
	Port     string
	GinMode  string

	LogLevel string
	LogJSON  bool

	// Cache em disco dos feeds ICS (ETag/Last-Modified)
	FeedCacheDir string

	// Feeds pré-aquecidos pelo job de refresh (separados por vírgula)
	PrefetchFeeds []string
	// Expressão cron do refresh; vazio desabilita o job
	PrefetchCron string

	// Basic auth dos endpoints de debug (hash bcrypt da senha)
	DebugUser     string
	DebugPassHash string
}

// ErrMissingToken indica que um token obrigatório não foi configurado
var ErrMissingToken = errors.New("token obrigatório não configurado")

// Load carrega as configurações do ambiente
func Load() (*Config, error) {
	// Tenta carregar .env de múltiplos locais
	_ = godotenv.Load()          // ./.env
	_ = godotenv.Load("../.env") // raiz do projeto

	cfg := &Config{
		TokenAPI:      os.Getenv("TOKEN_API"),
		Port:          os.Getenv("PORT"),
		GinMode:       os.Getenv("GIN_MODE"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		FeedCacheDir:  os.Getenv("FEED_CACHE_DIR"),
		PrefetchCron:  os.Getenv("PREFETCH_CRON"),
		DebugUser:     os.Getenv("DEBUG_USER"),
		DebugPassHash: os.Getenv("DEBUG_PASS_HASH"),
	}

	if v := os.Getenv("LOG_JSON"); v != "" {
		jsonLog, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("LOG_JSON inválido, esperado true/false")
		}
		cfg.LogJSON = jsonLog
	}

	if feeds := os.Getenv("PREFETCH_FEEDS"); feeds != "" {
		for _, f := range strings.Split(feeds, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.PrefetchFeeds = append(cfg.PrefetchFeeds, f)
			}
		}
	}

	// Validações obrigatórias
	if cfg.TokenAPI == "" {
		return nil, errors.New("TOKEN_API não configurado")
	}

	// Defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.FeedCacheDir == "" {
		cfg.FeedCacheDir = "./var/feed-cache"
	}

	if cfg.PrefetchCron == "" && len(cfg.PrefetchFeeds) > 0 {
		// A cada 6 horas, mantém o cache condicional aquecido
		cfg.PrefetchCron = "0 */6 * * *"
	}

	return cfg, nil
}
