package main

import (
	stdlog "log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/meeting-cost-api/internal/cache"
	"github.com/cleberrangel/meeting-cost-api/internal/client"
	"github.com/cleberrangel/meeting-cost-api/internal/config"
	"github.com/cleberrangel/meeting-cost-api/internal/handler"
	"github.com/cleberrangel/meeting-cost-api/internal/logger"
	"github.com/cleberrangel/meeting-cost-api/internal/metrics"
	"github.com/cleberrangel/meeting-cost-api/internal/middleware"
	"github.com/cleberrangel/meeting-cost-api/internal/repository"
	"github.com/cleberrangel/meeting-cost-api/internal/service"
	"github.com/cleberrangel/meeting-cost-api/internal/websocket"
)

const Version = "1.0.0"

// meetingCacheTTL é o tempo de vida das reuniões em memória por URL+janela.
const meetingCacheTTL = 5 * time.Minute

func main() {
	// Carrega configurações
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro ao carregar configurações: %v", err)
	}

	// Inicializa logger estruturado
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Bool("log_json", cfg.LogJSON).
		Msg("Meeting Cost API iniciando")

	// Inicializa métricas
	metrics.Init()

	// Inicializa dependências
	feedCache, err := repository.NewFeedCache(cfg.FeedCacheDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao inicializar cache de feeds")
	}

	feedClient := client.NewClient(feedCache)
	meetingCache := cache.New(meetingCacheTTL)
	defer meetingCache.Stop()

	reportService := service.NewReportService(feedClient, meetingCache)
	webhookService := service.NewWebhookService()

	reportHandler := handler.NewReportHandler(reportService, webhookService)
	demoHandler := handler.NewDemoHandler(reportService)
	catalogHandler := handler.NewCatalogHandler()

	// Hub de websocket para sessões de recálculo ao vivo
	wsHub := websocket.NewHub(reportService)
	go wsHub.Run()

	// Push periódico de métricas para os clientes conectados
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			wsHub.BroadcastMetrics()
		}
	}()

	healthHandler := handler.NewHealthHandler(wsHub, cfg.FeedCacheDir, Version)

	// Prefetch agendado dos feeds configurados
	prefetch := service.NewPrefetchService(feedClient, feedCache, cfg.PrefetchFeeds)
	if cfg.PrefetchCron != "" {
		if err := prefetch.Start(cfg.PrefetchCron); err != nil {
			log.Fatal().Err(err).Msg("Erro ao agendar prefetch de feeds")
		}
		defer prefetch.Stop()
	}

	// Configura modo do Gin
	gin.SetMode(cfg.GinMode)

	// Inicializa router
	r := gin.New()
	r.Use(middleware.RequestID()) // Request ID + logging estruturado
	r.Use(middleware.MetricsMiddleware())
	r.Use(gin.Recovery())

	// Health check (público)
	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/health/live", healthHandler.LivenessCheck)

	// Métricas (públicas)
	r.GET("/metrics/stats", healthHandler.GetMetrics)
	r.GET("/metrics/summary", healthHandler.GetMetricsSummary)
	r.GET("/metrics/endpoints", healthHandler.GetEndpointMetrics)

	// Endpoints de debug, protegidos por basic auth quando configurado
	debugGroup := r.Group("/debug")
	debugAuth := middleware.DebugAuthConfig{
		Username:     cfg.DebugUser,
		PasswordHash: cfg.DebugPassHash,
	}
	if debugAuth.Enabled() {
		debugGroup.Use(middleware.DebugAuth(debugAuth))
	}
	debugGroup.GET("/memory", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(200, gin.H{
			"alloc_mb":       m.Alloc / 1024 / 1024,
			"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
			"sys_mb":         m.Sys / 1024 / 1024,
			"heap_alloc_mb":  m.HeapAlloc / 1024 / 1024,
			"heap_inuse_mb":  m.HeapInuse / 1024 / 1024,
			"heap_objects":   m.HeapObjects,
			"goroutines":     runtime.NumGoroutine(),
			"gc_runs":        m.NumGC,
			"gc_pause_total": m.PauseTotalNs / 1000000, // ms
		})
	})
	debugGroup.POST("/gc", func(c *gin.Context) {
		runtime.GC()
		debug.FreeOSMemory()
		c.JSON(200, gin.H{"status": "gc_completed"})
	})

	// Sessões de recálculo ao vivo via websocket
	r.GET("/ws/metrics", websocket.AuthMiddleware(cfg.TokenAPI), wsHub.ServeWS)

	// Grupo de rotas protegidas
	api := r.Group("/api/v1")
	api.Use(middleware.BearerAuth(middleware.AuthConfig{
		TokenAPI: cfg.TokenAPI,
	}))
	api.Use(middleware.AuditMiddleware())
	{
		api.POST("/reports", reportHandler.GenerateReport)
		api.POST("/reports/export", reportHandler.ExportReport)
		api.GET("/demo/roles", demoHandler.ListRoles)
		api.POST("/demo/reports", demoHandler.GenerateDemoReport)
		api.GET("/catalog", catalogHandler.GetCatalog)
	}

	// Inicia servidor
	port := cfg.Port
	log.Info().Str("port", port).Msg("Servidor iniciando")

	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Erro ao iniciar servidor")
		os.Exit(1)
	}
}
