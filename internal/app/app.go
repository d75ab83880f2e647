package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ComplianceScanner/internal/config"
	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/handler"
	"ComplianceScanner/internal/infrastructure/extract"
	ghpub "ComplianceScanner/internal/infrastructure/github"
	"ComplianceScanner/internal/infrastructure/llm"
	"ComplianceScanner/internal/infrastructure/provider"
	"ComplianceScanner/internal/infrastructure/scheduler"
	"ComplianceScanner/internal/infrastructure/storage"
	"ComplianceScanner/internal/logging"
	"ComplianceScanner/internal/ports"
	"ComplianceScanner/internal/relevance"
	"ComplianceScanner/internal/source"
	"ComplianceScanner/internal/usecase"
)

// Application wires configuration into the pipeline and its entry points.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
}

// New builds a runnable application instance. All pipeline state is created
// here once per process; invocations share only the HTTP client.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	// One reusable network client for scraping and extraction.
	httpClient := &http.Client{Timeout: cfg.Source.Timeout()}

	registry := source.NewRegistry()
	registry.Register(provider.NewCSRCAdapter(cfg.Source.BaseURL, httpClient))
	registry.Register(provider.NewGoogleSearchAdapter(cfg.Google.APIKey, cfg.Google.EngineID))
	registry.Register(provider.NewStaticAdapter())

	aggregator := provider.NewAggregator(provider.AggregatorDeps{
		Registry:       registry,
		SearchTerms:    cfg.Source.SearchTerms,
		MaxSearchTerms: cfg.Source.MaxSearchTerms,
		Logger:         baseLogger.With("component", "aggregator"),
	})

	var scorer ports.RelevanceScorer = relevance.NewKeywordScorer(baseLogger.With("component", "scorer"))
	if cfg.OpenAI.Enabled && cfg.OpenAI.APIKey != "" {
		scorer = llm.NewOpenAIScorer(cfg.OpenAI)
	}

	var publisher ports.ReportPublisher
	if cfg.GitHub.Token != "" {
		publisher = ghpub.NewPublisher(cfg.GitHub)
	}

	var repository ports.ReportRepository
	if cfg.Database.DSN != "" {
		if db, err := storage.Open(ctx, cfg.Database.DSN); err != nil {
			baseLogger.Warn("report archive unavailable", "error", err)
		} else {
			repository = storage.NewPostgresRepository(db)
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     aggregator,
		Extractor:  extract.NewExtractor(httpClient),
		Scorer:     scorer,
		Publisher:  publisher,
		Repository: repository,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	app := &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}
	if cfg.Scheduler.Enabled {
		driver := scheduler.NewTickerScheduler(cfg.Scheduler.Interval())
		app.scheduler = usecase.NewScheduler(driver, pipeline, 0, baseLogger.With("component", "scheduler"))
	}
	return app
}

// RunOnce performs a single pipeline execution (CLI mode).
func (a *Application) RunOnce(ctx context.Context, topic string, maxArticles int) (domain.RunResult, error) {
	return a.pipeline.Run(ctx, topic, maxArticles)
}

// Serve starts the HTTP request surface, plus the periodic scanner when
// configured, and blocks until the server stops.
func (a *Application) Serve(ctx context.Context, port int) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer func() { _ = a.scheduler.Stop(ctx) }()
	}

	if port <= 0 {
		port = a.cfg.Server.Port
	}

	return a.router().Run(fmt.Sprintf(":%d", port))
}

func (a *Application) router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: a.cfg.Server.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	h := handler.NewWorkflowHandler(a.pipeline, a.logger)
	r.POST("/workflow/run", h.RunWorkflow)
	r.GET("/health", h.GetHealth)
	r.GET("/", h.GetInfo)
	return r
}
