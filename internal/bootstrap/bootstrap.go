package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/discoverycraft/ediscovery-assistant/internal/config"
	"github.com/discoverycraft/ediscovery-assistant/internal/core/ports"
	"github.com/discoverycraft/ediscovery-assistant/internal/core/usecase"
	"github.com/discoverycraft/ediscovery-assistant/internal/infrastructure/extractor"
	"github.com/discoverycraft/ediscovery-assistant/internal/infrastructure/llm/gemini"
	"github.com/discoverycraft/ediscovery-assistant/internal/infrastructure/report"
	"github.com/discoverycraft/ediscovery-assistant/internal/infrastructure/resilience"
	"github.com/discoverycraft/ediscovery-assistant/internal/infrastructure/state"
	"github.com/discoverycraft/ediscovery-assistant/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.ServerMetrics

	Store *state.Container

	IngestUC    ports.DocumentIngestor
	DiscoveryUC ports.DiscoveryRunner
	ExportUC    ports.ReportExporter
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	store := state.NewContainer()
	serverMetrics := metrics.NewServerMetrics("ediscovery-api")

	breakerCfg := resilience.DefaultConfig()
	breakerCfg.BreakerEnabled = cfg.BreakerEnabled
	executor := resilience.NewExecutor(breakerCfg)

	classifier, err := gemini.NewClassifier(ctx, gemini.Config{
		APIKey:            cfg.GeminiAPIKey,
		Model:             cfg.GeminiModel,
		Mode:              gemini.Mode(cfg.ClassifierMode),
		Temperature:       float32(cfg.ClassifierTemperature),
		SnippetChars:      cfg.ClassifierSnippet,
		RequestsPerSecond: cfg.ClassifierRateRPS,
		Timeout:           time.Duration(cfg.ClassifierTimeoutSecs) * time.Second,
	}, executor)
	if err != nil {
		return nil, fmt.Errorf("init classifier: %w", err)
	}

	ingestUC := usecase.NewIngestUseCase(store, store, extractor.NewService())
	discoveryUC := usecase.NewDiscoveryUseCase(store, store, store, classifier, serverMetrics)
	exportUC := usecase.NewExportUseCase(store, store, report.NewRenderer(), store.LastQuery)

	return &App{
		Config:      cfg,
		Metrics:     serverMetrics,
		Store:       store,
		IngestUC:    ingestUC,
		DiscoveryUC: discoveryUC,
		ExportUC:    exportUC,
	}, nil
}
