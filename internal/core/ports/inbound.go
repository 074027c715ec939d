package ports

import (
	"context"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

// DocumentIngestor is the inbound contract for turning uploads and fixtures
// into registered documents with paired pending results.
type DocumentIngestor interface {
	AddDocuments(ctx context.Context, files []domain.IngestFile) (domain.IngestReport, error)
	LoadMockData(ctx context.Context, count int) (int, error)
}

// StartedRun is a run admitted by the single-flight guard: the snapshot of
// documents it will classify and the query it was started for.
type StartedRun struct {
	ID        string
	Query     string
	Documents []domain.Document
}

// DiscoveryRunner is the inbound contract for the classification pipeline.
// Start validates preconditions and claims the run slot without classifying
// anything; Execute drives the sequential loop to completion.
type DiscoveryRunner interface {
	Start(ctx context.Context, query string) (StartedRun, error)
	Execute(ctx context.Context, run StartedRun)
}

// ReportExporter builds and renders the methodology report of a finished run.
type ReportExporter interface {
	ExportPDF(ctx context.Context) ([]byte, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
}
