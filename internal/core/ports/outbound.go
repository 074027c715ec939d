package ports

import (
	"context"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

// DocumentStore holds the imported document set.
type DocumentStore interface {
	AppendDocument(doc domain.Document, res domain.DiscoveryResult)
	ReplaceAll(docs []domain.Document, results []domain.DiscoveryResult)
	Documents() []domain.Document
	DocumentByID(id string) (domain.Document, error)
	DocumentCount() int
}

// ResultStore is the ordered-by-first-seen collection of per-document
// outcomes. Upsert removes any existing result with the same document id and
// appends the new one, so store order becomes classified order during a run.
type ResultStore interface {
	Results() []domain.DiscoveryResult
	UpsertResult(res domain.DiscoveryResult)
}

// RunStateStore owns the process-wide ProcessingState. BeginRun is the
// single-flight guard: it fails while a run is already processing.
type RunStateStore interface {
	State() domain.ProcessingState
	BeginRun(total int) error
	RecordQuery(query string)
	SetProgress(progress int)
	FinishRun()
	ResetState()
}

// TextExtractor converts one uploaded file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, file domain.IngestFile) (string, error)
}

// RelevanceClassifier classifies one document against the discovery query by
// delegating to the remote model.
type RelevanceClassifier interface {
	Classify(ctx context.Context, doc domain.Document, query string) (domain.Classification, error)
}

// ReportRenderer renders a report snapshot into a downloadable format.
type ReportRenderer interface {
	RenderPDF(report domain.DiscoveryReport) ([]byte, error)
	RenderXLSX(report domain.DiscoveryReport) ([]byte, error)
}

// RunObserver receives pipeline lifecycle events for instrumentation.
type RunObserver interface {
	RunStarted(total int)
	DocumentClassified(decision domain.RelevanceDecision, fallback bool, seconds float64)
	RunCompleted(status domain.RunStatus)
}
