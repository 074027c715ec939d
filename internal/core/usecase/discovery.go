package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
	"github.com/discoverycraft/ediscovery-assistant/internal/core/ports"
)

// DiscoveryUseCase orchestrates one classification run over the captured
// document set: strictly sequential, one in-flight classification at a time,
// with exact monotonic progress. The run itself never fails; per-document
// classifier errors fold into fallback results.
type DiscoveryUseCase struct {
	docs       ports.DocumentStore
	results    ports.ResultStore
	state      ports.RunStateStore
	classifier ports.RelevanceClassifier
	observer   ports.RunObserver
}

func NewDiscoveryUseCase(
	docs ports.DocumentStore,
	results ports.ResultStore,
	state ports.RunStateStore,
	classifier ports.RelevanceClassifier,
	observer ports.RunObserver,
) *DiscoveryUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	return &DiscoveryUseCase{
		docs:       docs,
		results:    results,
		state:      state,
		classifier: classifier,
		observer:   observer,
	}
}

// Start validates the query and document set, claims the run slot and captures
// the document snapshot. No state is mutated when a precondition fails.
// Documents added after Start are not part of this run.
func (uc *DiscoveryUseCase) Start(ctx context.Context, query string) (ports.StartedRun, error) {
	if strings.TrimSpace(query) == "" {
		return ports.StartedRun{}, domain.WrapError(domain.ErrInvalidInput, "start discovery", fmt.Errorf("query must not be blank"))
	}

	snapshot := uc.docs.Documents()
	if len(snapshot) == 0 {
		return ports.StartedRun{}, domain.WrapError(domain.ErrInvalidInput, "start discovery", fmt.Errorf("no documents loaded"))
	}

	if err := uc.state.BeginRun(len(snapshot)); err != nil {
		return ports.StartedRun{}, fmt.Errorf("claim run slot: %w", err)
	}
	uc.state.RecordQuery(query)

	run := ports.StartedRun{
		ID:        uuid.NewString(),
		Query:     query,
		Documents: snapshot,
	}
	uc.observer.RunStarted(len(snapshot))
	slog.Info("discovery_run_started", "run_id", run.ID, "total", len(snapshot))
	return run, nil
}

// Execute classifies every document of the started run in order. Each document
// yields exactly one upserted result and one progress increment; the loop
// always runs to completion and the state always terminates at done.
func (uc *DiscoveryUseCase) Execute(ctx context.Context, run ports.StartedRun) {
	for i, doc := range run.Documents {
		started := time.Now()
		classification, err := uc.classifier.Classify(ctx, doc, run.Query)

		var result domain.DiscoveryResult
		fallback := err != nil
		if fallback {
			result = FallbackResult(doc, err)
			slog.Warn("classification_fallback",
				"run_id", run.ID,
				"doc_id", doc.ID,
				"error", err,
			)
		} else {
			result = domain.DiscoveryResult{
				DocID:            doc.ID,
				DocName:          doc.Name,
				Decision:         classification.Decision,
				RelevanceDetails: classification.Details,
				Reasoning:        classification.Reasoning,
				Confidence:       classification.Confidence,
			}
		}

		uc.results.UpsertResult(result)
		uc.state.SetProgress(i + 1)
		uc.observer.DocumentClassified(result.Decision, fallback, time.Since(started).Seconds())
	}

	uc.state.FinishRun()
	uc.observer.RunCompleted(domain.StatusDone)
	slog.Info("discovery_run_completed", "run_id", run.ID, "total", len(run.Documents))
}

// Run is the synchronous composition of Start and Execute.
func (uc *DiscoveryUseCase) Run(ctx context.Context, query string) error {
	run, err := uc.Start(ctx, query)
	if err != nil {
		return err
	}
	uc.Execute(ctx, run)
	return nil
}

// FallbackResult converts a classifier failure into the deterministic safe
// result: Not Relevant, every category flag false, reasoning embedding the
// error text. This keeps the loop invariant of one bounded-time result update
// per document.
func FallbackResult(doc domain.Document, err error) domain.DiscoveryResult {
	details := make(map[string]bool, len(domain.RelevanceCategories))
	for _, category := range domain.RelevanceCategories {
		details[category] = false
	}
	return domain.DiscoveryResult{
		DocID:            doc.ID,
		DocName:          doc.Name,
		Decision:         domain.DecisionNotRelevant,
		RelevanceDetails: details,
		Reasoning:        fmt.Sprintf("An error occurred during processing. Error: %v", err),
	}
}

type noopObserver struct{}

func (noopObserver) RunStarted(int)                                             {}
func (noopObserver) DocumentClassified(domain.RelevanceDecision, bool, float64) {}
func (noopObserver) RunCompleted(domain.RunStatus)                              {}
