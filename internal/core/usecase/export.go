package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
	"github.com/discoverycraft/ediscovery-assistant/internal/core/ports"
)

// ExportUseCase renders the methodology report of a finished run. Export is
// blocked until a run has completed and produced at least one result.
type ExportUseCase struct {
	results  ports.ResultStore
	state    ports.RunStateStore
	renderer ports.ReportRenderer
	query    func() string
	now      func() time.Time
}

func NewExportUseCase(
	results ports.ResultStore,
	state ports.RunStateStore,
	renderer ports.ReportRenderer,
	lastQuery func() string,
) *ExportUseCase {
	return &ExportUseCase{
		results:  results,
		state:    state,
		renderer: renderer,
		query:    lastQuery,
		now:      time.Now,
	}
}

// BuildReport snapshots the result store into a renderable report.
func (uc *ExportUseCase) BuildReport(_ context.Context) (domain.DiscoveryReport, error) {
	if state := uc.state.State(); state.Status != domain.StatusDone {
		return domain.DiscoveryReport{}, domain.WrapError(domain.ErrPrecondition, "build report",
			fmt.Errorf("no completed discovery run (status %s)", state.Status))
	}

	results := uc.results.Results()
	if len(results) == 0 {
		return domain.DiscoveryReport{}, domain.WrapError(domain.ErrPrecondition, "build report",
			fmt.Errorf("result store is empty"))
	}

	return domain.DiscoveryReport{
		Query:       uc.query(),
		GeneratedAt: uc.now().UTC(),
		Summary:     domain.Summarize(results),
		Results:     results,
	}, nil
}

func (uc *ExportUseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.BuildReport(ctx)
	if err != nil {
		return nil, err
	}
	data, err := uc.renderer.RenderPDF(report)
	if err != nil {
		return nil, fmt.Errorf("render pdf report: %w", err)
	}
	return data, nil
}

func (uc *ExportUseCase) ExportXLSX(ctx context.Context) ([]byte, error) {
	report, err := uc.BuildReport(ctx)
	if err != nil {
		return nil, err
	}
	data, err := uc.renderer.RenderXLSX(report)
	if err != nil {
		return nil, fmt.Errorf("render xlsx report: %w", err)
	}
	return data, nil
}
