package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
	"github.com/discoverycraft/ediscovery-assistant/internal/core/ports"
)

const uploadIDPrefix = "UPL.0001.001"

// IngestUseCase turns uploaded files into registered documents. Extraction
// failures are isolated per file and aggregated into the report; a failed file
// consumes no document id.
type IngestUseCase struct {
	docs      ports.DocumentStore
	state     ports.RunStateStore
	extractor ports.TextExtractor
}

func NewIngestUseCase(
	docs ports.DocumentStore,
	state ports.RunStateStore,
	extractor ports.TextExtractor,
) *IngestUseCase {
	return &IngestUseCase{
		docs:      docs,
		state:     state,
		extractor: extractor,
	}
}

func (uc *IngestUseCase) AddDocuments(ctx context.Context, files []domain.IngestFile) (domain.IngestReport, error) {
	if len(files) == 0 {
		return domain.IngestReport{}, domain.WrapError(domain.ErrInvalidInput, "ingest documents", fmt.Errorf("no files supplied"))
	}

	var report domain.IngestReport
	nextIndex := uc.docs.DocumentCount() + 1

	for _, file := range files {
		content, err := uc.extractor.Extract(ctx, file)
		if err != nil {
			report.Failed++
			slog.Warn("ingest_file_failed", "filename", file.Name, "error", err)
			continue
		}

		doc := domain.Document{
			ID:      fmt.Sprintf("%s.%04d", uploadIDPrefix, nextIndex),
			Name:    file.Name,
			Content: content,
		}
		uc.docs.AppendDocument(doc, domain.NewPendingResult(doc))
		nextIndex++
		report.Success++
	}

	slog.Info("ingest_batch_done", "success", report.Success, "failed", report.Failed)
	return report, nil
}
