package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

const mockIDPrefix = "ABC.0001.001"

// mockContent is cycled across generated documents so runs over the fixture
// exercise both relevant and irrelevant material for the canned queries.
var mockContent = []string{
	"Project Titan experienced a setback during phase 2 safety trials. The primary actuator failed under stress testing at 80% capacity.",
	"Email chain discussing the Q3 financial results. Performance is above target.",
	"Minutes from the board meeting on October 5th. Key discussion point was the potential acquisition of Innovate Inc.",
	"Memo regarding new company-wide policy on remote work. All employees must register their primary work location.",
	"Internal report on Project Titan's supply chain logistics. Notes delays from vendor XYZ.",
	"Performance review for John Doe. Excellent feedback from his team.",
	"A document outlining the intellectual property agreement for Project Chimera. The patent filing is scheduled for next month.",
	"Safety audit report for the main manufacturing facility. No major issues found.",
	"Draft press release announcing the Innovate Inc. merger. For internal review only.",
	"Chat logs from the engineering team. Discussion about fixing a minor bug in the user interface.",
}

// LoadMockData replaces the entire store with a deterministic fixture of count
// synthetic documents and resets the processing state to idle.
func (uc *IngestUseCase) LoadMockData(ctx context.Context, count int) (int, error) {
	if count <= 0 {
		return 0, domain.WrapError(domain.ErrInvalidInput, "load mock data", fmt.Errorf("count must be positive, got %d", count))
	}

	docs := make([]domain.Document, 0, count)
	results := make([]domain.DiscoveryResult, 0, count)
	for i := 1; i <= count; i++ {
		doc := domain.Document{
			ID:      fmt.Sprintf("%s.%04d", mockIDPrefix, i),
			Name:    fmt.Sprintf("document_%04d.txt", i),
			Content: fmt.Sprintf("%s (This is content for document %d).", mockContent[i%len(mockContent)], i),
		}
		docs = append(docs, doc)
		results = append(results, domain.NewPendingResult(doc))
	}

	uc.docs.ReplaceAll(docs, results)
	uc.state.ResetState()
	slog.Info("mock_data_loaded", "count", count)
	return count, nil
}
