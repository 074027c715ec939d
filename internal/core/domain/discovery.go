package domain

import "time"

type RelevanceDecision string

const (
	DecisionPending     RelevanceDecision = "Pending"
	DecisionRelevant    RelevanceDecision = "Relevant"
	DecisionNotRelevant RelevanceDecision = "Not Relevant"
)

// PendingReasoning is the reasoning text every result carries until its
// document has been classified.
const PendingReasoning = "Not yet processed."

// RelevanceCategories are the fixed per-category flags of the multi-category
// response shape. The overall decision is Relevant iff any flag is true.
var RelevanceCategories = []string{
	"Relevant with Financial Records",
	"Relevant with Internal Communications",
	"Relevant with Technical Documents",
	"Relevant with Legal Agreements",
	"Relevant with Personnel Matters",
}

// DiscoveryResult is the per-document outcome of a classification run.
// Exactly one result exists per registered document; the pipeline replaces it
// in the store once that document's classification completes.
type DiscoveryResult struct {
	DocID            string            `json:"doc_id"`
	DocName          string            `json:"doc_name"`
	Decision         RelevanceDecision `json:"decision"`
	RelevanceDetails map[string]bool   `json:"relevance_details,omitempty"`
	Reasoning        string            `json:"reasoning"`
	// Confidence is reserved: populated only when the model volunteers it.
	Confidence float64 `json:"confidence,omitempty"`
}

// NewPendingResult pairs a freshly ingested document with its initial result.
func NewPendingResult(doc Document) DiscoveryResult {
	return DiscoveryResult{
		DocID:     doc.ID,
		DocName:   doc.Name,
		Decision:  DecisionPending,
		Reasoning: PendingReasoning,
	}
}

// Classification is a validated classifier response for one document.
type Classification struct {
	Decision   RelevanceDecision
	Details    map[string]bool
	Reasoning  string
	Confidence float64
}

type RunStatus string

const (
	StatusIdle       RunStatus = "idle"
	StatusProcessing RunStatus = "processing"
	StatusDone       RunStatus = "done"
	// StatusError is reserved for a terminal failure path the pipeline does
	// not currently trigger: per-document failures fold into fallback results.
	StatusError RunStatus = "error"
)

// ProcessingState tracks one run's lifecycle. Total is fixed at run start;
// Progress climbs monotonically from 0 to Total, one step per document.
type ProcessingState struct {
	Status   RunStatus `json:"status"`
	Progress int       `json:"progress"`
	Total    int       `json:"total"`
	Error    string    `json:"error,omitempty"`
}

// ReportSummary are the headline counts of a finished run.
type ReportSummary struct {
	Total       int `json:"total"`
	Relevant    int `json:"relevant"`
	NotRelevant int `json:"not_relevant"`
	Pending     int `json:"pending"`
}

// DiscoveryReport is the renderable snapshot handed to report generators.
type DiscoveryReport struct {
	Query       string            `json:"query"`
	GeneratedAt time.Time         `json:"generated_at"`
	Summary     ReportSummary     `json:"summary"`
	Results     []DiscoveryResult `json:"results"`
}

// Summarize counts decisions across results in store order.
func Summarize(results []DiscoveryResult) ReportSummary {
	summary := ReportSummary{Total: len(results)}
	for _, res := range results {
		switch res.Decision {
		case DecisionRelevant:
			summary.Relevant++
		case DecisionNotRelevant:
			summary.NotRelevant++
		default:
			summary.Pending++
		}
	}
	return summary
}
