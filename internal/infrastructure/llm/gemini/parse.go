package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

func parseBinary(raw string) (domain.Classification, error) {
	var payload struct {
		Decision   string  `json:"decision"`
		Reasoning  string  `json:"reasoning"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		return domain.Classification{}, domain.WrapError(domain.ErrInvalidResponse, "parse binary classification", err)
	}

	var decision domain.RelevanceDecision
	switch payload.Decision {
	case string(domain.DecisionRelevant):
		decision = domain.DecisionRelevant
	case string(domain.DecisionNotRelevant):
		decision = domain.DecisionNotRelevant
	default:
		return domain.Classification{}, domain.WrapError(domain.ErrInvalidResponse, "parse binary classification",
			fmt.Errorf("unknown decision %q", payload.Decision))
	}
	if strings.TrimSpace(payload.Reasoning) == "" {
		return domain.Classification{}, domain.WrapError(domain.ErrInvalidResponse, "parse binary classification",
			fmt.Errorf("missing reasoning"))
	}

	return domain.Classification{
		Decision:   decision,
		Reasoning:  payload.Reasoning,
		Confidence: payload.Confidence,
	}, nil
}

func parseMultiCategory(raw string) (domain.Classification, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		return domain.Classification{}, domain.WrapError(domain.ErrInvalidResponse, "parse multi-category classification", err)
	}

	reasoning, _ := payload["reasoning"].(string)
	if strings.TrimSpace(reasoning) == "" {
		return domain.Classification{}, domain.WrapError(domain.ErrInvalidResponse, "parse multi-category classification",
			fmt.Errorf("missing reasoning"))
	}

	details := make(map[string]bool, len(domain.RelevanceCategories))
	anyRelevant := false
	for _, category := range domain.RelevanceCategories {
		value, ok := payload[category]
		if !ok {
			return domain.Classification{}, domain.WrapError(domain.ErrInvalidResponse, "parse multi-category classification",
				fmt.Errorf("missing category field %q", category))
		}
		flag, ok := value.(bool)
		if !ok {
			return domain.Classification{}, domain.WrapError(domain.ErrInvalidResponse, "parse multi-category classification",
				fmt.Errorf("category field %q is not a boolean", category))
		}
		details[category] = flag
		anyRelevant = anyRelevant || flag
	}

	decision := domain.DecisionNotRelevant
	if anyRelevant {
		decision = domain.DecisionRelevant
	}

	confidence, _ := payload["confidence"].(float64)
	return domain.Classification{
		Decision:   decision,
		Details:    details,
		Reasoning:  reasoning,
		Confidence: confidence,
	}, nil
}

// extractJSONObject trims anything the model wrapped around the JSON object,
// markdown fences included.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
