package gemini

import (
	"strings"
	"testing"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

func TestParseBinary(t *testing.T) {
	raw := `{"decision":"Relevant","reasoning":"The document discusses the disputed contract.","confidence":0.92}`

	got, err := parseBinary(raw)
	if err != nil {
		t.Fatalf("parseBinary() error = %v", err)
	}
	if got.Decision != domain.DecisionRelevant {
		t.Fatalf("expected Relevant, got %s", got.Decision)
	}
	if got.Reasoning != "The document discusses the disputed contract." {
		t.Fatalf("unexpected reasoning %q", got.Reasoning)
	}
	if got.Confidence != 0.92 {
		t.Fatalf("unexpected confidence %v", got.Confidence)
	}
	if got.Details != nil {
		t.Fatalf("binary mode must not produce category details, got %v", got.Details)
	}
}

func TestParseBinaryStripsMarkdownFence(t *testing.T) {
	raw := "```json\n{\"decision\":\"Not Relevant\",\"reasoning\":\"Unrelated memo.\"}\n```"

	got, err := parseBinary(raw)
	if err != nil {
		t.Fatalf("parseBinary() error = %v", err)
	}
	if got.Decision != domain.DecisionNotRelevant {
		t.Fatalf("expected Not Relevant, got %s", got.Decision)
	}
}

func TestParseBinaryRejectsUnknownDecision(t *testing.T) {
	raw := `{"decision":"Maybe","reasoning":"Hard to say."}`

	if _, err := parseBinary(raw); !domain.IsKind(err, domain.ErrInvalidResponse) {
		t.Fatalf("expected invalid response error, got %v", err)
	}
}

func TestParseBinaryRejectsMissingReasoning(t *testing.T) {
	raw := `{"decision":"Relevant","reasoning":"   "}`

	if _, err := parseBinary(raw); !domain.IsKind(err, domain.ErrInvalidResponse) {
		t.Fatalf("expected invalid response error, got %v", err)
	}
}

func TestParseBinaryRejectsMalformedJSON(t *testing.T) {
	if _, err := parseBinary("decided: yes"); !domain.IsKind(err, domain.ErrInvalidResponse) {
		t.Fatalf("expected invalid response error, got %v", err)
	}
}

func multiCategoryPayload(flags map[string]bool) string {
	var b strings.Builder
	b.WriteString(`{"reasoning":"Per-category assessment."`)
	for category, flag := range flags {
		b.WriteString(`,"`)
		b.WriteString(category)
		b.WriteString(`":`)
		if flag {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	}
	b.WriteString("}")
	return b.String()
}

func allCategories(value bool) map[string]bool {
	flags := make(map[string]bool, len(domain.RelevanceCategories))
	for _, category := range domain.RelevanceCategories {
		flags[category] = value
	}
	return flags
}

func TestParseMultiCategoryAnyFlagMeansRelevant(t *testing.T) {
	flags := allCategories(false)
	flags[domain.RelevanceCategories[2]] = true

	got, err := parseMultiCategory(multiCategoryPayload(flags))
	if err != nil {
		t.Fatalf("parseMultiCategory() error = %v", err)
	}
	if got.Decision != domain.DecisionRelevant {
		t.Fatalf("expected Relevant, got %s", got.Decision)
	}
	if len(got.Details) != len(domain.RelevanceCategories) {
		t.Fatalf("expected %d details, got %d", len(domain.RelevanceCategories), len(got.Details))
	}
	if !got.Details[domain.RelevanceCategories[2]] {
		t.Fatalf("expected flagged category true in details")
	}
}

func TestParseMultiCategoryAllFalseMeansNotRelevant(t *testing.T) {
	got, err := parseMultiCategory(multiCategoryPayload(allCategories(false)))
	if err != nil {
		t.Fatalf("parseMultiCategory() error = %v", err)
	}
	if got.Decision != domain.DecisionNotRelevant {
		t.Fatalf("expected Not Relevant, got %s", got.Decision)
	}
}

func TestParseMultiCategoryRejectsMissingCategory(t *testing.T) {
	flags := allCategories(true)
	delete(flags, domain.RelevanceCategories[0])

	if _, err := parseMultiCategory(multiCategoryPayload(flags)); !domain.IsKind(err, domain.ErrInvalidResponse) {
		t.Fatalf("expected invalid response error, got %v", err)
	}
}

func TestParseMultiCategoryRejectsNonBooleanCategory(t *testing.T) {
	raw := `{"reasoning":"r","Relevant with Financial Records":"yes","Relevant with Internal Communications":false,"Relevant with Technical Documents":false,"Relevant with Legal Agreements":false,"Relevant with Personnel Matters":false}`

	if _, err := parseMultiCategory(raw); !domain.IsKind(err, domain.ErrInvalidResponse) {
		t.Fatalf("expected invalid response error, got %v", err)
	}
}

func TestParseMultiCategoryRejectsMissingReasoning(t *testing.T) {
	raw := `{"Relevant with Financial Records":true,"Relevant with Internal Communications":false,"Relevant with Technical Documents":false,"Relevant with Legal Agreements":false,"Relevant with Personnel Matters":false}`

	if _, err := parseMultiCategory(raw); !domain.IsKind(err, domain.ErrInvalidResponse) {
		t.Fatalf("expected invalid response error, got %v", err)
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"fenced object", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", `Here is the result: {"a":1}`, `{"a":1}`},
		{"no object", "no json here", "no json here"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSONObject(tc.raw); got != tc.want {
				t.Fatalf("extractJSONObject(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestBuildClassificationPromptTruncatesSnippet(t *testing.T) {
	doc := domain.Document{
		ID:      "ABC.0001.001.0001",
		Name:    "long.txt",
		Content: strings.Repeat("x", 500),
	}

	prompt := buildClassificationPrompt(doc, "the query", 100)

	if !strings.Contains(prompt, `"the query"`) {
		t.Fatalf("prompt missing quoted query: %q", prompt)
	}
	if !strings.Contains(prompt, doc.ID) || !strings.Contains(prompt, doc.Name) {
		t.Fatalf("prompt missing document identity: %q", prompt)
	}
	if strings.Contains(prompt, strings.Repeat("x", 101)) {
		t.Fatal("prompt snippet not truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 100)) {
		t.Fatal("prompt snippet truncated too aggressively")
	}
}

func TestSystemInstructionPerMode(t *testing.T) {
	binary := systemInstruction(ModeBinary)
	if !strings.Contains(binary, `"Relevant" or "Not Relevant"`) {
		t.Fatalf("unexpected binary instruction: %q", binary)
	}

	multi := systemInstruction(ModeMultiCategory)
	for _, category := range domain.RelevanceCategories {
		if !strings.Contains(multi, category) {
			t.Fatalf("multi-category instruction missing %q", category)
		}
	}
}
