// Package gemini classifies documents against a discovery query with the
// Gemini API, constraining output to a fixed JSON schema at low temperature.
package gemini

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
	"github.com/discoverycraft/ediscovery-assistant/internal/infrastructure/resilience"
)

// Mode selects the classifier response shape.
type Mode string

const (
	// ModeBinary returns a single Relevant / Not Relevant decision.
	ModeBinary Mode = "binary"
	// ModeMultiCategory returns one boolean flag per relevance category; the
	// overall decision is Relevant iff any flag is true.
	ModeMultiCategory Mode = "multi_category"
)

type Config struct {
	APIKey            string
	Model             string
	Mode              Mode
	Temperature       float32
	SnippetChars      int
	RequestsPerSecond float64
	Timeout           time.Duration
}

func (c Config) normalize() Config {
	out := c
	if out.Model == "" {
		out.Model = "gemini-2.5-pro"
	}
	if out.Mode == "" {
		out.Mode = ModeBinary
	}
	if out.Temperature <= 0 {
		out.Temperature = 0.1
	}
	if out.SnippetChars <= 0 {
		out.SnippetChars = 8000
	}
	if out.RequestsPerSecond <= 0 {
		out.RequestsPerSecond = 1
	}
	if out.Timeout <= 0 {
		out.Timeout = 120 * time.Second
	}
	return out
}

// Classifier implements ports.RelevanceClassifier. Calls are paced by a rate
// limiter (the pipeline keeps at most one in flight; the limiter enforces the
// remote quota on top) and guarded by a circuit breaker. No retries.
type Classifier struct {
	client  *genai.Client
	cfg     Config
	limiter *rate.Limiter
	exec    *resilience.Executor
	schema  *genai.Schema
	system  string
}

func NewClassifier(ctx context.Context, cfg Config, exec *resilience.Executor) (*Classifier, error) {
	cfg = cfg.normalize()
	if cfg.APIKey == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "init gemini classifier",
			fmt.Errorf("api key is required"))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}

	return &Classifier{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		exec:    exec,
		schema:  responseSchema(cfg.Mode),
		system:  systemInstruction(cfg.Mode),
	}, nil
}

func (c *Classifier) Classify(ctx context.Context, doc domain.Document, query string) (domain.Classification, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Classification{}, fmt.Errorf("await rate limiter: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	prompt := buildClassificationPrompt(doc, query, c.cfg.SnippetChars)
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	}}

	var raw string
	err := c.exec.Execute(callCtx, "gemini_classify", func(ctx context.Context) error {
		resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, contents, c.generateConfig())
		if err != nil {
			return fmt.Errorf("gemini generate: %w", err)
		}
		if resp == nil || len(resp.Candidates) == 0 {
			return domain.WrapError(domain.ErrInvalidResponse, "gemini generate",
				fmt.Errorf("empty response"))
		}
		raw = resp.Text()
		return nil
	}, classifyGeminiError)
	if err != nil {
		return domain.Classification{}, wrapTemporaryIfNeeded("classify document", err)
	}

	if c.cfg.Mode == ModeMultiCategory {
		return parseMultiCategory(raw)
	}
	return parseBinary(raw)
}

func (c *Classifier) generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(c.cfg.Temperature),
		SystemInstruction: genai.NewContentFromText(c.system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    c.schema,
	}
}

func responseSchema(mode Mode) *genai.Schema {
	reasoning := &genai.Schema{
		Type:        genai.TypeString,
		Description: "A concise, clear, and legally defensible reason for the decision based on the document content.",
	}

	if mode == ModeMultiCategory {
		properties := make(map[string]*genai.Schema, len(domain.RelevanceCategories)+1)
		required := make([]string, 0, len(domain.RelevanceCategories)+1)
		for _, category := range domain.RelevanceCategories {
			properties[category] = &genai.Schema{Type: genai.TypeBoolean}
			required = append(required, category)
		}
		properties["reasoning"] = reasoning
		required = append(required, "reasoning")
		return &genai.Schema{
			Type:       genai.TypeObject,
			Properties: properties,
			Required:   required,
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"decision": {
				Type:        genai.TypeString,
				Enum:        []string{string(domain.DecisionRelevant), string(domain.DecisionNotRelevant)},
				Description: "The relevance decision for the document.",
			},
			"reasoning": reasoning,
		},
		Required: []string{"decision", "reasoning"},
	}
}
