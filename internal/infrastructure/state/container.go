// Package state holds the process-wide document, result and run state in one
// injectable in-memory container. State lives for the process lifetime only.
package state

import (
	"fmt"
	"sync"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

// Container is the single shared store behind the DocumentStore, ResultStore
// and RunStateStore ports. One mutex covers everything: writers are the
// ingestion path and the one in-flight pipeline, and observers only take
// snapshots.
type Container struct {
	mu        sync.Mutex
	docs      []domain.Document
	docIndex  map[string]int
	results   []domain.DiscoveryResult
	state     domain.ProcessingState
	lastQuery string
}

func NewContainer() *Container {
	return &Container{
		docIndex: make(map[string]int),
		state:    domain.ProcessingState{Status: domain.StatusIdle},
	}
}

func (c *Container) AppendDocument(doc domain.Document, res domain.DiscoveryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.docIndex[doc.ID] = len(c.docs)
	c.docs = append(c.docs, doc)
	c.results = append(c.results, res)
}

// ReplaceAll swaps the entire document and result set, as the mock data
// fixture does.
func (c *Container) ReplaceAll(docs []domain.Document, results []domain.DiscoveryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.docs = append([]domain.Document(nil), docs...)
	c.results = append([]domain.DiscoveryResult(nil), results...)
	c.docIndex = make(map[string]int, len(docs))
	for i, doc := range docs {
		c.docIndex[doc.ID] = i
	}
}

// Documents returns a snapshot in import order.
func (c *Container) Documents() []domain.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Document(nil), c.docs...)
}

func (c *Container) DocumentByID(id string) (domain.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.docIndex[id]
	if !ok {
		return domain.Document{}, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id %q", id))
	}
	return c.docs[i], nil
}

func (c *Container) DocumentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

// Results returns a snapshot in store order: first-seen order until a run
// replaces entries, classified order afterwards.
func (c *Container) Results() []domain.DiscoveryResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.DiscoveryResult(nil), c.results...)
}

// UpsertResult removes any existing result with the same document id and
// appends the new one.
func (c *Container) UpsertResult(res domain.DiscoveryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.results[:0]
	for _, existing := range c.results {
		if existing.DocID != res.DocID {
			kept = append(kept, existing)
		}
	}
	c.results = append(kept, res)
}

func (c *Container) State() domain.ProcessingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// BeginRun claims the run slot. Exactly one run may be processing at a time.
func (c *Container) BeginRun(total int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status == domain.StatusProcessing {
		return domain.WrapError(domain.ErrRunInProgress, "begin run",
			fmt.Errorf("progress %d/%d", c.state.Progress, c.state.Total))
	}
	c.state = domain.ProcessingState{Status: domain.StatusProcessing, Progress: 0, Total: total}
	return nil
}

func (c *Container) RecordQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastQuery = query
}

func (c *Container) LastQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastQuery
}

func (c *Container) SetProgress(progress int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Progress = progress
}

func (c *Container) FinishRun() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Status = domain.StatusDone
}

func (c *Container) ResetState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = domain.ProcessingState{Status: domain.StatusIdle}
}
