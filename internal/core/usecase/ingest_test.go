package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

type extractorFake struct {
	failFor map[string]error
}

func (f *extractorFake) Extract(_ context.Context, file domain.IngestFile) (string, error) {
	if err := f.failFor[file.Name]; err != nil {
		return "", err
	}
	return "extracted text of " + file.Name, nil
}

func ingestFiles(names ...string) []domain.IngestFile {
	files := make([]domain.IngestFile, 0, len(names))
	for _, name := range names {
		files = append(files, domain.IngestFile{
			Name:     name,
			MimeType: "text/plain",
			Body:     strings.NewReader("body of " + name),
		})
	}
	return files
}

func TestAddDocumentsRejectsEmptyBatch(t *testing.T) {
	store := newStoreFake()
	uc := NewIngestUseCase(store, store, &extractorFake{})

	_, err := uc.AddDocuments(context.Background(), nil)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestAddDocumentsPartialFailure(t *testing.T) {
	store := newStoreFake()
	extractor := &extractorFake{failFor: map[string]error{
		"broken.pdf": errors.New("corrupt pdf"),
	}}
	uc := NewIngestUseCase(store, store, extractor)

	report, err := uc.AddDocuments(context.Background(), ingestFiles("a.txt", "broken.pdf", "b.txt", "c.txt"))
	if err != nil {
		t.Fatalf("AddDocuments() error = %v", err)
	}

	if report.Success != 3 || report.Failed != 1 {
		t.Fatalf("expected report {3 1}, got %+v", report)
	}
	if store.DocumentCount() != 3 {
		t.Fatalf("expected 3 stored documents, got %d", store.DocumentCount())
	}
	if len(store.results) != 3 {
		t.Fatalf("expected one pending result per document, got %d", len(store.results))
	}
	for i, res := range store.results {
		if res.Decision != domain.DecisionPending {
			t.Fatalf("result %d: expected pending decision, got %s", i, res.Decision)
		}
		if res.Reasoning != domain.PendingReasoning {
			t.Fatalf("result %d: unexpected reasoning %q", i, res.Reasoning)
		}
	}
}

func TestAddDocumentsFailedFilesConsumeNoID(t *testing.T) {
	store := newStoreFake(testDocuments(5)...)
	extractor := &extractorFake{failFor: map[string]error{
		"bad.docx": errors.New("not a zip"),
	}}
	uc := NewIngestUseCase(store, store, extractor)

	report, err := uc.AddDocuments(context.Background(), ingestFiles("one.txt", "bad.docx", "two.txt", "three.txt"))
	if err != nil {
		t.Fatalf("AddDocuments() error = %v", err)
	}
	if report.Success != 3 || report.Failed != 1 {
		t.Fatalf("expected report {3 1}, got %+v", report)
	}

	wantIDs := []string{"UPL.0001.001.0006", "UPL.0001.001.0007", "UPL.0001.001.0008"}
	wantNames := []string{"one.txt", "two.txt", "three.txt"}
	added := store.docs[5:]
	if len(added) != len(wantIDs) {
		t.Fatalf("expected %d added documents, got %d", len(wantIDs), len(added))
	}
	for i, doc := range added {
		if doc.ID != wantIDs[i] {
			t.Fatalf("document %d: expected id %s, got %s", i, wantIDs[i], doc.ID)
		}
		if doc.Name != wantNames[i] {
			t.Fatalf("document %d: expected name %s, got %s", i, wantNames[i], doc.Name)
		}
	}
}

func TestAddDocumentsStoresExtractedContent(t *testing.T) {
	store := newStoreFake()
	uc := NewIngestUseCase(store, store, &extractorFake{})

	if _, err := uc.AddDocuments(context.Background(), ingestFiles("memo.txt")); err != nil {
		t.Fatalf("AddDocuments() error = %v", err)
	}
	if got := store.docs[0].Content; got != "extracted text of memo.txt" {
		t.Fatalf("unexpected stored content %q", got)
	}
}
