package domain

import "io"

// Document is an immutable piece of imported evidence. The ID is assigned at
// ingestion time and stays unique for the lifetime of the store.
type Document struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// IngestFile is one uploaded file handed to ingestion before extraction.
type IngestFile struct {
	Name     string
	MimeType string
	Body     io.Reader
}

// IngestReport aggregates per-file outcomes of one ingestion batch.
// Partial failure is expected; the batch never aborts early.
type IngestReport struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}
