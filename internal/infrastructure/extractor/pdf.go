package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

func extractPDF(file domain.IngestFile) (text string, err error) {
	raw, err := io.ReadAll(file.Body)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "read pdf file", err)
	}

	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = domain.WrapError(domain.ErrExtraction, "parse pdf", fmt.Errorf("parser panic: %v", r))
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "parse pdf", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "extract pdf text", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, plain); err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "extract pdf text", err)
	}
	return strings.TrimSpace(builder.String()), nil
}
