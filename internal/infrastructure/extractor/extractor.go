// Package extractor converts uploaded files into plain text, dispatching on
// the declared MIME type with an extension fallback.
package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

const (
	mimePlainText = "text/plain"
	mimePDF       = "application/pdf"
	mimeDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Extract(ctx context.Context, file domain.IngestFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch kind(file) {
	case mimePlainText:
		return extractPlainText(file)
	case mimePDF:
		return extractPDF(file)
	case mimeDOCX:
		return extractDOCX(file)
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract",
			fmt.Errorf("type %q (file %s)", file.MimeType, file.Name))
	}
}

// kind normalizes a file to one of the supported MIME types, or returns the
// declared type unchanged when nothing matches.
func kind(file domain.IngestFile) string {
	mime := file.MimeType
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.ToLower(strings.TrimSpace(mime))

	switch mime {
	case mimePlainText, mimePDF, mimeDOCX:
		return mime
	}

	switch strings.ToLower(filepath.Ext(file.Name)) {
	case ".txt":
		return mimePlainText
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	}
	return mime
}
