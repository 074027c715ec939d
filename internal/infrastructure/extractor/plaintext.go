package extractor

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

func extractPlainText(file domain.IngestFile) (string, error) {
	raw, err := io.ReadAll(file.Body)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "read text file", err)
	}

	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrExtraction, "read text file",
			fmt.Errorf("%s is not valid UTF-8", file.Name))
	}

	return strings.TrimSpace(string(raw)), nil
}
