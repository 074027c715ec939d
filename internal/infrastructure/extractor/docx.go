package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

// extractDOCX reads the OOXML main document part and joins paragraph text with
// newlines. No third-party dependency: a .docx is a zip containing
// word/document.xml.
func extractDOCX(file domain.IngestFile) (string, error) {
	raw, err := io.ReadAll(file.Body)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "read docx file", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "open docx archive", err)
	}

	part, err := archive.Open("word/document.xml")
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "open docx archive",
			fmt.Errorf("missing word/document.xml in %s", file.Name))
	}
	defer part.Close()

	text, err := documentXMLText(part)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "parse docx xml", err)
	}
	return text, nil
}

// documentXMLText walks the document part collecting w:t character data and
// emitting a newline at each paragraph end.
func documentXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var builder strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}
	return strings.TrimSpace(builder.String()), nil
}
