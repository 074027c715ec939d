package gemini

import (
	"fmt"
	"strings"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

const binarySystemInstruction = `You are an expert AI assistant for eDiscovery. Your task is to analyze a document in the context of a specific legal discovery query.
Determine if the document is "Relevant" or "Not Relevant" to the query.
Provide a concise, clear, and legally defensible reason for your decision. Your reasoning must be based solely on the provided document text.
Respond ONLY with the specified JSON object format.`

func systemInstruction(mode Mode) string {
	if mode != ModeMultiCategory {
		return binarySystemInstruction
	}

	var builder strings.Builder
	builder.WriteString(`You are an expert AI assistant for eDiscovery. Your task is to analyze a document in the context of a specific legal discovery query.
For each of the following relevance categories, decide whether the document is relevant to the query within that category:
`)
	for _, category := range domain.RelevanceCategories {
		builder.WriteString("- ")
		builder.WriteString(category)
		builder.WriteString("\n")
	}
	builder.WriteString(`Provide a concise, clear, and legally defensible reason for your decisions. Your reasoning must be based solely on the provided document text.
Respond ONLY with the specified JSON object format.`)
	return builder.String()
}

func buildClassificationPrompt(doc domain.Document, query string, snippetChars int) string {
	snippet := doc.Content
	if len(snippet) > snippetChars {
		snippet = snippet[:snippetChars]
	}

	return fmt.Sprintf("Discovery Query: %q\n\nDocument ID: %s\nDocument Name: %s\n\n---\n\nDocument Text:\n\n%s",
		query, doc.ID, doc.Name, snippet)
}
