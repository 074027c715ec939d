package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
	"github.com/discoverycraft/ediscovery-assistant/internal/core/ports"
	"github.com/discoverycraft/ediscovery-assistant/internal/observability/metrics"
)

// Router exposes the four presentation surfaces (import, query, documents,
// export) as a JSON API.
type Router struct {
	ingest    ports.DocumentIngestor
	discovery ports.DiscoveryRunner
	export    ports.ReportExporter
	docs      ports.DocumentStore
	results   ports.ResultStore
	state     ports.RunStateStore
	metrics   *metrics.ServerMetrics

	defaultMockCount int
	maxUploadBytes   int64
}

func NewRouter(
	ingest ports.DocumentIngestor,
	discovery ports.DiscoveryRunner,
	export ports.ReportExporter,
	docs ports.DocumentStore,
	results ports.ResultStore,
	state ports.RunStateStore,
	serverMetrics *metrics.ServerMetrics,
	defaultMockCount int,
	maxUploadBytes int64,
) *Router {
	return &Router{
		ingest:           ingest,
		discovery:        discovery,
		export:           export,
		docs:             docs,
		results:          results,
		state:            state,
		metrics:          serverMetrics,
		defaultMockCount: defaultMockCount,
		maxUploadBytes:   maxUploadBytes,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/mock", rt.loadMock)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/discovery/run", rt.runDiscovery)
	mux.HandleFunc("/v1/discovery/status", rt.discoveryStatus)
	mux.HandleFunc("/v1/discovery/results", rt.discoveryResults)
	mux.HandleFunc("/v1/reports/pdf", rt.exportPDF)
	mux.HandleFunc("/v1/reports/xlsx", rt.exportXLSX)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	handler = metricsMiddleware(rt.metrics, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocuments(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (rt *Router) uploadDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(rt.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "multipart field 'files' is required")
		return
	}

	files := make([]domain.IngestFile, 0, len(headers))
	var closers []interface{ Close() error }
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable multipart file "+header.Filename)
			for _, c := range closers {
				_ = c.Close()
			}
			return
		}
		closers = append(closers, file)
		files = append(files, domain.IngestFile{
			Name:     header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Body:     file,
		})
	}
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	report, err := rt.ingest.AddDocuments(r.Context(), files)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rt.metrics.IngestObserved(report.Success, report.Failed)
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	type documentSummary struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		ContentLength int    `json:"content_length"`
	}

	docs := rt.docs.Documents()
	window := paginate(len(docs), r)
	items := make([]documentSummary, 0, window.size())
	for _, doc := range docs[window.from:window.to] {
		items = append(items, documentSummary{ID: doc.ID, Name: doc.Name, ContentLength: len(doc.Content)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":     len(docs),
		"documents": items,
	})
}

func (rt *Router) loadMock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Count int `json:"count"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}
	if req.Count == 0 {
		req.Count = rt.defaultMockCount
	}

	loaded, err := rt.ingest.LoadMockData(r.Context(), req.Count)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"loaded": loaded})
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	doc, err := rt.docs.DocumentByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) runDiscovery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	run, err := rt.discovery.Start(r.Context(), req.Query)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// The run outlives the request; detach from its cancellation but keep
	// request-scoped values for logging.
	go rt.discovery.Execute(context.WithoutCancel(r.Context()), run)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"run_id": run.ID,
		"total":  len(run.Documents),
	})
}

func (rt *Router) discoveryStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, rt.state.State())
}

func (rt *Router) discoveryResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	results := rt.results.Results()
	if decision := r.URL.Query().Get("decision"); decision != "" {
		filtered := results[:0]
		for _, res := range results {
			if strings.EqualFold(string(res.Decision), decision) {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}
	if needle := strings.ToLower(r.URL.Query().Get("q")); needle != "" {
		filtered := results[:0]
		for _, res := range results {
			if strings.Contains(strings.ToLower(res.DocName), needle) ||
				strings.Contains(strings.ToLower(res.Reasoning), needle) {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}

	window := paginate(len(results), r)
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   len(results),
		"results": results[window.from:window.to],
	})
}

func (rt *Router) exportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	data, err := rt.export.ExportPDF(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rt.metrics.ReportExported("pdf")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="AI_Methodology_Report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (rt *Router) exportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	data, err := rt.export.ExportXLSX(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rt.metrics.ReportExported("xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="AI_Methodology_Report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type window struct {
	from, to int
}

func (w window) size() int { return w.to - w.from }

func paginate(total int, r *http.Request) window {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 || offset > total {
		offset = min(max(offset, 0), total)
	}
	if limit <= 0 || offset+limit > total {
		return window{from: offset, to: total}
	}
	return window{from: offset, to: offset + limit}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapErrorToHTTPStatus(err), err.Error())
}
