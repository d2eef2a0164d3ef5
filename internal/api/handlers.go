package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"listing-importer/internal/app/usecases"
	"listing-importer/internal/logging"
)

type Handlers struct {
	importer usecases.ImportListingsService
	logger   logging.LoggerService
}

func NewHandlers(importer usecases.ImportListingsService, logger logging.LoggerService) *Handlers {
	return &Handlers{
		importer: importer,
		logger:   logger,
	}
}

type importRequest struct {
	URL  string   `json:"url,omitempty"`
	URLs []string `json:"urls,omitempty"`
}

func (req importRequest) allURLs() []string {
	var urls []string
	if u := strings.TrimSpace(req.URL); u != "" {
		urls = append(urls, u)
	}
	for _, u := range req.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (h *Handlers) CreateImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}

	urls := req.allURLs()
	if len(urls) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "no urls given"})
		return
	}

	h.logger.Log(fmt.Sprintf("import request urls=%d", len(urls)))
	results := h.importer.Run(r.Context(), urls)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handlers) ListImports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.importer.History()})
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
