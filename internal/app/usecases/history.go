package usecases

import (
	"sync"

	"listing-importer/internal/domain/model"
)

// DefaultHistorySize bounds the in-memory import history.
const DefaultHistorySize = 50

// History is a bounded newest-first ring of import results. The import loop is
// sequential, but the HTTP server reads it from other goroutines, so access is
// mutex-guarded.
type History struct {
	mu    sync.Mutex
	max   int
	items []model.ImportResult
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{max: max}
}

func (h *History) Push(result model.ImportResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append([]model.ImportResult{result}, h.items...)
	if len(h.items) > h.max {
		h.items = h.items[:h.max]
	}
}

func (h *History) List() []model.ImportResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]model.ImportResult, len(h.items))
	copy(out, h.items)
	return out
}
