package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kubev2v/handoff/internal/models"
)

// history keeps the last size delivered items, oldest evicted first.
type history struct {
	size  int
	order []uuid.UUID
	items map[uuid.UUID]models.WorkItem
	mu    sync.RWMutex
}

func newHistory(size int) *history {
	return &history{
		size:  size,
		items: make(map[uuid.UUID]models.WorkItem),
	}
}

func (h *history) add(item models.WorkItem) {
	if h.size <= 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.items[item.Handle]; !ok {
		h.order = append(h.order, item.Handle)
	}
	h.items[item.Handle] = item

	for len(h.order) > h.size {
		delete(h.items, h.order[0])
		h.order = h.order[1:]
	}
}

func (h *history) get(handle uuid.UUID) (models.WorkItem, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	item, ok := h.items[handle]
	return item, ok
}
