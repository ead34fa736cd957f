package proposal

import (
	"sync"

	"github.com/nsavic/leadflow/internal/types"
)

// DefaultHistorySize is how many proposals the service remembers.
const DefaultHistorySize = 5

// History is a bounded, mutex-guarded FIFO of proposal records. When the
// capacity is exceeded the oldest record is evicted; order is always
// oldest to newest.
type History struct {
	mu       sync.Mutex
	capacity int
	records  []types.ProposalRecord
}

// NewHistory creates a history holding at most capacity records.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{capacity: capacity}
}

// Append adds a record, evicting the oldest when full.
func (h *History) Append(record types.ProposalRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, record)
	if len(h.records) > h.capacity {
		h.records = h.records[len(h.records)-h.capacity:]
	}
}

// Records returns a copy of the history, oldest first.
func (h *History) Records() []types.ProposalRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]types.ProposalRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of stored records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}
