package campaign

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a campaign run.
type State string

// Run lifecycle states. A run moves Pending -> Running -> Completed|Failed.
const (
	StatePending   State = "Pending"
	StateRunning   State = "Running"
	StateCompleted State = "Completed"
	StateFailed    State = "Failed"
)

// Run tracks one campaign execution. Counters are updated as leads advance
// so /status reflects real progress rather than inferring it from files.
type Run struct {
	mu sync.Mutex

	id         uuid.UUID
	state      State
	total      int
	processed  int
	emailsSent int
	startedAt  time.Time
	finishedAt time.Time
	err        string
}

// RunStatus is an immutable snapshot of a run.
type RunStatus struct {
	RunID      string `json:"run_id"`
	State      State  `json:"state"`
	TotalLeads int    `json:"total_leads"`
	Processed  int    `json:"processed_leads"`
	EmailsSent int    `json:"emails_sent"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
	Error      string `json:"error,omitempty"`
}

func newRun() *Run {
	return &Run{id: uuid.New(), state: StatePending}
}

func (r *Run) start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateRunning
	r.total = total
	r.startedAt = time.Now()
}

func (r *Run) leadDone(sent bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed++
	if sent {
		r.emailsSent++
	}
}

func (r *Run) complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateCompleted
	r.finishedAt = time.Now()
}

func (r *Run) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateFailed
	r.finishedAt = time.Now()
	r.err = err.Error()
}

// Status returns a consistent snapshot of the run.
func (r *Run) Status() RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := RunStatus{
		RunID:      r.id.String(),
		State:      r.state,
		TotalLeads: r.total,
		Processed:  r.processed,
		EmailsSent: r.emailsSent,
		Error:      r.err,
	}
	if !r.startedAt.IsZero() {
		status.StartedAt = r.startedAt.Format(time.RFC3339)
	}
	if !r.finishedAt.IsZero() {
		status.FinishedAt = r.finishedAt.Format(time.RFC3339)
	}
	return status
}

// running reports whether the run is still in flight.
func (r *Run) running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == StatePending || r.state == StateRunning
}
