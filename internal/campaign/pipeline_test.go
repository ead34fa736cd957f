package campaign

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsavic/leadflow/internal/leadcsv"
	"github.com/nsavic/leadflow/internal/types"
)

// fakeProcessor enriches leads with a fixed payload. When the gate channel
// is non-nil it blocks until the channel is closed.
type fakeProcessor struct {
	gate chan struct{}
}

func (f *fakeProcessor) ProcessLead(_ context.Context, lead types.Lead) types.EnrichedLead {
	if f.gate != nil {
		<-f.gate
	}
	return types.EnrichedLead{
		Lead:              lead,
		Enrichment:        types.Enrichment{PriorityScore: 7, Persona: "Tester"},
		PersonalizedEmail: "drafted body",
		Status:            "Processed",
	}
}

// fakeSender succeeds whenever the lead has an email address.
type fakeSender struct {
	calls int
}

func (f *fakeSender) SendOutreach(lead types.EnrichedLead) bool {
	f.calls++
	return lead.Lead.Get("email", "") != ""
}

func setupPipeline(t *testing.T, csvContent string) (*Pipeline, Options, *fakeSender) {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		InputPath:  filepath.Join(dir, "leads.csv"),
		OutputPath: filepath.Join(dir, "leads_enriched.csv"),
		ReportsDir: filepath.Join(dir, "reports"),
	}
	if csvContent != "" {
		require.NoError(t, os.WriteFile(opts.InputPath, []byte(csvContent), 0o644))
	}
	sender := &fakeSender{}
	return New(&fakeProcessor{}, sender, opts), opts, sender
}

func TestExecute_EndToEnd(t *testing.T) {
	input := "name,email,company,role,industry\nAna,ana@acme.io,Acme,CTO,SaaS\nBo,,Initech,VP Sales,Tech\n"
	p, opts, sender := setupPipeline(t, input)

	status, err := p.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, status.State)
	assert.Equal(t, 2, status.TotalLeads)
	assert.Equal(t, 2, status.Processed)
	assert.Equal(t, 1, status.EmailsSent)
	assert.Equal(t, 2, sender.calls)

	// Output table: exactly two rows, delivery outcome recorded per lead.
	_, rows, err := leadcsv.Read(opts.OutputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "true", rows[0]["email_sent"])
	assert.NotEmpty(t, rows[0]["sent_at"])
	assert.Equal(t, "false", rows[1]["email_sent"])
	assert.Empty(t, rows[1]["sent_at"])
	assert.Equal(t, "Processed", rows[0]["status"])
	assert.Equal(t, "7", rows[0]["priority_score"])

	// Report was generated.
	entries, err := os.ReadDir(opts.ReportsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExecute_ReadErrorFailsRun(t *testing.T) {
	p, opts, _ := setupPipeline(t, "")
	// Input file exists but is empty, so the table read fails.
	require.NoError(t, os.WriteFile(opts.InputPath, nil, 0o644))

	status, err := p.Execute(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StateFailed, status.State)
	assert.NotEmpty(t, status.Error)
}

func TestStart_InputMissing(t *testing.T) {
	p, _, _ := setupPipeline(t, "")

	_, err := p.Start(context.Background())
	assert.ErrorIs(t, err, ErrInputMissing)
}

func TestStart_RejectsConcurrentRun(t *testing.T) {
	input := "name,email\nAna,ana@acme.io\n"
	p, _, _ := setupPipeline(t, input)

	gate := make(chan struct{})
	p.processor = &fakeProcessor{gate: gate}

	run, err := p.Start(context.Background())
	require.NoError(t, err)

	_, err = p.Start(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	close(gate)
	waitForState(t, run, StateCompleted)

	// Once finished, a new run is accepted.
	_, err = p.Start(context.Background())
	assert.NoError(t, err)
}

func TestStart_RunSurvivesCallerCancellation(t *testing.T) {
	input := "name,email\nAna,ana@acme.io\n"
	p, _, _ := setupPipeline(t, input)

	recorder := &ctxRecordingProcessor{}
	p.processor = recorder

	// The caller's context is canceled the moment Start returns, the way a
	// request context is once the handler has written its response.
	ctx, cancel := context.WithCancel(context.Background())
	run, err := p.Start(ctx)
	require.NoError(t, err)
	cancel()

	waitForState(t, run, StateCompleted)

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	require.Len(t, recorder.errs, 1)
	assert.NoError(t, recorder.errs[0])
}

// ctxRecordingProcessor waits long enough for the caller to be gone, then
// records whether its context was canceled.
type ctxRecordingProcessor struct {
	mu   sync.Mutex
	errs []error
}

func (p *ctxRecordingProcessor) ProcessLead(ctx context.Context, lead types.Lead) types.EnrichedLead {
	time.Sleep(50 * time.Millisecond)
	p.mu.Lock()
	p.errs = append(p.errs, ctx.Err())
	p.mu.Unlock()
	return types.EnrichedLead{Lead: lead, Status: "Processed"}
}

func TestStatus(t *testing.T) {
	input := "name,email\nAna,ana@acme.io\nBo,\n"
	p, _, _ := setupPipeline(t, input)

	// Before any run: input visible, nothing else.
	status := p.Status()
	assert.True(t, status.InputFileExists)
	assert.False(t, status.OutputFileExists)
	require.NotNil(t, status.TotalLeads)
	assert.Equal(t, 2, *status.TotalLeads)
	assert.Nil(t, status.ProcessedLeads)
	assert.Zero(t, status.ReportsGenerated)
	assert.Nil(t, status.Run)

	_, err := p.Execute(context.Background())
	require.NoError(t, err)

	status = p.Status()
	assert.True(t, status.OutputFileExists)
	require.NotNil(t, status.ProcessedLeads)
	assert.Equal(t, 2, *status.ProcessedLeads)
	require.NotNil(t, status.EmailsSent)
	assert.Equal(t, 1, *status.EmailsSent)
	assert.Equal(t, 1, status.ReportsGenerated)
	assert.NotEmpty(t, status.LatestReport)
	require.NotNil(t, status.Run)
	assert.Equal(t, StateCompleted, status.Run.State)
}

// waitForState polls a run until it reaches the wanted state or times out.
func waitForState(t *testing.T, run *Run, want State) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		if run.Status().State == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("run never reached state %s (now %s)", want, run.Status().State)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
