// Package campaign orchestrates the lead outreach pipeline: read the lead
// table, enrich and email every lead sequentially, write the enriched table
// back out, and generate a campaign report.
package campaign

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/nsavic/leadflow/internal/leadcsv"
	"github.com/nsavic/leadflow/internal/report"
	"github.com/nsavic/leadflow/internal/types"
)

// Pipeline-level errors surfaced to the HTTP layer before background work
// starts.
var (
	ErrInputMissing   = errors.New("input lead table not found")
	ErrAlreadyRunning = errors.New("a campaign run is already in progress")
)

// LeadProcessor enriches a single lead. Implemented by enrich.Drafter.
type LeadProcessor interface {
	ProcessLead(ctx context.Context, lead types.Lead) types.EnrichedLead
}

// OutreachSender delivers a single lead's email. Implemented by mailer.Mailer.
type OutreachSender interface {
	SendOutreach(lead types.EnrichedLead) bool
}

// Options holds the file locations a pipeline works against.
type Options struct {
	InputPath  string
	OutputPath string
	ReportsDir string
}

// Pipeline drives campaign runs. At most one run is in flight at a time;
// leads are processed strictly sequentially.
type Pipeline struct {
	processor LeadProcessor
	sender    OutreachSender
	opts      Options

	mu      sync.Mutex
	current *Run
}

// New creates a campaign pipeline.
func New(processor LeadProcessor, sender OutreachSender, opts Options) *Pipeline {
	return &Pipeline{processor: processor, sender: sender, opts: opts}
}

// Start begins a background campaign run. It fails fast with
// ErrInputMissing when the input table is absent and ErrAlreadyRunning when
// a run is still in flight.
//
// The run must outlive the triggering HTTP request: net/http cancels the
// request context once the handler returns its 202, which would abort every
// generation call mid-run. The goroutine therefore gets a context detached
// from the caller's cancellation.
func (p *Pipeline) Start(ctx context.Context) (*Run, error) {
	if _, err := os.Stat(p.opts.InputPath); os.IsNotExist(err) {
		return nil, ErrInputMissing
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && p.current.running() {
		return nil, ErrAlreadyRunning
	}

	run := newRun()
	p.current = run

	go p.execute(context.WithoutCancel(ctx), run)
	return run, nil
}

// CurrentRun returns the most recent run, or nil if none has started.
func (p *Pipeline) CurrentRun() *Run {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Execute runs the pipeline synchronously. Exposed for the CLI entry point;
// the HTTP flow goes through Start.
func (p *Pipeline) Execute(ctx context.Context) (RunStatus, error) {
	run := newRun()
	p.mu.Lock()
	p.current = run
	p.mu.Unlock()

	err := p.run(ctx, run)
	return run.Status(), err
}

func (p *Pipeline) execute(ctx context.Context, run *Run) {
	if err := p.run(ctx, run); err != nil {
		log.Printf("campaign: run %s failed: %v", run.id, err)
	}
}

// run executes the full pipeline. Per-lead failures are absorbed inside the
// drafter and mailer; only table read/write and report errors fail the run.
func (p *Pipeline) run(ctx context.Context, run *Run) error {
	log.Printf("campaign: starting run %s", run.id)

	header, leads, err := leadcsv.Read(p.opts.InputPath)
	if err != nil {
		run.fail(err)
		return err
	}

	run.start(len(leads))
	log.Printf("campaign: loaded %d leads", len(leads))

	enriched := make([]types.EnrichedLead, 0, len(leads))
	for i, lead := range leads {
		log.Printf("campaign: processing lead %d/%d: %s", i+1, len(leads), lead.Get("name", "Unknown"))

		result := p.processor.ProcessLead(ctx, lead)

		sent := p.sender.SendOutreach(result)
		result.EmailSent = sent
		if sent {
			now := time.Now()
			result.SentAt = &now
		}

		enriched = append(enriched, result)
		run.leadDone(sent)
	}

	if err := leadcsv.Write(p.opts.OutputPath, header, enriched); err != nil {
		run.fail(err)
		return err
	}
	log.Printf("campaign: saved enriched table to %s", p.opts.OutputPath)

	reportPath, err := report.Generate(p.opts.ReportsDir, enriched)
	if err != nil {
		run.fail(err)
		return err
	}
	log.Printf("campaign: report generated: %s", reportPath)

	run.complete()
	log.Printf("campaign: run %s complete", run.id)
	return nil
}

// Status describes the campaign service state for the /status endpoint.
type Status struct {
	InputFileExists  bool       `json:"input_file_exists"`
	OutputFileExists bool       `json:"output_file_exists"`
	TotalLeads       *int       `json:"total_leads,omitempty"`
	ProcessedLeads   *int       `json:"processed_leads,omitempty"`
	EmailsSent       *int       `json:"emails_sent,omitempty"`
	ReportsGenerated int        `json:"reports_generated"`
	LatestReport     string     `json:"latest_report,omitempty"`
	Run              *RunStatus `json:"run,omitempty"`
	Timestamp        string     `json:"timestamp"`
}

// Status assembles the observable state of the campaign service: file
// existence, table summaries, report inventory, and the live run snapshot.
func (p *Pipeline) Status() Status {
	status := Status{Timestamp: time.Now().Format(time.RFC3339)}

	if _, err := os.Stat(p.opts.InputPath); err == nil {
		status.InputFileExists = true
		if rows, _, err := leadcsv.Summary(p.opts.InputPath); err == nil {
			status.TotalLeads = &rows
		}
	}

	if _, err := os.Stat(p.opts.OutputPath); err == nil {
		status.OutputFileExists = true
		if rows, sent, err := leadcsv.Summary(p.opts.OutputPath); err == nil {
			status.ProcessedLeads = &rows
			status.EmailsSent = &sent
		}
	}

	status.ReportsGenerated, status.LatestReport = report.Summary(p.opts.ReportsDir)

	if run := p.CurrentRun(); run != nil {
		snapshot := run.Status()
		status.Run = &snapshot
	}

	return status
}
