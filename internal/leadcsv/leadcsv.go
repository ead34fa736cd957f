// Package leadcsv reads and writes the lead tables the campaign pipeline
// operates on. Input columns are preserved verbatim; enrichment results are
// appended as additional columns.
package leadcsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nsavic/leadflow/internal/types"
)

// EnrichmentColumns are appended, in order, after the input header when the
// enriched table is written out.
var EnrichmentColumns = []string{
	"priority_score",
	"persona",
	"job_level",
	"decision_authority",
	"pain_points",
	"talking_points",
	"personalized_email",
	"status",
	"email_sent",
	"sent_at",
}

// Read loads a lead table. The first row is the header; every following row
// becomes one Lead keyed by header name. Short rows are padded with empty
// values so ragged files do not fail the whole run.
func Read(path string) ([]string, []types.Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open lead table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read lead table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("lead table %s is empty", path)
	}

	header := records[0]
	leads := make([]types.Lead, 0, len(records)-1)
	for _, row := range records[1:] {
		lead := make(types.Lead, len(header))
		for i, col := range header {
			if i < len(row) {
				lead[col] = row[i]
			} else {
				lead[col] = ""
			}
		}
		leads = append(leads, lead)
	}

	return header, leads, nil
}

// Write saves the enriched table: the original header plus the enrichment
// columns, one row per lead.
func Write(path string, header []string, leads []types.EnrichedLead) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create enriched table %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	outHeader := append(append([]string{}, header...), EnrichmentColumns...)
	if err := w.Write(outHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, lead := range leads {
		row := make([]string, 0, len(outHeader))
		for _, col := range header {
			row = append(row, lead.Lead[col])
		}
		row = append(row, enrichmentValues(lead)...)
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush enriched table %s: %w", path, err)
	}
	return nil
}

// Summary returns the row count of a table and, when an email_sent column is
// present, how many rows have it set to true.
func Summary(path string) (rows, emailsSent int, err error) {
	header, leads, err := Read(path)
	if err != nil {
		return 0, 0, err
	}

	sentCol := ""
	for _, col := range header {
		if col == "email_sent" {
			sentCol = col
			break
		}
	}

	for _, lead := range leads {
		if sentCol != "" && lead[sentCol] == "true" {
			emailsSent++
		}
	}
	return len(leads), emailsSent, nil
}

func enrichmentValues(lead types.EnrichedLead) []string {
	sentAt := ""
	if lead.SentAt != nil {
		sentAt = lead.SentAt.Format(time.RFC3339)
	}

	return []string{
		strconv.Itoa(lead.Enrichment.PriorityScore),
		lead.Enrichment.Persona,
		lead.Enrichment.JobLevel,
		lead.Enrichment.DecisionAuthority,
		strings.Join(lead.Enrichment.PainPoints, ", "),
		strings.Join(lead.Enrichment.TalkingPoints, ", "),
		lead.PersonalizedEmail,
		lead.Status,
		strconv.FormatBool(lead.EmailSent),
		sentAt,
	}
}
