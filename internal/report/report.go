// Package report writes markdown summaries of completed campaign runs.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nsavic/leadflow/internal/types"
)

// Generate writes a campaign report for the enriched leads and returns its
// path. The reports directory is created if needed.
func Generate(dir string, leads []types.EnrichedLead) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("campaign_report_%s.md", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(render(leads)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// Summary returns the number of generated reports and the path of the most
// recent one (lexicographically last, which matches the timestamped names).
func Summary(dir string) (count int, latest string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, ""
	}

	var reports []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			reports = append(reports, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(reports)

	if len(reports) == 0 {
		return 0, ""
	}
	return len(reports), reports[len(reports)-1]
}

func render(leads []types.EnrichedLead) string {
	sent := 0
	scoreSum := 0
	for _, lead := range leads {
		if lead.EmailSent {
			sent++
		}
		scoreSum += lead.Enrichment.PriorityScore
	}

	avg := 0.0
	if len(leads) > 0 {
		avg = float64(scoreSum) / float64(len(leads))
	}

	top := make([]types.EnrichedLead, len(leads))
	copy(top, leads)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Enrichment.PriorityScore > top[j].Enrichment.PriorityScore
	})
	if len(top) > 5 {
		top = top[:5]
	}

	var b strings.Builder
	b.WriteString("# Campaign Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC3339)))
	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- Total leads: %d\n", len(leads)))
	b.WriteString(fmt.Sprintf("- Emails sent: %d\n", sent))
	b.WriteString(fmt.Sprintf("- Emails failed: %d\n", len(leads)-sent))
	b.WriteString(fmt.Sprintf("- Average priority score: %.1f\n\n", avg))

	b.WriteString("## Top Leads\n\n")
	b.WriteString("| Name | Company | Score | Persona | Email Sent |\n")
	b.WriteString("|------|---------|-------|---------|------------|\n")
	for _, lead := range top {
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %t |\n",
			lead.Lead.Get("name", "Unknown"),
			lead.Lead.Get("company", ""),
			lead.Enrichment.PriorityScore,
			lead.Enrichment.Persona,
			lead.EmailSent,
		))
	}

	return b.String()
}
