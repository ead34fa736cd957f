// Package jobanalysis extracts structured requirements from free-text job
// postings. Extraction failures never propagate; the documented fallback
// analysis is returned instead so proposal generation can always proceed.
package jobanalysis

import (
	"context"
	"encoding/json"
	"log"

	"github.com/nsavic/leadflow/internal/llm"
	"github.com/nsavic/leadflow/internal/prompts"
	"github.com/nsavic/leadflow/internal/schemas"
	"github.com/nsavic/leadflow/internal/types"
)

// fallbackScopeLimit bounds how much of the posting is echoed into the
// fallback project scope.
const fallbackScopeLimit = 200

// Analyzer extracts JobAnalysis records through an llm.Client.
type Analyzer struct {
	client llm.Client
}

// New creates an analyzer backed by the given generation client.
func New(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// AnalyzeJobPosting extracts structured requirements from a posting. On any
// call or parse failure it returns FallbackAnalysis for the posting.
func (a *Analyzer) AnalyzeJobPosting(ctx context.Context, jobPosting string) types.JobAnalysis {
	prompt := prompts.Format(prompts.MustGet("proposal.json", "analyze-job"), map[string]string{
		"JobPosting": jobPosting,
	})

	raw, err := a.client.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Printf("jobanalysis: generation call failed: %v", err)
		return FallbackAnalysis(jobPosting)
	}

	analysis, err := decodeAnalysis(raw)
	if err != nil {
		log.Printf("jobanalysis: unusable analysis payload: %v", err)
		return FallbackAnalysis(jobPosting)
	}

	return analysis
}

// FallbackAnalysis is the analysis used when extraction fails: no skills, a
// truncated echo of the posting as scope, and a single generic priority.
func FallbackAnalysis(jobPosting string) types.JobAnalysis {
	return types.JobAnalysis{
		RequiredSkills: []string{},
		ProjectScope:   truncate(jobPosting, fallbackScopeLimit) + "...",
		Budget:         "Not specified",
		Timeline:       "Not specified",
		KeyPriorities:  []string{"Complete project requirements"},
	}
}

func decodeAnalysis(raw string) (types.JobAnalysis, error) {
	payload := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateJobAnalysis([]byte(payload)); err != nil {
		return types.JobAnalysis{}, err
	}

	var analysis types.JobAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return types.JobAnalysis{}, err
	}
	return analysis, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
