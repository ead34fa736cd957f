// Package proposal generates freelance job proposals from a job analysis and
// retrieved profile experience, and keeps a bounded history of results.
package proposal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nsavic/leadflow/internal/llm"
	"github.com/nsavic/leadflow/internal/prompts"
	"github.com/nsavic/leadflow/internal/types"
)

// Confidence heuristic parameters. The score is a heuristic combining
// retrieval similarity and requirement coverage, not a calibrated
// probability.
const (
	maxSkillBoost     = 0.3
	perSkillBoost     = 0.1
	noSkillsFlatBoost = 0.1
)

// Composer turns an analysis plus retrieved experience into proposal prose.
type Composer struct {
	client llm.Client
}

// NewComposer creates a composer backed by the given generation client.
func NewComposer(client llm.Client) *Composer {
	return &Composer{client: client}
}

// GenerateProposal issues a single combined prompt and returns the raw
// response text. Unlike the extraction flows there is no fallback here;
// endpoint failures surface to the caller.
func (c *Composer) GenerateProposal(ctx context.Context, analysis types.JobAnalysis, experience []types.RetrievedExperience, tone string) (string, error) {
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize job analysis: %w", err)
	}

	prompt := prompts.Format(prompts.MustGet("proposal.json", "generate-proposal"), map[string]string{
		"JobAnalysis":        string(analysisJSON),
		"RelevantExperience": formatExperience(experience),
		"Tone":               tone,
	})

	proposal, err := c.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("proposal generation failed: %w", err)
	}
	return proposal, nil
}

// CalculateConfidenceScore estimates proposal quality from retrieval
// similarity and requirement count. Returns exactly 0.0 when nothing was
// retrieved; otherwise min(1, average relevance + skill boost).
func CalculateConfidenceScore(analysis types.JobAnalysis, experience []types.RetrievedExperience) float64 {
	if len(experience) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, exp := range experience {
		sum += exp.RelevanceScore
	}
	avgRelevance := sum / float64(len(experience))

	skillBoost := noSkillsFlatBoost
	if n := len(analysis.RequiredSkills); n > 0 {
		skillBoost = perSkillBoost * float64(n)
		if skillBoost > maxSkillBoost {
			skillBoost = maxSkillBoost
		}
	}

	confidence := avgRelevance + skillBoost
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}

// formatExperience labels each retrieved chunk with its relevance score.
func formatExperience(experience []types.RetrievedExperience) string {
	sections := make([]string, 0, len(experience))
	for i, exp := range experience {
		sections = append(sections, fmt.Sprintf("Experience %d (Relevance: %.2f):\n%s", i+1, exp.RelevanceScore, exp.Content))
	}
	return strings.Join(sections, "\n\n")
}
