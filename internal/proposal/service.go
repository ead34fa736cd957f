package proposal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nsavic/leadflow/internal/types"
	"github.com/nsavic/leadflow/internal/vectorstore"
)

// Retrieval and response defaults.
const (
	DefaultTopK = 3
	DefaultTone = "professional"
	// GeneralMatch is reported when no required skills were extracted or
	// nothing was retrieved.
	GeneralMatch = "General experience match"
	// maxMatchedSkills caps how many required skills are echoed back.
	maxMatchedSkills = 3
)

// Analyzer extracts a JobAnalysis from a posting. Implemented by
// jobanalysis.Analyzer.
type Analyzer interface {
	AnalyzeJobPosting(ctx context.Context, jobPosting string) types.JobAnalysis
}

// Generator produces proposal prose. Implemented by Composer.
type Generator interface {
	GenerateProposal(ctx context.Context, analysis types.JobAnalysis, experience []types.RetrievedExperience, tone string) (string, error)
}

// Service orchestrates analysis, retrieval, and generation, and owns the
// bounded proposal history.
type Service struct {
	analyzer  Analyzer
	store     vectorstore.Store
	generator Generator
	history   *History
}

// NewService wires the proposal flow together.
func NewService(analyzer Analyzer, store vectorstore.Store, generator Generator) *Service {
	return &Service{
		analyzer:  analyzer,
		store:     store,
		generator: generator,
		history:   NewHistory(DefaultHistorySize),
	}
}

// GenerateProposal runs the full flow for one job posting. Retrieval and
// generation errors surface to the caller; analysis failures are absorbed
// upstream into the fallback analysis.
func (s *Service) GenerateProposal(ctx context.Context, jobPosting, tone string) (types.ProposalResponse, error) {
	if tone == "" {
		tone = DefaultTone
	}

	analysis := s.analyzer.AnalyzeJobPosting(ctx, jobPosting)

	query := BuildSearchQuery(analysis)
	experience, err := s.store.SearchRelevantExperience(ctx, query, DefaultTopK)
	if err != nil {
		return types.ProposalResponse{}, err
	}

	proposalText, err := s.generator.GenerateProposal(ctx, analysis, experience, tone)
	if err != nil {
		return types.ProposalResponse{}, err
	}

	confidence := CalculateConfidenceScore(analysis, experience)
	matched := MatchedSkills(analysis, experience)
	now := time.Now()

	s.history.Append(types.ProposalRecord{
		ID:              uuid.New(),
		JobPosting:      jobPosting,
		Proposal:        proposalText,
		ConfidenceScore: confidence,
		GeneratedAt:     now,
		MatchedSkills:   matched,
	})

	return types.ProposalResponse{
		Proposal:        proposalText,
		ConfidenceScore: confidence,
		MatchedSkills:   matched,
		GeneratedAt:     now,
	}, nil
}

// History returns the stored proposals, oldest first.
func (s *Service) History() []types.ProposalRecord {
	return s.history.Records()
}

// BuildSearchQuery concatenates the extracted skills, scope, and priorities
// into the retrieval query.
func BuildSearchQuery(analysis types.JobAnalysis) string {
	return strings.Join([]string{
		strings.Join(analysis.RequiredSkills, " "),
		analysis.ProjectScope,
		strings.Join(analysis.KeyPriorities, " "),
	}, " ")
}

// MatchedSkills reports which required skills backed the proposal: the first
// three extracted skills, or a generic marker when extraction or retrieval
// came up empty.
func MatchedSkills(analysis types.JobAnalysis, experience []types.RetrievedExperience) []string {
	if len(analysis.RequiredSkills) == 0 || len(experience) == 0 {
		return []string{GeneralMatch}
	}
	if len(analysis.RequiredSkills) > maxMatchedSkills {
		return analysis.RequiredSkills[:maxMatchedSkills]
	}
	return analysis.RequiredSkills
}
