package types

import (
	"time"

	"github.com/google/uuid"
)

// FreelancerProfile is the profile submitted for embedding. The structured
// form is not retained after storage; only derived text chunks and their
// metadata persist in the vector index.
type FreelancerProfile struct {
	Name         string   `json:"name" validate:"required"`
	Skills       []string `json:"skills" validate:"required,min=1"`
	Experience   string   `json:"experience" validate:"required"`
	PastProjects []string `json:"past_projects"`
	Rates        string   `json:"rates,omitempty"`
	Bio          string   `json:"bio,omitempty"`
}

// JobAnalysis is the structured extraction of a job posting.
type JobAnalysis struct {
	RequiredSkills []string `json:"required_skills"`
	ProjectScope   string   `json:"project_scope"`
	Budget         string   `json:"budget"`
	Timeline       string   `json:"timeline"`
	KeyPriorities  []string `json:"key_priorities"`
}

// RetrievedExperience is one vector-search hit: a stored profile chunk with
// its similarity to the query.
type RetrievedExperience struct {
	Content        string         `json:"content"`
	Metadata       map[string]any `json:"metadata"`
	RelevanceScore float64        `json:"relevance_score"`
}

// ProposalRecord is one entry of the bounded proposal history.
type ProposalRecord struct {
	ID              uuid.UUID `json:"id"`
	JobPosting      string    `json:"job_posting"`
	Proposal        string    `json:"proposal"`
	ConfidenceScore float64   `json:"confidence_score"`
	GeneratedAt     time.Time `json:"generated_at"`
	MatchedSkills   []string  `json:"matched_skills"`
}

// ProposalRequest is the body of POST /api/proposal/generate.
type ProposalRequest struct {
	JobPosting string `json:"job_posting" validate:"required"`
	Tone       string `json:"tone,omitempty"`
}

// ProposalResponse is the response of POST /api/proposal/generate.
type ProposalResponse struct {
	Proposal        string    `json:"proposal"`
	ConfidenceScore float64   `json:"confidence_score"`
	MatchedSkills   []string  `json:"matched_skills"`
	GeneratedAt     time.Time `json:"generated_at"`
}
