// Package types defines the shared data structures for the campaign and
// proposal services.
package types

import "time"

// Lead is one row of the input lead table. Columns beyond the well-known
// ones are preserved verbatim so they survive the enrichment round trip.
type Lead map[string]string

// Get returns the value for key, or fallback when the key is absent or empty.
func (l Lead) Get(key, fallback string) string {
	if v, ok := l[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Enrichment is the structured payload the outreach drafter extracts from
// the model's first response.
type Enrichment struct {
	PriorityScore     int      `json:"priority_score"`
	Persona           string   `json:"persona"`
	JobLevel          string   `json:"job_level"`
	DecisionAuthority string   `json:"decision_authority"`
	PainPoints        []string `json:"pain_points"`
	TalkingPoints     []string `json:"talking_points"`
}

// EnrichedLead is a lead after scoring, drafting, and delivery.
type EnrichedLead struct {
	Lead              Lead
	Enrichment        Enrichment
	PersonalizedEmail string
	Status            string
	EmailSent         bool
	SentAt            *time.Time
}

// BatchStats aggregates the outcome of a batch send.
type BatchStats struct {
	Total       int    `json:"total"`
	Sent        int    `json:"sent"`
	Failed      int    `json:"failed"`
	SuccessRate string `json:"success_rate"`
}
