// Package enrich implements the outreach drafter: it scores a lead, derives
// a buyer persona, and drafts a personalized outreach email by issuing two
// sequential prompts to the generation endpoint.
//
// The drafter never fails a lead. Every endpoint or parse error is mapped to
// a documented default so the campaign pipeline can keep moving.
package enrich

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/nsavic/leadflow/internal/llm"
	"github.com/nsavic/leadflow/internal/prompts"
	"github.com/nsavic/leadflow/internal/schemas"
	"github.com/nsavic/leadflow/internal/types"
)

// StatusProcessed marks a lead that went through the drafter.
const StatusProcessed = "Processed"

// Drafter enriches leads through an llm.Client.
type Drafter struct {
	client llm.Client
}

// NewDrafter creates a drafter backed by the given generation client.
func NewDrafter(client llm.Client) *Drafter {
	return &Drafter{client: client}
}

// ProcessLead scores and enriches one lead, then drafts its outreach email.
// Missing input fields default to placeholders; endpoint and parse failures
// are absorbed into the documented default payloads.
func (d *Drafter) ProcessLead(ctx context.Context, lead types.Lead) types.EnrichedLead {
	name := lead.Get("name", DefaultName)
	role := lead.Get("role", DefaultRole)
	company := lead.Get("company", DefaultCompany)
	industry := lead.Get("industry", "")

	enrichment := d.enrichLead(ctx, name, role, company, industry)
	email := d.draftEmail(ctx, name, role, company, enrichment)

	return types.EnrichedLead{
		Lead:              lead,
		Enrichment:        enrichment,
		PersonalizedEmail: strings.TrimSpace(email),
		Status:            StatusProcessed,
	}
}

// enrichLead runs the scoring/persona prompt and decodes its JSON payload.
func (d *Drafter) enrichLead(ctx context.Context, name, role, company, industry string) types.Enrichment {
	prompt := prompts.Format(prompts.MustGet("outreach.json", "enrich-lead"), map[string]string{
		"Name":     name,
		"Role":     role,
		"Company":  company,
		"Industry": industry,
	})

	raw, err := d.client.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Printf("enrich: generation call failed for %s: %v", name, err)
		return CallFailureEnrichment()
	}

	enrichment, err := decodeEnrichment(raw)
	if err != nil {
		log.Printf("enrich: unusable enrichment payload for %s: %v", name, err)
		return ParseFailureEnrichment()
	}

	return enrichment
}

// draftEmail runs the email prompt. The response is used verbatim; there is
// no JSON parsing on this leg.
func (d *Drafter) draftEmail(ctx context.Context, name, role, company string, enrichment types.Enrichment) string {
	prompt := prompts.Format(prompts.MustGet("outreach.json", "outreach-email"), map[string]string{
		"Name":       name,
		"Role":       role,
		"Company":    company,
		"Persona":    enrichment.Persona,
		"PainPoints": strings.Join(enrichment.PainPoints, ", "),
	})

	body, err := d.client.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("enrich: email generation failed for %s: %v", name, err)
		return FallbackEmail(name)
	}

	return body
}

// decodeEnrichment extracts the first balanced JSON object from raw model
// output, validates it against the enrichment schema, and decodes it.
func decodeEnrichment(raw string) (types.Enrichment, error) {
	payload := llm.ExtractJSONObject(raw)
	if payload == "" {
		return types.Enrichment{}, &ParseError{Message: "no JSON object in response"}
	}

	if err := schemas.ValidateEnrichment([]byte(payload)); err != nil {
		return types.Enrichment{}, &ParseError{Message: "payload failed schema validation", Cause: err}
	}

	var enrichment types.Enrichment
	if err := json.Unmarshal([]byte(payload), &enrichment); err != nil {
		return types.Enrichment{}, &ParseError{Message: "failed to decode payload", Cause: err}
	}

	applyPayloadDefaults(&enrichment)
	return enrichment, nil
}

// applyPayloadDefaults fills fields the model omitted from a valid payload.
func applyPayloadDefaults(e *types.Enrichment) {
	if e.Persona == "" {
		e.Persona = DefaultPersona
	}
	if e.JobLevel == "" {
		e.JobLevel = DefaultJobLevel
	}
	if e.DecisionAuthority == "" {
		e.DecisionAuthority = DefaultDecisionAuthority
	}
}
