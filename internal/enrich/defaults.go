package enrich

import (
	"fmt"
	"strings"

	"github.com/nsavic/leadflow/internal/types"
)

// Placeholder values for missing lead fields.
const (
	DefaultName    = "Unknown"
	DefaultCompany = "Unknown Company"
	DefaultRole    = "Unknown Role"
)

// Merge-time defaults applied when the model omits a field from an otherwise
// valid payload.
const (
	DefaultPersona           = "Unknown"
	DefaultJobLevel          = "Unknown"
	DefaultDecisionAuthority = "Medium"
)

// CallFailureEnrichment is returned when the generation endpoint cannot be
// reached or errors. It is a first-class constant so the fallback path is
// testable against exact values.
func CallFailureEnrichment() types.Enrichment {
	return types.Enrichment{
		PriorityScore:     5,
		Persona:           "Business Professional",
		JobLevel:          "Mid",
		DecisionAuthority: "Medium",
		PainPoints:        []string{"Efficiency"},
		TalkingPoints:     []string{"Product value"},
	}
}

// ParseFailureEnrichment is returned when the endpoint responded but the
// response contained no usable JSON payload.
func ParseFailureEnrichment() types.Enrichment {
	return types.Enrichment{
		PriorityScore:     5,
		Persona:           "Business Professional",
		JobLevel:          "Mid",
		DecisionAuthority: "Medium",
		PainPoints:        []string{"Efficiency", "Growth"},
		TalkingPoints:     []string{"Solution benefits", "ROI"},
	}
}

// FallbackEmail is the deterministic outreach body used when email
// generation fails.
func FallbackEmail(name string) string {
	first := firstName(name)
	return fmt.Sprintf("Hi %s,\n\nI hope this email finds you well. I wanted to reach out to discuss how we can help your team achieve better results.\n\nWould you be available for a quick call?\n\nBest regards,\nSales Team", first)
}

// firstName returns the first whitespace-separated token of name, or "there"
// when the name is empty.
func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
