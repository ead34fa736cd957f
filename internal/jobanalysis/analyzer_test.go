package jobanalysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error

	lastPrompt string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestAnalyzeJobPosting_Success(t *testing.T) {
	client := &fakeClient{response: `{
		"required_skills": ["React", "AI"],
		"project_scope": "Build an AI-assisted frontend",
		"budget": "$5000",
		"timeline": "2 months",
		"key_priorities": ["Fast delivery"]
	}`}

	analysis := New(client).AnalyzeJobPosting(context.Background(), "Need a React developer with AI experience")

	assert.Equal(t, []string{"React", "AI"}, analysis.RequiredSkills)
	assert.Equal(t, "Build an AI-assisted frontend", analysis.ProjectScope)
	assert.Equal(t, "$5000", analysis.Budget)
	assert.Equal(t, "2 months", analysis.Timeline)
	assert.Equal(t, []string{"Fast delivery"}, analysis.KeyPriorities)
	assert.Contains(t, client.lastPrompt, "Need a React developer")
}

func TestAnalyzeJobPosting_FencedResponse(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"required_skills\": [\"Go\"], \"project_scope\": \"API work\"}\n```"}

	analysis := New(client).AnalyzeJobPosting(context.Background(), "posting")

	assert.Equal(t, []string{"Go"}, analysis.RequiredSkills)
	assert.Equal(t, "API work", analysis.ProjectScope)
}

func TestAnalyzeJobPosting_CallFailureUsesFallback(t *testing.T) {
	client := &fakeClient{err: errors.New("unreachable")}
	posting := "Short posting"

	analysis := New(client).AnalyzeJobPosting(context.Background(), posting)

	assert.Equal(t, FallbackAnalysis(posting), analysis)
	assert.Empty(t, analysis.RequiredSkills)
	assert.Equal(t, "Short posting...", analysis.ProjectScope)
	assert.Equal(t, "Not specified", analysis.Budget)
	assert.Equal(t, "Not specified", analysis.Timeline)
	assert.Equal(t, []string{"Complete project requirements"}, analysis.KeyPriorities)
}

func TestAnalyzeJobPosting_ParseFailureUsesFallback(t *testing.T) {
	for _, raw := range []string{
		"not json",
		`{"required_skills": "Go"}`,
		`{"budget": "only budget"}`,
	} {
		client := &fakeClient{response: raw}
		analysis := New(client).AnalyzeJobPosting(context.Background(), "posting")
		assert.Equal(t, FallbackAnalysis("posting"), analysis, "raw=%q", raw)
	}
}

func TestFallbackAnalysis_TruncatesLongPostings(t *testing.T) {
	posting := strings.Repeat("x", 500)

	analysis := FallbackAnalysis(posting)

	require.True(t, strings.HasSuffix(analysis.ProjectScope, "..."))
	assert.Len(t, analysis.ProjectScope, 203)
}
