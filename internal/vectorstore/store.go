// Package vectorstore persists freelancer profiles as embedded text chunks
// in a Chroma collection and retrieves the most relevant chunks for a query.
package vectorstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/tmc/langchaingo/vectorstores/chroma"

	"github.com/nsavic/leadflow/internal/types"
)

// DefaultCollection is the Chroma namespace holding profile chunks.
const DefaultCollection = "freelancer_profiles"

// Chunking parameters for profile text.
const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// Store is the profile persistence and retrieval interface. Implemented by
// ChromaStore; tests use in-memory fakes.
type Store interface {
	// StoreProfile embeds and indexes a profile, returning its generated ID.
	// Re-submitting a profile is additive: a new ID is generated and prior
	// chunks stay in the index.
	StoreProfile(ctx context.Context, profile types.FreelancerProfile) (string, error)
	// SearchRelevantExperience returns up to k chunks ranked by descending
	// relevance to the query.
	SearchRelevantExperience(ctx context.Context, query string, k int) ([]types.RetrievedExperience, error)
}

// Config holds the vector-store connection settings.
type Config struct {
	ChromaURL  string
	OllamaURL  string
	EmbedModel string
	Namespace  string
}

// ChromaStore implements Store over a Chroma server with Ollama embeddings.
type ChromaStore struct {
	store *chroma.Store
}

// NewChromaStore connects to Chroma and prepares the embedder.
func NewChromaStore(cfg Config) (*ChromaStore, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultCollection
	}

	llm, err := ollama.New(
		ollama.WithModel(cfg.EmbedModel),
		ollama.WithServerURL(cfg.OllamaURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := chroma.New(
		chroma.WithChromaURL(cfg.ChromaURL),
		chroma.WithEmbedder(embedder),
		chroma.WithDistanceFunction("cosine"),
		chroma.WithNameSpace(cfg.Namespace),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chroma store: %w", err)
	}

	return &ChromaStore{store: &store}, nil
}

// StoreProfile renders the profile to text, chunks it, and upserts every
// chunk with its metadata.
func (s *ChromaStore) StoreProfile(ctx context.Context, profile types.FreelancerProfile) (string, error) {
	profileID := uuid.New().String()

	docs, err := ChunkProfile(profile, profileID)
	if err != nil {
		return "", err
	}

	if _, err := s.store.AddDocuments(ctx, docs); err != nil {
		return "", fmt.Errorf("failed to add profile chunks: %w", err)
	}

	return profileID, nil
}

// SearchRelevantExperience runs a similarity search and converts distances
// into similarity scores.
func (s *ChromaStore) SearchRelevantExperience(ctx context.Context, query string, k int) ([]types.RetrievedExperience, error) {
	docs, err := s.store.SimilaritySearch(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	results := make([]types.RetrievedExperience, 0, len(docs))
	for _, doc := range docs {
		results = append(results, types.RetrievedExperience{
			Content:        doc.PageContent,
			Metadata:       doc.Metadata,
			RelevanceScore: ToRelevance(doc.Score),
		})
	}
	return results, nil
}

// ChunkProfile renders a profile into overlapping text chunks carrying the
// metadata {profile_id, name, skills, chunk_id}.
func ChunkProfile(profile types.FreelancerProfile, profileID string) ([]schema.Document, error) {
	text := FormatProfileText(profile)

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split profile text: %w", err)
	}

	docs := make([]schema.Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, schema.Document{
			PageContent: chunk,
			Metadata: map[string]any{
				"profile_id": profileID,
				"name":       profile.Name,
				"skills":     strings.Join(profile.Skills, ", "),
				"chunk_id":   i,
			},
		})
	}
	return docs, nil
}

// FormatProfileText flattens a profile into the searchable blob that gets
// chunked and embedded. The structured form is not retained.
func FormatProfileText(profile types.FreelancerProfile) string {
	var projects strings.Builder
	for _, project := range profile.PastProjects {
		projects.WriteString(fmt.Sprintf("- %s\n", project))
	}

	rates := profile.Rates
	if rates == "" {
		rates = "Not specified"
	}

	return fmt.Sprintf(`Name: %s
Skills: %s
Experience: %s
Past Projects:
%sRates: %s
Bio: %s`,
		profile.Name,
		strings.Join(profile.Skills, ", "),
		profile.Experience,
		projects.String(),
		rates,
		profile.Bio,
	)
}

// ToRelevance converts a stored distance into a similarity in [0,1].
func ToRelevance(distance float32) float64 {
	relevance := 1 - float64(distance)
	if relevance < 0 {
		return 0
	}
	if relevance > 1 {
		return 1
	}
	return relevance
}
