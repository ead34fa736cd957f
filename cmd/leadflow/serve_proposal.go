package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsavic/leadflow/internal/config"
	"github.com/nsavic/leadflow/internal/jobanalysis"
	"github.com/nsavic/leadflow/internal/llm"
	"github.com/nsavic/leadflow/internal/proposal"
	"github.com/nsavic/leadflow/internal/server"
	"github.com/nsavic/leadflow/internal/vectorstore"
)

var proposalPort int

var serveProposalCmd = &cobra.Command{
	Use:   "serve-proposal",
	Short: "Start the job proposal API server",
	Long:  `Start an HTTP server that stores a freelancer profile in the vector index and generates tailored proposals for job postings.`,
	RunE:  runServeProposal,
}

func init() {
	serveProposalCmd.Flags().IntVar(&proposalPort, "port", 8081, "Port to listen on")
	rootCmd.AddCommand(serveProposalCmd)
}

func runServeProposal(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := llm.DefaultOptions()
	if cfg.Model != "" {
		opts.Model = cfg.Model
	}

	client, err := llm.NewGeminiClient(cmd.Context(), cfg.APIKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	store, err := vectorstore.NewChromaStore(vectorstore.Config{
		ChromaURL:  cfg.ChromaURL,
		OllamaURL:  cfg.OllamaURL,
		EmbedModel: cfg.EmbedModel,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to vector store: %w", err)
	}

	service := proposal.NewService(
		jobanalysis.New(client),
		store,
		proposal.NewComposer(client),
	)

	return server.NewProposalServer(proposalPort, service, store).Start()
}
