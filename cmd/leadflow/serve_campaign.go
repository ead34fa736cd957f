package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsavic/leadflow/internal/campaign"
	"github.com/nsavic/leadflow/internal/config"
	"github.com/nsavic/leadflow/internal/enrich"
	"github.com/nsavic/leadflow/internal/llm"
	"github.com/nsavic/leadflow/internal/mailer"
	"github.com/nsavic/leadflow/internal/server"
)

var campaignPort int

var serveCampaignCmd = &cobra.Command{
	Use:   "serve-campaign",
	Short: "Start the sales campaign API server",
	Long:  `Start an HTTP server that processes a lead table: enrichment, personalized outreach email drafting, delivery, and campaign reporting.`,
	RunE:  runServeCampaign,
}

func init() {
	serveCampaignCmd.Flags().IntVar(&campaignPort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCampaignCmd)
}

func runServeCampaign(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pipeline, client, err := buildCampaignPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	return server.NewCampaignServer(campaignPort, pipeline).Start()
}

// buildCampaignPipeline wires the LLM client, drafter, and mailer into a
// campaign pipeline. The caller owns closing the returned client.
func buildCampaignPipeline(ctx context.Context, cfg *config.Config) (*campaign.Pipeline, llm.Client, error) {
	opts := llm.DefaultOptions()
	if cfg.Model != "" {
		opts.Model = cfg.Model
	}

	client, err := llm.NewGeminiClient(ctx, cfg.APIKey, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	drafter := enrich.NewDrafter(client)
	sender := mailer.New(mailer.Config{
		Addr:      cfg.SMTPAddr(),
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
	})

	pipeline := campaign.New(drafter, sender, campaign.Options{
		InputPath:  cfg.LeadsCSV,
		OutputPath: cfg.EnrichedCSV,
		ReportsDir: cfg.ReportsDir,
	})
	return pipeline, client, nil
}
