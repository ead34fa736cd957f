package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsavic/leadflow/internal/config"
)

var runCampaignCmd = &cobra.Command{
	Use:   "run-campaign",
	Short: "Process the lead table once and exit",
	Long:  `Run the campaign pipeline synchronously: enrich every lead, send outreach emails, write the enriched table, and generate a report.`,
	RunE:  runCampaign,
}

func init() {
	rootCmd.AddCommand(runCampaignCmd)
}

func runCampaign(cmd *cobra.Command, _ []string) error {
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

	status, err := pipeline.Execute(cmd.Context())
	if err != nil {
		return fmt.Errorf("campaign run failed: %w", err)
	}

	fmt.Printf("Campaign complete: %d/%d leads processed, %d emails sent\n",
		status.Processed, status.TotalLeads, status.EmailsSent)
	return nil
}
