// Package main provides the entry point for the LeadFlow campaign and
// proposal services.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "leadflow",
	Short: "AI Sales CRM and proposal generation services",
	Long:  "LeadFlow enriches sales leads with LLM-drafted outreach emails and generates freelance proposals grounded in a vector-indexed freelancer profile.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
