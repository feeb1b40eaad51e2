// Package main provides the entry point for the CareerHarvester CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "CareerHarvester job matching assistant",
	Long:  "CareerHarvester analyzes a resume, finds matching job openings, and prepares per-job keyword analyses and cover letters via an AI-backed REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
