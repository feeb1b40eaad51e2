package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-harvester/internal/client"
	"github.com/jonathan/career-harvester/internal/llm"
	"github.com/jonathan/career-harvester/internal/server"
)

var (
	servePort     int
	serveAPIKey   string
	serveModel    string
	serveLocation string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume analysis, job search, job match, and cover letter endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveModel, "model", llm.DefaultModel, "Gemini model name")
	serveCmd.Flags().StringVar(&serveLocation, "location", client.DefaultLocation, "Default job search location")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	apiKey := serveAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	cfg := server.Config{
		Port:     servePort,
		APIKey:   apiKey,
		Model:    serveModel,
		Location: serveLocation,
	}

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
