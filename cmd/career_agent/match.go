package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-harvester/internal/fetch"
	"github.com/jonathan/career-harvester/internal/observability"
	"github.com/jonathan/career-harvester/internal/upload"
)

var (
	matchConfigPath string
	matchResume     string
	matchJob        string
	matchJobURL     string
	matchEnhanced   bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Check how well a resume matches a job description",
	Long: `Compare a resume against a job description and report the match score,
missing keywords, and improvement advice. The description can come from a
local text file or be fetched from a job posting URL.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to resume file (PDF or DOCX)")
	matchCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	matchCmd.Flags().StringVar(&matchJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	matchCmd.Flags().BoolVar(&matchEnhanced, "enhanced", false, "Request enhanced resume processing")
	_ = matchCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(matchConfigPath)
	if err != nil {
		return err
	}

	description, err := resolveJobDescription(ctx, matchJob, matchJobURL)
	if err != nil {
		return err
	}

	fd, err := upload.ProcessFile(matchResume, matchEnhanced)
	if err != nil {
		return err
	}

	analysis, err := buildClient(cfg).AnalyzeJobCompatibility(ctx, fd, description)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintKeywordAnalysis(analysis)
	return nil
}

// resolveJobDescription loads the description from a file or fetches it from
// a posting URL. Exactly one source must be provided.
func resolveJobDescription(ctx context.Context, jobPath, jobURL string) (string, error) {
	if jobPath == "" && jobURL == "" {
		return "", fmt.Errorf("either --job or --job-url must be provided")
	}
	if jobPath != "" && jobURL != "" {
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	if jobPath != "" {
		content, err := os.ReadFile(jobPath)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		description := strings.TrimSpace(string(content))
		if description == "" {
			return "", fmt.Errorf("job description file is empty: %s", jobPath)
		}
		return description, nil
	}

	description, err := fetch.Description(ctx, jobURL, fetch.DefaultOptions())
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	return description, nil
}
