package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-harvester/internal/observability"
	"github.com/jonathan/career-harvester/internal/upload"
)

var (
	coverConfigPath string
	coverResume     string
	coverJob        string
	coverJobURL     string
	coverEnhanced   bool
)

var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "Generate a cover letter for a job description",
	Long: `Generate a tailored cover letter from a resume and a job description.
Generation failure is non-fatal: a fallback message is printed instead of
an error.`,
	RunE: runCover,
}

func init() {
	coverCmd.Flags().StringVar(&coverConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	coverCmd.Flags().StringVarP(&coverResume, "resume", "r", "", "Path to resume file (PDF or DOCX)")
	coverCmd.Flags().StringVarP(&coverJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	coverCmd.Flags().StringVar(&coverJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	coverCmd.Flags().BoolVar(&coverEnhanced, "enhanced", false, "Request enhanced resume processing")
	_ = coverCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(coverCmd)
}

func runCover(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(coverConfigPath)
	if err != nil {
		return err
	}

	description, err := resolveJobDescription(ctx, coverJob, coverJobURL)
	if err != nil {
		return err
	}

	fd, err := upload.ProcessFile(coverResume, coverEnhanced)
	if err != nil {
		return err
	}

	letter := buildClient(cfg).GenerateCoverLetter(ctx, fd, description)
	observability.NewPrinter(os.Stdout).PrintCoverLetter(letter)
	return nil
}
