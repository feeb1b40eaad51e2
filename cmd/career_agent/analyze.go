package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-harvester/internal/observability"
	"github.com/jonathan/career-harvester/internal/session"
	"github.com/jonathan/career-harvester/internal/store"
	"github.com/jonathan/career-harvester/internal/types"
	"github.com/jonathan/career-harvester/internal/upload"
)

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeEnhanced   bool
	analyzeSave       bool
	analyzeVerbose    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume and find matching jobs",
	Long: `Upload a resume, extract the candidate profile, and search for matching
job openings. Job search failure is non-fatal: the profile is still shown
with an empty results list.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume file (PDF or DOCX)")
	analyzeCmd.Flags().BoolVar(&analyzeEnhanced, "enhanced", false, "Request enhanced resume processing")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Persist found jobs to the saved-jobs database")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed output")
	_ = analyzeCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("enhanced") {
		cfg.Enhanced = analyzeEnhanced
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cfg.Verbose {
		fmt.Printf("Using API at %s (location %s)\n", cfg.APIBaseURL, cfg.Location)
	}

	fd, err := upload.ProcessFile(analyzeResume, cfg.Enhanced)
	if err != nil {
		return err
	}

	sess := session.New(buildClient(cfg))
	if err := sess.Submit(ctx, fd); err != nil {
		return err
	}

	if sess.Phase() == session.PhaseError {
		return fmt.Errorf("%s", sess.ErrorMessage())
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintProfile(sess.Profile())
	printer.PrintJobs(sess.Results())
	if len(sess.Results()) == 0 {
		printer.PrintManualSearchLinks(sess.Profile().PrimaryRole())
	}

	if analyzeSave {
		if err := saveJobs(ctx, cfg.SavedJobsDB, sess.Results()); err != nil {
			return fmt.Errorf("failed to save jobs: %w", err)
		}
		fmt.Printf("Saved %d jobs to %s\n", len(sess.Results()), cfg.SavedJobsDB)
	}
	return nil
}

// saveJobs persists the found jobs so later sessions can review them.
func saveJobs(ctx context.Context, dbPath string, jobs []types.Job) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, job := range jobs {
		sj := store.SavedJob{
			ID:       job.ID,
			Title:    job.Title,
			Company:  job.Company,
			Platform: job.Platform,
			Link:     job.Link,
			Salary:   job.Salary,
			Tags:     job.Tags,
		}
		if err := db.Save(ctx, sj); err != nil {
			return err
		}
	}
	return nil
}
