package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-harvester/internal/store"
)

var savedConfigPath string

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage the saved-jobs database",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved jobs",
	RunE:  runSavedList,
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job from the saved-jobs database",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedRemove,
}

func init() {
	savedCmd.PersistentFlags().StringVar(&savedConfigPath, "config", "", "Path to config.json file")
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedRemoveCmd)
	rootCmd.AddCommand(savedCmd)
}

func openStore() (*store.Store, error) {
	cfg, err := loadConfig(savedConfigPath)
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.SavedJobsDB)
}

func runSavedList(cmd *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	jobs, err := db.List(context.Background())
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		cmd.Println("No saved jobs.")
		return nil
	}

	for _, job := range jobs {
		cmd.Printf("%s  %s at %s (%s)\n", job.ID, job.Title, job.Company, job.Platform)
		if job.Salary != "" {
			cmd.Printf("    Salary: %s\n", job.Salary)
		}
		if len(job.Tags) > 0 {
			cmd.Printf("    Tags: %s\n", strings.Join(job.Tags, ", "))
		}
		if job.Link != "" {
			cmd.Printf("    %s\n", job.Link)
		}
	}
	return nil
}

func runSavedRemove(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}
