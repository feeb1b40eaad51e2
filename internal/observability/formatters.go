// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-harvester/internal/platform"
	"github.com/jonathan/career-harvester/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the extracted candidate profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	if profile.Summary != "" {
		summary := profile.Summary
		if len(summary) > 50 {
			summary = summary[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", summary))
	}
	sb.WriteString("\n")

	if len(profile.SuggestedRoles) > 0 {
		sb.WriteString("Suggested Roles:\n")
		count := min(len(profile.SuggestedRoles), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.SuggestedRoles[i]))
		}
		if len(profile.SuggestedRoles) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.SuggestedRoles)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Skills) > 0 {
		sb.WriteString("Key Skills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs the matched job listings with platform and salary details.
func (p *Printer) PrintJobs(jobs []types.Job) {
	if len(jobs) == 0 {
		p.printBox("MATCHING JOBS", "No matching jobs found.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d matching jobs:\n\n", len(jobs)))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, job.Title))
		sb.WriteString(fmt.Sprintf("    %s (%s)\n", job.Company, job.Platform))
		if job.Salary != "" {
			sb.WriteString(fmt.Sprintf("    Salary: %s\n", job.Salary))
		}
		if len(job.Tags) > 0 {
			tags := strings.Join(job.Tags, ", ")
			if len(tags) > 40 {
				tags = tags[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Tags: %s\n", tags))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(jobs)-maxItemsToShow))
	}

	p.printBox("MATCHING JOBS", sb.String())
}

// PrintKeywordAnalysis outputs the keyword match breakdown for a job.
func (p *Printer) PrintKeywordAnalysis(analysis *types.KeywordAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match Score: %d/100\n\n", analysis.MatchScore))

	if len(analysis.MissingKeywords) > 0 {
		sb.WriteString("Missing Keywords:\n")
		count := min(len(analysis.MissingKeywords), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", analysis.MissingKeywords[i]))
		}
		if len(analysis.MissingKeywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.MissingKeywords)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if analysis.Advice != "" {
		sb.WriteString("Advice:\n")
		for _, line := range wrapText(analysis.Advice, boxWidth-8) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
	}

	p.printBox("KEYWORD ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintManualSearchLinks outputs per-board search URLs for the given query,
// shown when the automated search comes back empty.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintManualSearchLinks(query string) {
	if query == "" {
		return
	}

	fmt.Fprintf(p.out, "Search manually for %q:\n", query)
	for _, board := range platform.All() {
		fmt.Fprintf(p.out, "  %-10s %s\n", board, platform.SearchURL(board, query))
	}
}

// wrapText splits text into lines no wider than limit, breaking on spaces.
func wrapText(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > limit {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return lines
}

// PrintCoverLetter outputs the generated cover letter without truncating its body.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCoverLetter(letter string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "COVER LETTER")
	fmt.Fprintf(p.out, "└%s┘\n", border)
	fmt.Fprintln(p.out, letter)
}
