package session

import (
	"context"
	"fmt"

	"github.com/jonathan/career-harvester/internal/types"
)

// ActionState is the per-job action flow's current state.
type ActionState string

const (
	// ActionSetup is the editable job-description stage.
	ActionSetup ActionState = "setup"
	// ActionKeywordResult shows a completed keyword-gap analysis.
	ActionKeywordResult ActionState = "keyword_result"
	// ActionCoverLetterResult shows a generated cover letter.
	ActionCoverLetterResult ActionState = "cover_letter_result"
)

// DescriptionTemplate builds the pre-populated job-description text for a
// job. The user is expected to replace the placeholder with the full posting
// before running an action.
func DescriptionTemplate(job types.Job) string {
	return fmt.Sprintf("Position: %s\nCompany: %s\n\n[Paste the full job description here]", job.Title, job.Company)
}

// ActionFlow is the job-scoped sub-machine offering keyword-gap analysis and
// cover-letter generation. Opening a different job resets it; closing the
// panel discards all state. The resume FileData is shared read-only with the
// owning session and never re-validated here.
type ActionFlow struct {
	transport Transport
	file      *types.FileData

	jobID       string
	job         types.Job
	state       ActionState
	description string
	processing  bool

	analysis    *types.KeywordAnalysis
	coverLetter string
}

// NewActionFlow creates a closed action flow over the transport and the
// session's resume.
func NewActionFlow(transport Transport, file *types.FileData) *ActionFlow {
	return &ActionFlow{
		transport: transport,
		file:      file,
		state:     ActionSetup,
	}
}

// State returns the current action state.
func (f *ActionFlow) State() ActionState { return f.state }

// Job returns the currently open job.
func (f *ActionFlow) Job() types.Job { return f.job }

// Description returns the editable job-description text.
func (f *ActionFlow) Description() string { return f.description }

// Analysis returns the keyword analysis, nil outside ActionKeywordResult.
func (f *ActionFlow) Analysis() *types.KeywordAnalysis { return f.analysis }

// CoverLetter returns the generated letter, empty outside
// ActionCoverLetterResult. It may be the documented fallback string.
func (f *ActionFlow) CoverLetter() string { return f.coverLetter }

// Processing reports whether an action is in flight; both action buttons are
// disabled while it is.
func (f *ActionFlow) Processing() bool { return f.processing }

// Open starts the flow for a job. Opening the same or a different job always
// discards prior results and rebuilds the description template.
func (f *ActionFlow) Open(job types.Job) {
	f.jobID = job.ID
	f.job = job
	f.state = ActionSetup
	f.description = DescriptionTemplate(job)
	f.analysis = nil
	f.coverLetter = ""
	f.processing = false
}

// SetDescription replaces the editable job-description text.
func (f *ActionFlow) SetDescription(text string) {
	f.description = text
}

// RunKeywordCheck runs the keyword-compatibility analysis for the open job.
// Without a resume file it is a no-op. On failure the flow stays in Setup
// with no stored error; the returned error is for the caller's log only.
// The transport call is awaited to completion before the flow advances, and
// at most one action runs at a time (the processing gate), so a completed
// response always belongs to the currently open job.
func (f *ActionFlow) RunKeywordCheck(ctx context.Context) error {
	if !f.file.HasRaw() || f.jobID == "" || f.processing {
		return nil
	}

	f.processing = true
	analysis, err := f.transport.AnalyzeJobCompatibility(ctx, f.file, f.description)
	f.processing = false

	if err != nil {
		return err
	}
	f.analysis = analysis
	f.state = ActionKeywordResult
	return nil
}

// GenerateCoverLetter generates a cover letter for the open job. The
// transport never fails this call (a failure resolves to the fallback
// string), so the flow always transitions to ActionCoverLetterResult.
// Without a resume file it is a no-op.
func (f *ActionFlow) GenerateCoverLetter(ctx context.Context) {
	if !f.file.HasRaw() || f.jobID == "" || f.processing {
		return
	}

	f.processing = true
	letter := f.transport.GenerateCoverLetter(ctx, f.file, f.description)
	f.processing = false

	f.coverLetter = letter
	f.state = ActionCoverLetterResult
}

// Back returns from a result state to Setup, keeping the edited description
// but discarding the result.
func (f *ActionFlow) Back() {
	f.state = ActionSetup
	f.analysis = nil
	f.coverLetter = ""
}

// Close discards all per-job action state. The next Open starts fresh at
// Setup with a newly built template.
func (f *ActionFlow) Close() {
	f.jobID = ""
	f.job = types.Job{}
	f.state = ActionSetup
	f.description = ""
	f.analysis = nil
	f.coverLetter = ""
	f.processing = false
}
