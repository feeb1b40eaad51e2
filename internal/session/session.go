// Package session holds the orchestration state for a resume analysis: the
// upload → profile → job search sequence, the current and saved job
// collections, and the per-job action flow. All state lives in a single
// mutable session object driven by explicit transition functions, callable
// from any UI layer.
package session

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/career-harvester/internal/types"
)

// Phase is the orchestration state machine's current state.
type Phase string

const (
	// PhaseIdle is the initial state, awaiting an upload.
	PhaseIdle Phase = "idle"
	// PhaseAnalyzing means resume analysis is in flight.
	PhaseAnalyzing Phase = "analyzing_resume"
	// PhaseSearching means the job search is in flight.
	PhaseSearching Phase = "searching_jobs"
	// PhaseComplete means the profile and job list are ready.
	PhaseComplete Phase = "complete"
	// PhaseError means resume analysis failed; only reset leaves this state.
	PhaseError Phase = "error"
)

// View selects which job collection the host renders.
type View string

const (
	// ViewResults shows the current search results.
	ViewResults View = "results"
	// ViewSaved shows the saved-jobs collection.
	ViewSaved View = "saved"
)

// GenericErrorMessage is the retry-prompting message stored when resume
// analysis fails. The underlying error is logged, never shown verbatim.
const GenericErrorMessage = "Something went wrong while analyzing your resume. Please try again."

// Transport is the subset of the API client the session drives.
type Transport interface {
	AnalyzeResume(ctx context.Context, fd *types.FileData) (*types.CandidateProfile, error)
	SearchMatchingJobs(ctx context.Context, profile *types.CandidateProfile) []types.Job
	AnalyzeJobCompatibility(ctx context.Context, fd *types.FileData, jobDescription string) (*types.KeywordAnalysis, error)
	GenerateCoverLetter(ctx context.Context, fd *types.FileData, jobDescription string) string
}

// Session is the orchestration state machine. It is not safe for concurrent
// use; the flow is single-threaded and each transport call is awaited to
// completion before the machine advances.
type Session struct {
	transport Transport

	phase   Phase
	view    View
	errMsg  string
	file    *types.FileData
	profile *types.CandidateProfile

	results    []types.Job
	saved      []types.Job
	savedIndex map[string]int
}

// New creates an idle session over the given transport.
func New(transport Transport) *Session {
	return &Session{
		transport:  transport,
		phase:      PhaseIdle,
		view:       ViewResults,
		savedIndex: map[string]int{},
	}
}

// Phase returns the current orchestration phase.
func (s *Session) Phase() Phase { return s.phase }

// View returns the active collection view.
func (s *Session) View() View { return s.view }

// ErrorMessage returns the user-facing error message, empty outside
// PhaseError.
func (s *Session) ErrorMessage() string { return s.errMsg }

// Profile returns the extracted candidate profile, nil before completion.
func (s *Session) Profile() *types.CandidateProfile { return s.profile }

// File returns the stored resume, shared read-only with the action flow.
func (s *Session) File() *types.FileData { return s.file }

// Results returns the current job results.
func (s *Session) Results() []types.Job { return s.results }

// SavedJobs returns the saved collection in save order.
func (s *Session) SavedJobs() []types.Job { return s.saved }

// InFlight reports whether an analysis/search sequence is running; the
// upload surface is disabled while it is.
func (s *Session) InFlight() bool {
	return s.phase == PhaseAnalyzing || s.phase == PhaseSearching
}

// Submit starts a new analysis with the uploaded file. Any prior profile,
// job list, and error are cleared first. Resume analysis failure moves the
// session to PhaseError with a generic message; job search failure is
// absorbed by the transport layer, so once analysis succeeds the session
// always reaches PhaseComplete.
func (s *Session) Submit(ctx context.Context, fd *types.FileData) error {
	if s.InFlight() {
		return fmt.Errorf("an analysis is already in progress")
	}

	s.clearAnalysis()
	s.file = fd
	s.phase = PhaseAnalyzing

	profile, err := s.transport.AnalyzeResume(ctx, fd)
	if err != nil {
		log.Printf("resume analysis failed: %v", err)
		s.phase = PhaseError
		s.errMsg = GenericErrorMessage
		return err
	}

	s.profile = profile
	s.phase = PhaseSearching

	// Search failure already resolves to an empty list; an empty list is a
	// valid completion, not an error.
	s.results = s.transport.SearchMatchingJobs(ctx, profile)
	s.phase = PhaseComplete
	return nil
}

// Reset returns the session to idle. It is only permitted from
// PhaseComplete or PhaseError; the in-flight phases have no user-facing
// cancel. Everything is cleared, including the saved collection and the
// stored file, and the view returns to its default.
func (s *Session) Reset() error {
	if s.phase != PhaseComplete && s.phase != PhaseError {
		return fmt.Errorf("cannot reset from phase %s", s.phase)
	}
	s.clearAnalysis()
	s.file = nil
	s.saved = nil
	s.savedIndex = map[string]int{}
	s.view = ViewResults
	s.phase = PhaseIdle
	return nil
}

// SetView switches between the results and saved collections.
func (s *Session) SetView(v View) {
	s.view = v
}

// ToggleSave flips the saved flag for a job id. The results entry and the
// saved collection are independent copies; both are updated so that for any
// id present in results, the flag matches membership in the saved
// collection. Unsaving an id that only exists in the saved collection
// removes it there. Valid only in PhaseComplete.
func (s *Session) ToggleSave(id string) error {
	if s.phase != PhaseComplete {
		return fmt.Errorf("cannot toggle save in phase %s", s.phase)
	}

	if _, ok := s.savedIndex[id]; ok {
		s.removeSaved(id)
		s.setResultSaved(id, false)
		return nil
	}

	for i := range s.results {
		if s.results[i].ID == id {
			s.results[i].Saved = true
			saved := s.results[i] // independent copy
			s.savedIndex[id] = len(s.saved)
			s.saved = append(s.saved, saved)
			return nil
		}
	}
	return fmt.Errorf("job %s not found", id)
}

func (s *Session) setResultSaved(id string, saved bool) {
	for i := range s.results {
		if s.results[i].ID == id {
			s.results[i].Saved = saved
			return
		}
	}
}

func (s *Session) removeSaved(id string) {
	idx, ok := s.savedIndex[id]
	if !ok {
		return
	}
	s.saved = append(s.saved[:idx], s.saved[idx+1:]...)
	delete(s.savedIndex, id)
	for i := idx; i < len(s.saved); i++ {
		s.savedIndex[s.saved[i].ID] = i
	}
}

func (s *Session) clearAnalysis() {
	s.profile = nil
	s.results = nil
	s.errMsg = ""
}

// OpenActionFlow creates the per-job action flow for a job, sharing the
// session's stored resume.
func (s *Session) OpenActionFlow(job types.Job) *ActionFlow {
	flow := NewActionFlow(s.transport, s.file)
	flow.Open(job)
	return flow
}
