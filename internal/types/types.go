// Package types provides type definitions for structured data used throughout the career-harvester system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// UnknownCandidateName is the sentinel used when a resume does not clearly
// state the candidate's name.
const UnknownCandidateName = "Candidate"

// CandidateProfile is the profile extracted from an uploaded resume.
// It is produced once per analysis and never mutated afterwards.
type CandidateProfile struct {
	Name           string   `json:"name"`
	Summary        string   `json:"summary"`
	Skills         []string `json:"skills"`
	SuggestedRoles []string `json:"suggestedRoles"`
}

// PrimaryRole returns the default search term for the profile: the first
// suggested role, falling back to the first skill.
func (p *CandidateProfile) PrimaryRole() string {
	if len(p.SuggestedRoles) > 0 {
		return p.SuggestedRoles[0]
	}
	if len(p.Skills) > 0 {
		return p.Skills[0]
	}
	return ""
}

// Job is a single job posting normalized from a search response.
// Saved is the only mutable field.
type Job struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Platform    string   `json:"platform"`
	Link        string   `json:"link"`
	Salary      string   `json:"salary"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Saved       bool     `json:"saved"`
}

// RawJob is a job record as returned by the search endpoint, before
// normalization. Every field may be absent.
type RawJob struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Company     string   `json:"company,omitempty"`
	Platform    string   `json:"platform,omitempty"`
	Link        string   `json:"link,omitempty"`
	Salary      string   `json:"salary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
}

// KeywordAnalysis is the result of a resume vs job-description compatibility
// check. It is ephemeral: discarded when the action panel closes or another
// job is opened.
type KeywordAnalysis struct {
	MissingKeywords []string `json:"missingKeywords"`
	MatchScore      int      `json:"matchScore"`
	Advice          string   `json:"advice"`
}

// FileData is the transportable representation of an uploaded resume.
// It is retained for the lifetime of a session so per-job actions can resend
// the same file without re-upload.
type FileData struct {
	Raw      []byte
	Base64   string
	MIMEType string
	Filename string
	Enhanced bool
}

// HasRaw reports whether the raw file bytes are available for upload.
// A base64-only FileData is not uploadable; the transport layer rejects it.
func (f *FileData) HasRaw() bool {
	return f != nil && len(f.Raw) > 0
}

// SearchJobsRequest is the body of the search-jobs operation.
type SearchJobsRequest struct {
	Roles    []string `json:"roles" validate:"required_without=Skills"`
	Skills   []string `json:"skills" validate:"required_without=Roles"`
	Location string   `json:"location,omitempty"`
}

// Validate validates the SearchJobsRequest using the validator.
func (r *SearchJobsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CoverLetterResponse is the body of a successful generate-cover-letter call.
type CoverLetterResponse struct {
	CoverLetter string `json:"coverLetter"`
}

// ErrorResponse is the optional error body returned by the API on failure.
type ErrorResponse struct {
	Error string `json:"error,omitempty"`
}
