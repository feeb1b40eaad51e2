package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/career-harvester/internal/extract"
	"github.com/jonathan/career-harvester/internal/types"
	"github.com/jonathan/career-harvester/internal/upload"
)

// minResumeTextChars is the smallest extracted-text length considered a
// readable resume. Anything shorter is treated as a scanned or empty file.
const minResumeTextChars = 50

// resumeUpload is the parsed multipart payload shared by the resume endpoints.
type resumeUpload struct {
	Text           string
	Filename       string
	JobDescription string
}

// parseResumeUpload reads the multipart form, validates the resume file and
// extracts its plain text.
func (s *Server) parseResumeUpload(r *http.Request) (*resumeUpload, error) {
	if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
		return nil, &ErrMissingFile{}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &ErrMissingFile{}
	}
	defer file.Close()

	// Format support is decided by extraction, not a MIME whitelist: the
	// client rejects exotic types up front, but text and markdown resumes
	// are parsed fine here. Only the size cap is enforced.
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = upload.MIMETypeForFilename(header.Filename)
	}
	if header.Size > upload.MaxFileSize {
		return nil, &ErrValidation{Field: "file", Message: "file is too large; the maximum size is 20 MB"}
	}

	content, err := io.ReadAll(io.LimitReader(file, upload.MaxFileSize+1))
	if err != nil {
		return nil, &ErrValidation{Field: "file", Message: "failed to read file"}
	}

	text, err := extract.ResumeText(content, header.Filename, mimeType)
	if err != nil {
		var unsupported *extract.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return nil, &ErrValidation{Field: "file", Message: err.Error()}
		}
		return nil, &ErrExtractionFailed{Filename: header.Filename, Cause: err}
	}
	if len(strings.TrimSpace(text)) < minResumeTextChars {
		return nil, &ErrUnreadableResume{Filename: header.Filename}
	}

	return &resumeUpload{
		Text:           text,
		Filename:       header.Filename,
		JobDescription: strings.TrimSpace(r.FormValue("jobDescription")),
	}, nil
}

// decodeJSON decodes a JSON request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// handleAnalyzeResume extracts a candidate profile from an uploaded resume.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()[:8]

	up, err := s.parseResumeUpload(r)
	if err != nil {
		log.Printf("[%s] analyze-resume: %v", requestID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	profile, err := s.resumeAnalyzer.Analyze(r.Context(), up.Text)
	if err != nil {
		wrapped := &ErrDelegateFailure{Delegate: "resume analyzer", Cause: err}
		log.Printf("[%s] analyze-resume: %v", requestID, wrapped)
		s.errorResponse(w, HTTPStatus(wrapped), "failed to analyze resume")
		return
	}

	log.Printf("[%s] analyze-resume: extracted profile for %q from %s", requestID, profile.Name, up.Filename)
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleSearchJobs runs the job search delegate for the requested roles and
// skills. Search failure degrades to an empty list rather than an error so
// callers always get a well-formed response.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()[:8]

	var req types.SearchJobsRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Printf("[%s] search-jobs: %v", requestID, err)
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		log.Printf("[%s] search-jobs: %v", requestID, err)
		s.errorResponse(w, http.StatusBadRequest, "roles or skills are required")
		return
	}

	location := req.Location
	if location == "" {
		location = s.location
	}

	jobs, err := s.jobSearch.Search(r.Context(), req.Roles, req.Skills, location)
	if err != nil {
		log.Printf("[%s] search-jobs: delegate failed, returning empty list: %v", requestID, err)
		s.jsonResponse(w, http.StatusOK, []types.RawJob{})
		return
	}

	log.Printf("[%s] search-jobs: found %d jobs", requestID, len(jobs))
	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleAnalyzeJobMatch compares an uploaded resume against a job description.
func (s *Server) handleAnalyzeJobMatch(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()[:8]

	up, err := s.parseResumeUpload(r)
	if err != nil {
		log.Printf("[%s] analyze-job-match: %v", requestID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if up.JobDescription == "" {
		err := &ErrEmptyDescription{}
		log.Printf("[%s] analyze-job-match: %v", requestID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	analysis, err := s.jobMatch.Analyze(r.Context(), up.Text, up.JobDescription)
	if err != nil {
		wrapped := &ErrDelegateFailure{Delegate: "job match analyzer", Cause: err}
		log.Printf("[%s] analyze-job-match: %v", requestID, wrapped)
		s.errorResponse(w, HTTPStatus(wrapped), "failed to analyze job match")
		return
	}

	log.Printf("[%s] analyze-job-match: score %d", requestID, analysis.MatchScore)
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleGenerateCoverLetter writes a cover letter for an uploaded resume and
// job description.
func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()[:8]

	up, err := s.parseResumeUpload(r)
	if err != nil {
		log.Printf("[%s] generate-cover-letter: %v", requestID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if up.JobDescription == "" {
		err := &ErrEmptyDescription{}
		log.Printf("[%s] generate-cover-letter: %v", requestID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	letter, err := s.coverLetter.Generate(r.Context(), up.Text, up.JobDescription)
	if err != nil {
		wrapped := &ErrDelegateFailure{Delegate: "cover letter generator", Cause: err}
		log.Printf("[%s] generate-cover-letter: %v", requestID, wrapped)
		s.errorResponse(w, HTTPStatus(wrapped), "failed to generate cover letter")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.CoverLetterResponse{CoverLetter: letter})
}
