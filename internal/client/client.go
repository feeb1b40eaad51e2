// Package client is the transport layer for the career-harvester API. It
// exposes the four operations the orchestration flow needs and normalizes
// their responses and errors.
//
// The four operations deliberately differ in failure behavior: resume
// analysis and job-match analysis are load-bearing and raise a
// TransportError; job search and cover-letter generation degrade to an empty
// list and a fallback string respectively so the visible flow continues.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/career-harvester/internal/platform"
	"github.com/jonathan/career-harvester/internal/types"
)

// DefaultBaseURL is the API prefix used when no base URL is configured.
const DefaultBaseURL = "/api"

// DefaultTimeout is the default HTTP request timeout. Job search and
// cover-letter generation go through an LLM on the server side and can be
// slow.
const DefaultTimeout = 120 * time.Second

// DefaultLocation is the search location sent when none is configured.
const DefaultLocation = "Taiwan"

// FallbackCoverLetter is returned when cover-letter generation fails for any
// reason. The action flow shows it in place of generated text.
const FallbackCoverLetter = "Could not generate cover letter."

// Placeholder values for job fields missing from a search response.
const (
	placeholderLink   = "#"
	placeholderSalary = "Negotiable"
)

// TransportError is a non-success response from a load-bearing operation.
type TransportError struct {
	Op      string
	Status  int
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// InvalidInputError is a client-side precondition failure; no request is
// attempted.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Location   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues requests against the career-harvester API.
type Client struct {
	baseURL  string
	location string
	http     *http.Client
}

// New creates a Client, applying defaults for unset options.
func New(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	location := opts.Location
	if location == "" {
		location = DefaultLocation
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		location: location,
		http:     httpClient,
	}
}

// AnalyzeResume uploads the resume and returns the extracted candidate
// profile. The raw file bytes must be present; a base64-only FileData fails
// fast rather than silently degrading.
func (c *Client) AnalyzeResume(ctx context.Context, fd *types.FileData) (*types.CandidateProfile, error) {
	if !fd.HasRaw() {
		return nil, &InvalidInputError{Message: "no resume file available to upload"}
	}

	body, contentType, err := buildMultipart(fd, nil)
	if err != nil {
		return nil, &TransportError{Op: "analyze resume", Message: "failed to build upload", Cause: err}
	}

	resp, err := c.post(ctx, "/analyze-resume", contentType, body)
	if err != nil {
		return nil, &TransportError{Op: "analyze resume", Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("analyze resume", resp)
	}

	var profile types.CandidateProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, &TransportError{Op: "analyze resume", Message: "invalid response body", Cause: err}
	}
	return &profile, nil
}

// SearchMatchingJobs searches for jobs matching the profile. Search failure
// is non-fatal to the overall flow: any transport or decode error resolves
// to an empty list, never an error.
func (c *Client) SearchMatchingJobs(ctx context.Context, profile *types.CandidateProfile) []types.Job {
	req := types.SearchJobsRequest{
		Roles:    profile.SuggestedRoles,
		Skills:   profile.Skills,
		Location: c.location,
	}

	payload, err := json.Marshal(req)
	if err != nil {
		log.Printf("job search: failed to encode request: %v", err)
		return []types.Job{}
	}

	resp, err := c.post(ctx, "/search-jobs", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("job search: request failed: %v", err)
		return []types.Job{}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Printf("job search: server returned status %d", resp.StatusCode)
		return []types.Job{}
	}

	var raw []types.RawJob
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		log.Printf("job search: invalid response body: %v", err)
		return []types.Job{}
	}

	return NormalizeJobs(raw, time.Now())
}

// AnalyzeJobCompatibility runs a keyword-gap check of the resume against a
// job description.
func (c *Client) AnalyzeJobCompatibility(ctx context.Context, fd *types.FileData, jobDescription string) (*types.KeywordAnalysis, error) {
	if !fd.HasRaw() {
		return nil, &InvalidInputError{Message: "no resume file available to upload"}
	}

	body, contentType, err := buildMultipart(fd, map[string]string{"jobDescription": jobDescription})
	if err != nil {
		return nil, &TransportError{Op: "analyze job match", Message: "failed to build upload", Cause: err}
	}

	resp, err := c.post(ctx, "/analyze-job-match", contentType, body)
	if err != nil {
		return nil, &TransportError{Op: "analyze job match", Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("analyze job match", resp)
	}

	var analysis types.KeywordAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, &TransportError{Op: "analyze job match", Message: "invalid response body", Cause: err}
	}
	return &analysis, nil
}

// GenerateCoverLetter generates a cover letter for the job description.
// It never returns an error: any failure, including a missing file, resolves
// to FallbackCoverLetter.
func (c *Client) GenerateCoverLetter(ctx context.Context, fd *types.FileData, jobDescription string) string {
	if !fd.HasRaw() {
		log.Printf("cover letter: no resume file available")
		return FallbackCoverLetter
	}

	body, contentType, err := buildMultipart(fd, map[string]string{"jobDescription": jobDescription})
	if err != nil {
		log.Printf("cover letter: failed to build upload: %v", err)
		return FallbackCoverLetter
	}

	resp, err := c.post(ctx, "/generate-cover-letter", contentType, body)
	if err != nil {
		log.Printf("cover letter: request failed: %v", err)
		return FallbackCoverLetter
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Printf("cover letter: server returned status %d", resp.StatusCode)
		return FallbackCoverLetter
	}

	var result types.CoverLetterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.CoverLetter == "" {
		log.Printf("cover letter: invalid response body: %v", err)
		return FallbackCoverLetter
	}
	return result.CoverLetter
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.http.Do(req)
}

// responseError turns a non-success response into a TransportError, using
// the server-provided error field when the body carries one.
func responseError(op string, resp *http.Response) *TransportError {
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(body) > 0 {
		var errResp types.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			message = errResp.Error
		}
	}

	return &TransportError{Op: op, Status: resp.StatusCode, Message: message}
}

// buildMultipart assembles the multipart body for a resume upload with
// optional extra form fields. The enhanced-processing flag is forwarded as a
// form field when set.
func buildMultipart(fd *types.FileData, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", fd.Filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(fd.Raw); err != nil {
		return nil, "", err
	}

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	if fd.Enhanced {
		if err := w.WriteField("enhanced", "true"); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// NormalizeJobs converts raw search records into well-formed Jobs, filling
// every missing field with its documented default.
func NormalizeJobs(raw []types.RawJob, now time.Time) []types.Job {
	jobs := make([]types.Job, 0, len(raw))
	for i, r := range raw {
		jobs = append(jobs, NormalizeJob(r, i, now))
	}
	return jobs
}

// NormalizeJob normalizes a single raw record. When the source id is absent
// the id is synthesized from the record's ordinal position and the current
// time so it stays unique within the result set.
func NormalizeJob(r types.RawJob, ordinal int, now time.Time) types.Job {
	job := types.Job{
		ID:          r.ID,
		Title:       r.Title,
		Company:     r.Company,
		Platform:    string(platform.Normalize(r.Platform)),
		Link:        r.Link,
		Salary:      r.Salary,
		Tags:        r.Tags,
		Location:    r.Location,
		Description: r.Description,
	}
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d-%d", ordinal, now.UnixMilli())
	}
	if job.Title == "" {
		job.Title = "Untitled position"
	}
	if job.Company == "" {
		job.Company = "Unknown company"
	}
	if job.Link == "" {
		job.Link = placeholderLink
	}
	if job.Salary == "" {
		job.Salary = placeholderSalary
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}
	return job
}
