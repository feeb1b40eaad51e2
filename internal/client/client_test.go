package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-harvester/internal/types"
)

func testFileData() *types.FileData {
	return &types.FileData{
		Raw:      []byte("%PDF-1.4 resume bytes"),
		Base64:   "JVBERi0xLjQgcmVzdW1lIGJ5dGVz",
		MIMEType: "application/pdf",
		Filename: "resume.pdf",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL + "/api"})
}

func TestAnalyzeResume_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analyze-resume", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "resume.pdf", header.Filename)

		json.NewEncoder(w).Encode(types.CandidateProfile{
			Name:           "Ada Lovelace",
			Summary:        "Engineer with a decade of Go experience.",
			Skills:         []string{"Go", "Kubernetes"},
			SuggestedRoles: []string{"Backend Engineer"},
		})
	})

	profile, err := c.AnalyzeResume(context.Background(), testFileData())
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, "Backend Engineer", profile.PrimaryRole())
}

func TestAnalyzeResume_ServerErrorUsesErrorField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "parse failed"})
	})

	_, err := c.AnalyzeResume(context.Background(), testFileData())
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusInternalServerError, transportErr.Status)
	assert.Equal(t, "parse failed", transportErr.Message)
}

func TestAnalyzeResume_ServerErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.AnalyzeResume(context.Background(), testFileData())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Message, "502")
}

func TestAnalyzeResume_MissingFileFailsFast(t *testing.T) {
	requested := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})

	// Base64-only FileData is explicitly unsupported.
	_, err := c.AnalyzeResume(context.Background(), &types.FileData{Base64: "abcd"})
	require.Error(t, err)

	var invalidErr *InvalidInputError
	require.ErrorAs(t, err, &invalidErr)
	assert.False(t, requested, "no request should be sent without raw bytes")
}

func TestAnalyzeResume_ForwardsEnhancedFlag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "true", r.FormValue("enhanced"))
		json.NewEncoder(w).Encode(types.CandidateProfile{Name: "Candidate"})
	})

	fd := testFileData()
	fd.Enhanced = true
	_, err := c.AnalyzeResume(context.Background(), fd)
	require.NoError(t, err)
}

func TestSearchMatchingJobs_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/search-jobs", r.URL.Path)

		var req types.SearchJobsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"Backend Engineer"}, req.Roles)
		assert.Equal(t, "Taiwan", req.Location)

		json.NewEncoder(w).Encode([]types.RawJob{
			{ID: "a1", Title: "Go Developer", Company: "Acme", Platform: "LinkedIn"},
			{Title: "Platform Engineer"},
		})
	})

	jobs := c.SearchMatchingJobs(context.Background(), &types.CandidateProfile{
		SuggestedRoles: []string{"Backend Engineer"},
		Skills:         []string{"Go"},
	})
	require.Len(t, jobs, 2)
	assert.Equal(t, "a1", jobs[0].ID)
	assert.Equal(t, "LinkedIn", jobs[0].Platform)
	assert.NotEmpty(t, jobs[1].ID, "missing id must be synthesized")
}

func TestSearchMatchingJobs_ServerErrorReturnsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	jobs := c.SearchMatchingJobs(context.Background(), &types.CandidateProfile{Skills: []string{"Go"}})
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestSearchMatchingJobs_UnreachableServerReturnsEmpty(t *testing.T) {
	c := New(Options{BaseURL: "http://127.0.0.1:1/api", Timeout: 200 * time.Millisecond})
	jobs := c.SearchMatchingJobs(context.Background(), &types.CandidateProfile{Skills: []string{"Go"}})
	assert.Empty(t, jobs)
}

func TestAnalyzeJobCompatibility_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analyze-job-match", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "We need a Go engineer.", r.FormValue("jobDescription"))

		json.NewEncoder(w).Encode(types.KeywordAnalysis{
			MissingKeywords: []string{"Terraform"},
			MatchScore:      82,
			Advice:          "Mention infrastructure work.",
		})
	})

	analysis, err := c.AnalyzeJobCompatibility(context.Background(), testFileData(), "We need a Go engineer.")
	require.NoError(t, err)
	assert.Equal(t, 82, analysis.MatchScore)
	assert.Equal(t, []string{"Terraform"}, analysis.MissingKeywords)
}

func TestAnalyzeJobCompatibility_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model unavailable"})
	})

	_, err := c.AnalyzeJobCompatibility(context.Background(), testFileData(), "desc")
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "model unavailable", transportErr.Message)
}

func TestGenerateCoverLetter_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate-cover-letter", r.URL.Path)
		json.NewEncoder(w).Encode(types.CoverLetterResponse{CoverLetter: "Dear hiring team,"})
	})

	letter := c.GenerateCoverLetter(context.Background(), testFileData(), "desc")
	assert.Equal(t, "Dear hiring team,", letter)
}

func TestGenerateCoverLetter_ServerErrorReturnsFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	letter := c.GenerateCoverLetter(context.Background(), testFileData(), "desc")
	assert.Equal(t, FallbackCoverLetter, letter)
}

func TestGenerateCoverLetter_MissingFileReturnsFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent")
	})

	letter := c.GenerateCoverLetter(context.Background(), &types.FileData{}, "desc")
	assert.Equal(t, FallbackCoverLetter, letter)
}

func TestNormalizeJob_Defaults(t *testing.T) {
	now := time.Now()
	job := NormalizeJob(types.RawJob{}, 3, now)

	assert.Equal(t, "job-3-"+strconv.FormatInt(now.UnixMilli(), 10), job.ID)
	assert.Equal(t, "Untitled position", job.Title)
	assert.Equal(t, "Unknown company", job.Company)
	assert.Equal(t, "Other", job.Platform)
	assert.Equal(t, "#", job.Link)
	assert.Equal(t, "Negotiable", job.Salary)
	assert.NotNil(t, job.Tags)
	assert.Empty(t, job.Tags)
	assert.False(t, job.Saved)
}

func TestNormalizeJob_KeepsProvidedFields(t *testing.T) {
	job := NormalizeJob(types.RawJob{
		ID:       "x9",
		Title:    "Data Engineer",
		Company:  "Initech",
		Platform: "cakeresume",
		Link:     "https://example.com/job/1",
		Salary:   "NT$1.2M",
		Tags:     []string{"Go", "SQL"},
		Location: "Taipei",
	}, 0, time.Now())

	assert.Equal(t, "x9", job.ID)
	assert.Equal(t, "CakeResume", job.Platform)
	assert.Equal(t, "https://example.com/job/1", job.Link)
	assert.Equal(t, "NT$1.2M", job.Salary)
	assert.Equal(t, []string{"Go", "SQL"}, job.Tags)
	assert.Equal(t, "Taipei", job.Location)
}

func TestNormalizeJobs_UniqueFallbackIDs(t *testing.T) {
	now := time.Now()
	jobs := NormalizeJobs([]types.RawJob{{}, {}, {}}, now)
	require.Len(t, jobs, 3)

	seen := map[string]bool{}
	for _, j := range jobs {
		assert.False(t, seen[j.ID], "id %s duplicated", j.ID)
		seen[j.ID] = true
	}
}
