package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-harvester/internal/client"
	"github.com/jonathan/career-harvester/internal/types"
)

// fakeTransport scripts the four operations for state machine tests.
type fakeTransport struct {
	profile    *types.CandidateProfile
	analyzeErr error
	jobs       []types.Job

	analysis    *types.KeywordAnalysis
	analysisErr error
	coverLetter string

	analyzeCalls int
	searchCalls  int
	matchCalls   int
	coverCalls   int
}

func (f *fakeTransport) AnalyzeResume(_ context.Context, _ *types.FileData) (*types.CandidateProfile, error) {
	f.analyzeCalls++
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.profile, nil
}

func (f *fakeTransport) SearchMatchingJobs(_ context.Context, _ *types.CandidateProfile) []types.Job {
	f.searchCalls++
	if f.jobs == nil {
		return []types.Job{}
	}
	return f.jobs
}

func (f *fakeTransport) AnalyzeJobCompatibility(_ context.Context, _ *types.FileData, _ string) (*types.KeywordAnalysis, error) {
	f.matchCalls++
	if f.analysisErr != nil {
		return nil, f.analysisErr
	}
	return f.analysis, nil
}

func (f *fakeTransport) GenerateCoverLetter(_ context.Context, _ *types.FileData, _ string) string {
	f.coverCalls++
	if f.coverLetter == "" {
		return client.FallbackCoverLetter
	}
	return f.coverLetter
}

func testProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		Name:           "Ada Lovelace",
		Summary:        "Seasoned backend engineer.",
		Skills:         []string{"Go", "PostgreSQL"},
		SuggestedRoles: []string{"Backend Engineer", "Platform Engineer"},
	}
}

func testJobs() []types.Job {
	return []types.Job{
		{ID: "j1", Title: "Go Developer", Company: "Acme", Platform: "LinkedIn", Link: "#", Salary: "Negotiable", Tags: []string{}},
		{ID: "j2", Title: "SRE", Company: "Initech", Platform: "104", Link: "#", Salary: "Negotiable", Tags: []string{}},
	}
}

func testFile() *types.FileData {
	return &types.FileData{Raw: []byte("pdf"), MIMEType: "application/pdf", Filename: "resume.pdf"}
}

func TestSubmit_HappyPathReachesComplete(t *testing.T) {
	ft := &fakeTransport{profile: testProfile(), jobs: testJobs()}
	s := New(ft)

	require.Equal(t, PhaseIdle, s.Phase())
	err := s.Submit(context.Background(), testFile())
	require.NoError(t, err)

	assert.Equal(t, PhaseComplete, s.Phase())
	assert.Equal(t, "Ada Lovelace", s.Profile().Name)
	assert.Len(t, s.Results(), 2)
	assert.NotNil(t, s.File())
	assert.Equal(t, 1, ft.analyzeCalls)
	assert.Equal(t, 1, ft.searchCalls)
}

func TestSubmit_AnalysisFailureEntersErrorWithGenericMessage(t *testing.T) {
	ft := &fakeTransport{analyzeErr: errors.New("parse failed")}
	s := New(ft)

	err := s.Submit(context.Background(), testFile())
	require.Error(t, err)

	assert.Equal(t, PhaseError, s.Phase())
	assert.Equal(t, GenericErrorMessage, s.ErrorMessage())
	assert.NotContains(t, s.ErrorMessage(), "parse failed")
	assert.Nil(t, s.Profile())
	assert.Equal(t, 0, ft.searchCalls, "search must not run after a failed analysis")
}

func TestSubmit_EmptySearchStillCompletes(t *testing.T) {
	// The transport absorbs search failures into an empty list; the session
	// must treat that as a valid completion.
	ft := &fakeTransport{profile: testProfile(), jobs: []types.Job{}}
	s := New(ft)

	require.NoError(t, s.Submit(context.Background(), testFile()))
	assert.Equal(t, PhaseComplete, s.Phase())
	assert.Empty(t, s.Results())
	assert.Empty(t, s.ErrorMessage())
}

func TestSubmit_ClearsPriorState(t *testing.T) {
	ft := &fakeTransport{profile: testProfile(), jobs: testJobs()}
	s := New(ft)
	require.NoError(t, s.Submit(context.Background(), testFile()))
	require.NoError(t, s.ToggleSave("j1"))

	ft.profile = &types.CandidateProfile{Name: "Second Run"}
	ft.jobs = []types.Job{{ID: "j9", Title: "Analyst"}}
	require.NoError(t, s.Submit(context.Background(), testFile()))

	assert.Equal(t, "Second Run", s.Profile().Name)
	require.Len(t, s.Results(), 1)
	assert.Equal(t, "j9", s.Results()[0].ID)
}

func TestReset_OnlyFromCompleteOrError(t *testing.T) {
	s := New(&fakeTransport{})
	assert.Error(t, s.Reset(), "reset from idle is not permitted")
}

func TestReset_ClearsEverything(t *testing.T) {
	ft := &fakeTransport{profile: testProfile(), jobs: testJobs()}
	s := New(ft)
	require.NoError(t, s.Submit(context.Background(), testFile()))
	require.NoError(t, s.ToggleSave("j1"))
	s.SetView(ViewSaved)

	require.NoError(t, s.Reset())

	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Nil(t, s.Profile())
	assert.Empty(t, s.Results())
	assert.Empty(t, s.SavedJobs())
	assert.Empty(t, s.ErrorMessage())
	assert.Nil(t, s.File())
	assert.Equal(t, ViewResults, s.View())
}

func TestReset_FromError(t *testing.T) {
	ft := &fakeTransport{analyzeErr: errors.New("boom")}
	s := New(ft)
	_ = s.Submit(context.Background(), testFile())
	require.Equal(t, PhaseError, s.Phase())

	require.NoError(t, s.Reset())
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.ErrorMessage())
}

func TestToggleSave_AddsCopyToSaved(t *testing.T) {
	ft := &fakeTransport{profile: testProfile(), jobs: testJobs()}
	s := New(ft)
	require.NoError(t, s.Submit(context.Background(), testFile()))

	require.NoError(t, s.ToggleSave("j1"))

	require.Len(t, s.SavedJobs(), 1)
	assert.Equal(t, "j1", s.SavedJobs()[0].ID)
	assert.True(t, s.SavedJobs()[0].Saved)
	assert.True(t, s.Results()[0].Saved, "results copy must be flagged too")
	assert.False(t, s.Results()[1].Saved)
}

func TestToggleSave_TwiceRemoves(t *testing.T) {
	ft := &fakeTransport{profile: testProfile(), jobs: testJobs()}
	s := New(ft)
	require.NoError(t, s.Submit(context.Background(), testFile()))

	require.NoError(t, s.ToggleSave("j2"))
	require.NoError(t, s.ToggleSave("j2"))

	assert.Empty(t, s.SavedJobs())
	assert.False(t, s.Results()[1].Saved)
}

func TestToggleSave_FlagMatchesMembershipForAllIDs(t *testing.T) {
	ft := &fakeTransport{profile: testProfile(), jobs: testJobs()}
	s := New(ft)
	require.NoError(t, s.Submit(context.Background(), testFile()))

	require.NoError(t, s.ToggleSave("j1"))
	require.NoError(t, s.ToggleSave("j2"))
	require.NoError(t, s.ToggleSave("j1"))

	savedIDs := map[string]bool{}
	for _, j := range s.SavedJobs() {
		savedIDs[j.ID] = true
	}
	for _, j := range s.Results() {
		assert.Equal(t, savedIDs[j.ID], j.Saved, "flag/membership mismatch for %s", j.ID)
	}
}

func TestToggleSave_UnsaveFromSavedViewSurvivesNewResults(t *testing.T) {
	// A saved job can outlive the results collection it came from; unsaving
	// it then must not touch the (unrelated) current results.
	ft := &fakeTransport{profile: testProfile(), jobs: testJobs()}
	s := New(ft)
	require.NoError(t, s.Submit(context.Background(), testFile()))
	require.NoError(t, s.ToggleSave("j1"))

	// Saved jobs are independent copies: mutate results, saved copy is intact.
	s.Results()[0].Title = "changed"
	assert.Equal(t, "Go Developer", s.SavedJobs()[0].Title)

	require.NoError(t, s.ToggleSave("j1"))
	assert.Empty(t, s.SavedJobs())
}

func TestToggleSave_InvalidOutsideComplete(t *testing.T) {
	s := New(&fakeTransport{})
	assert.Error(t, s.ToggleSave("j1"))
}

func TestToggleSave_UnknownID(t *testing.T) {
	ft := &fakeTransport{profile: testProfile(), jobs: testJobs()}
	s := New(ft)
	require.NoError(t, s.Submit(context.Background(), testFile()))
	assert.Error(t, s.ToggleSave("nope"))
}

func TestSetView(t *testing.T) {
	s := New(&fakeTransport{})
	assert.Equal(t, ViewResults, s.View())
	s.SetView(ViewSaved)
	assert.Equal(t, ViewSaved, s.View())
}
