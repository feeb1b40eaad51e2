package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-harvester/internal/llm"
)

// fakeLLM returns a scripted response and records the last request.
type fakeLLM struct {
	response string
	err      error
	lastReq  llm.Request
}

func (f *fakeLLM) Generate(_ context.Context, req llm.Request) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Model() string { return "fake-model" }
func (f *fakeLLM) Close() error  { return nil }

func TestResumeAnalyzer_Success(t *testing.T) {
	fake := &fakeLLM{response: `{
		"name": "Ada Lovelace",
		"summary": "Pioneering engineer.",
		"skills": ["Go", "SQL"],
		"suggestedRoles": ["Backend Engineer"]
	}`}

	profile, err := NewResumeAnalyzer(fake).Analyze(context.Background(), "resume text")
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)
	assert.True(t, fake.lastReq.JSON)
	assert.InDelta(t, 0.3, fake.lastReq.Temperature, 0.001)
}

func TestResumeAnalyzer_BackfillsMissingFields(t *testing.T) {
	fake := &fakeLLM{response: `{"summary": "Engineer."}`}

	profile, err := NewResumeAnalyzer(fake).Analyze(context.Background(), "resume text")
	require.NoError(t, err)

	assert.Equal(t, "Candidate", profile.Name)
	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.SuggestedRoles)
}

func TestResumeAnalyzer_TruncatesLongResume(t *testing.T) {
	fake := &fakeLLM{response: `{"name": "X"}`}
	long := strings.Repeat("a", maxResumeChars+500)

	_, err := NewResumeAnalyzer(fake).Analyze(context.Background(), long)
	require.NoError(t, err)
	assert.Contains(t, fake.lastReq.Prompt, "[Content truncated...]")
}

func TestResumeAnalyzer_InvalidJSON(t *testing.T) {
	fake := &fakeLLM{response: `not json at all`}

	_, err := NewResumeAnalyzer(fake).Analyze(context.Background(), "resume text")
	require.Error(t, err)

	var respErr *ResponseError
	assert.ErrorAs(t, err, &respErr)
}

func TestResumeAnalyzer_LLMError(t *testing.T) {
	fake := &fakeLLM{err: errors.New("quota exceeded")}

	_, err := NewResumeAnalyzer(fake).Analyze(context.Background(), "resume text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume analysis failed")
}

func TestJobSearchAgent_AssignsIDsAndNormalizesPlatforms(t *testing.T) {
	fake := &fakeLLM{response: `{
		"jobs": [
			{"title": "Go Developer", "company": "Acme", "platform": "LinkedIn Jobs", "link": "https://example.com/1"},
			{"title": "SRE", "company": "Initech", "platform": "Indeed", "link": "https://example.com/2"}
		],
		"search_summary": "Searched Taiwan job boards"
	}`}

	jobs, err := NewJobSearchAgent(fake).Search(context.Background(), []string{"Backend Engineer"}, []string{"Go"}, "Taiwan")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.True(t, strings.HasPrefix(jobs[0].ID, "job-0-"))
	assert.True(t, strings.HasPrefix(jobs[1].ID, "job-1-"))
	assert.Equal(t, "LinkedIn", jobs[0].Platform)
	assert.Equal(t, "Other", jobs[1].Platform, "Indeed maps to Other")
}

func TestJobSearchAgent_MissingJobsField(t *testing.T) {
	fake := &fakeLLM{response: `{"search_summary": "nothing"}`}

	_, err := NewJobSearchAgent(fake).Search(context.Background(), []string{"Role"}, nil, "Taiwan")
	require.Error(t, err)

	var respErr *ResponseError
	assert.ErrorAs(t, err, &respErr)
}

func TestBuildSearchQuery_LimitsRolesAndSkills(t *testing.T) {
	query := buildSearchQuery(
		[]string{"r1", "r2", "r3", "r4"},
		[]string{"s1", "s2", "s3", "s4", "s5", "s6"},
		"Taiwan",
	)

	assert.Contains(t, query, `"r1" OR "r2" OR "r3"`)
	assert.NotContains(t, query, "r4")
	assert.Contains(t, query, "s1, s2, s3, s4, s5")
	assert.NotContains(t, query, "s6")
	assert.Contains(t, query, "Location: Taiwan")
}

func TestJobMatchAnalyzer_Success(t *testing.T) {
	fake := &fakeLLM{response: `{
		"missingKeywords": ["Terraform", "AWS"],
		"matchScore": 72,
		"advice": "Add cloud infrastructure experience."
	}`}

	analysis, err := NewJobMatchAnalyzer(fake).Analyze(context.Background(), "resume", "description")
	require.NoError(t, err)

	assert.Equal(t, 72, analysis.MatchScore)
	assert.Equal(t, []string{"Terraform", "AWS"}, analysis.MissingKeywords)
}

func TestJobMatchAnalyzer_RejectsOutOfRangeScore(t *testing.T) {
	fake := &fakeLLM{response: `{"missingKeywords": [], "matchScore": 150, "advice": "x"}`}

	_, err := NewJobMatchAnalyzer(fake).Analyze(context.Background(), "resume", "description")
	require.Error(t, err)

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Contains(t, respErr.Message, "matchScore")
}

func TestCoverLetterGenerator_Success(t *testing.T) {
	fake := &fakeLLM{response: `{"coverLetter": "Dear hiring team, ..."}`}

	letter, err := NewCoverLetterGenerator(fake).Generate(context.Background(), "resume", "description")
	require.NoError(t, err)

	assert.Equal(t, "Dear hiring team, ...", letter)
	assert.InDelta(t, 0.7, fake.lastReq.Temperature, 0.001)
}

func TestCoverLetterGenerator_MissingField(t *testing.T) {
	fake := &fakeLLM{response: `{}`}

	_, err := NewCoverLetterGenerator(fake).Generate(context.Background(), "resume", "description")
	require.Error(t, err)
}

func TestValidateSchema_ReportsFieldPath(t *testing.T) {
	err := validateSchema("test", keywordAnalysisSchema, `{"missingKeywords": "not-an-array", "matchScore": 10, "advice": "x"}`)
	require.Error(t, err)

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Contains(t, respErr.Message, "missingKeywords")
}
