package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-harvester/internal/llm"
	"github.com/jonathan/career-harvester/internal/types"
)

// Prompt truncation limits for the match and letter delegates.
const (
	maxMatchResumeChars      = 3000
	maxMatchDescriptionChars = 2000
)

const keywordAnalysisSchema = `{
	"type": "object",
	"properties": {
		"missingKeywords": {"type": "array", "items": {"type": "string"}},
		"matchScore": {"type": "integer", "minimum": 0, "maximum": 100},
		"advice": {"type": "string"}
	},
	"required": ["missingKeywords", "matchScore", "advice"]
}`

const jobMatchSystem = `You are a career coach expert. Respond in JSON.`

// JobMatchAnalyzer scores how well a resume matches a job description.
type JobMatchAnalyzer struct {
	client llm.Client
}

// NewJobMatchAnalyzer creates a JobMatchAnalyzer over the LLM client.
func NewJobMatchAnalyzer(client llm.Client) *JobMatchAnalyzer {
	return &JobMatchAnalyzer{client: client}
}

// Analyze returns missing keywords, a 0-100 match score, and improvement
// advice for the resume against the job description.
func (a *JobMatchAnalyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (*types.KeywordAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze how well this resume matches the job description.

JOB DESCRIPTION:
%s

RESUME:
%s

---

Provide:
1. **Missing Keywords**: Skills/qualifications mentioned in the job but missing from resume
2. **Match Score**: 0-100 score based on skills, experience, and qualification alignment
3. **Advice**: Specific suggestions to improve the resume for this role

Return JSON:
{
  "missingKeywords": ["keyword1", "keyword2"],
  "matchScore": 75,
  "advice": "Specific advice..."
}`,
		truncate(jobDescription, maxMatchDescriptionChars),
		truncate(resumeText, maxMatchResumeChars))

	raw, err := generateJSON(ctx, a.client, jobMatchSystem, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("job match analysis failed: %w", err)
	}

	if err := validateSchema("job match", keywordAnalysisSchema, raw); err != nil {
		return nil, err
	}

	var analysis types.KeywordAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, &ResponseError{Delegate: "job match", Message: "response is not valid JSON", Cause: err}
	}
	return &analysis, nil
}
