package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-harvester/internal/llm"
	"github.com/jonathan/career-harvester/internal/types"
)

const coverLetterSchema = `{
	"type": "object",
	"properties": {
		"coverLetter": {"type": "string"}
	},
	"required": ["coverLetter"]
}`

const coverLetterSystem = `You are an expert cover letter writer. Respond in JSON.`

// CoverLetterGenerator writes tailored cover letters.
type CoverLetterGenerator struct {
	client llm.Client
}

// NewCoverLetterGenerator creates a CoverLetterGenerator over the LLM client.
func NewCoverLetterGenerator(client llm.Client) *CoverLetterGenerator {
	return &CoverLetterGenerator{client: client}
}

// Generate writes a cover letter for the job description based on the
// resume.
func (g *CoverLetterGenerator) Generate(ctx context.Context, resumeText, jobDescription string) (string, error) {
	prompt := fmt.Sprintf(`Write a professional, compelling cover letter for this job application.

JOB DESCRIPTION:
%s

CANDIDATE'S RESUME:
%s

---

Guidelines:
- Professional yet personable tone
- Highlight relevant experience from the resume
- Show enthusiasm for the specific role and company
- Keep it concise (300-400 words)
- Include a strong opening and call to action

Return JSON with: {"coverLetter": "Your cover letter text..."}`,
		truncate(jobDescription, maxMatchDescriptionChars),
		truncate(resumeText, maxMatchResumeChars))

	raw, err := generateJSON(ctx, g.client, coverLetterSystem, prompt, 0.7)
	if err != nil {
		return "", fmt.Errorf("cover letter generation failed: %w", err)
	}

	if err := validateSchema("cover letter", coverLetterSchema, raw); err != nil {
		return "", err
	}

	var result types.CoverLetterResponse
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", &ResponseError{Delegate: "cover letter", Message: "response is not valid JSON", Cause: err}
	}
	return result.CoverLetter, nil
}
