package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/career-harvester/internal/llm"
	"github.com/jonathan/career-harvester/internal/types"
)

// maxResumeChars keeps the analysis prompt within context limits.
const maxResumeChars = 6000

const profileSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"summary": {"type": "string"},
		"skills": {"type": "array", "items": {"type": "string"}},
		"suggestedRoles": {"type": "array", "items": {"type": "string"}}
	}
}`

const resumeAnalyzerSystem = `You are an expert career consultant and resume analyst.
Analyze resumes thoroughly and extract key information accurately.
Always respond with valid JSON.`

// ResumeAnalyzer extracts a candidate profile from resume text.
type ResumeAnalyzer struct {
	client llm.Client
}

// NewResumeAnalyzer creates a ResumeAnalyzer over the LLM client.
func NewResumeAnalyzer(client llm.Client) *ResumeAnalyzer {
	return &ResumeAnalyzer{client: client}
}

// Analyze extracts name, summary, skills, and suggested roles from resume
// text. Fields the model omits are backfilled with safe defaults.
func (a *ResumeAnalyzer) Analyze(ctx context.Context, resumeText string) (*types.CandidateProfile, error) {
	prompt := fmt.Sprintf(`Analyze this resume and extract the following information:

RESUME CONTENT:
%s

---

Please extract:
1. **Name**: The candidate's full name. If not clearly stated, use "Candidate"
2. **Summary**: A 2-3 sentence professional summary highlighting their key strengths, experience level, and career focus
3. **Skills**: 6-10 distinct technical skills, tools, or professional competencies (prioritize hard skills)
4. **Suggested Roles**: 3 specific job titles that best match this profile

Return ONLY valid JSON with this structure:
{
  "name": "Full Name",
  "summary": "Professional summary...",
  "skills": ["skill1", "skill2"],
  "suggestedRoles": ["Role 1", "Role 2", "Role 3"]
}`, truncate(resumeText, maxResumeChars))

	raw, err := generateJSON(ctx, a.client, resumeAnalyzerSystem, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("resume analysis failed: %w", err)
	}

	if err := validateSchema("resume analyzer", profileSchema, raw); err != nil {
		return nil, err
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, &ResponseError{Delegate: "resume analyzer", Message: "response is not valid JSON", Cause: err}
	}

	backfillProfile(&profile)
	log.Printf("analyzed resume for: %s", profile.Name)
	return &profile, nil
}

// backfillProfile fills fields the model left out so callers never see a
// half-empty profile.
func backfillProfile(p *types.CandidateProfile) {
	if p.Name == "" {
		p.Name = types.UnknownCandidateName
	}
	if p.Summary == "" {
		p.Summary = "No summary available."
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.SuggestedRoles == nil {
		p.SuggestedRoles = []string{}
	}
}
