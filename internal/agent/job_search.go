package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/career-harvester/internal/llm"
	"github.com/jonathan/career-harvester/internal/platform"
	"github.com/jonathan/career-harvester/internal/types"
)

const (
	maxSearchRoles  = 3
	maxSearchSkills = 5
)

const jobSearchSchema = `{
	"type": "object",
	"properties": {
		"jobs": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"title": {"type": "string"},
					"company": {"type": "string"},
					"platform": {"type": "string"},
					"link": {"type": "string"},
					"salary": {"type": "string"},
					"location": {"type": "string"},
					"tags": {"type": "array", "items": {"type": "string"}},
					"description": {"type": "string"}
				}
			}
		},
		"search_summary": {"type": "string"}
	},
	"required": ["jobs"]
}`

const jobSearchSystem = `You are a professional job search agent. Your task is to:
1. Search for real, current job openings
2. Extract accurate job information including title, company, platform, and URL
3. Return ONLY real jobs with valid URLs

CRITICAL: Do NOT make up or hallucinate job listings.

For the platform field, use one of: "104", "1111", "CakeResume", "LinkedIn", "Indeed", "Other"

Return your findings as a JSON object with this exact structure:
{
  "jobs": [
    {
      "title": "Job Title",
      "company": "Company Name",
      "platform": "Platform Name",
      "link": "https://actual-job-url.com/job/123",
      "salary": "Salary range or 'Not disclosed'",
      "location": "City, Country",
      "tags": ["skill1", "skill2", "skill3"],
      "description": "Brief 1-2 sentence description"
    }
  ],
  "search_summary": "Brief summary of search performed"
}`

// JobSearchAgent finds job listings matching a candidate profile.
type JobSearchAgent struct {
	client llm.Client
}

// NewJobSearchAgent creates a JobSearchAgent over the LLM client.
func NewJobSearchAgent(client llm.Client) *JobSearchAgent {
	return &JobSearchAgent{client: client}
}

type jobSearchResult struct {
	Jobs          []types.RawJob `json:"jobs"`
	SearchSummary string         `json:"search_summary"`
}

// Search returns raw job records for the given roles, skills, and location.
// Each record gets a server-assigned id and a platform normalized onto the
// fixed set.
func (a *JobSearchAgent) Search(ctx context.Context, roles, skills []string, location string) ([]types.RawJob, error) {
	log.Printf("searching jobs for roles %v in %s", roles, location)

	raw, err := generateJSON(ctx, a.client, jobSearchSystem, buildSearchQuery(roles, skills, location), 0.3)
	if err != nil {
		return nil, fmt.Errorf("job search failed: %w", err)
	}

	if err := validateSchema("job search", jobSearchSchema, raw); err != nil {
		return nil, err
	}

	var result jobSearchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &ResponseError{Delegate: "job search", Message: "response is not valid JSON", Cause: err}
	}

	for i := range result.Jobs {
		result.Jobs[i].ID = fmt.Sprintf("job-%d-%s", i, uuid.NewString()[:8])
		result.Jobs[i].Platform = string(platform.Normalize(result.Jobs[i].Platform))
	}

	log.Printf("found %d job listings", len(result.Jobs))
	return result.Jobs, nil
}

// buildSearchQuery builds the search instruction from the candidate's top
// roles and skills.
func buildSearchQuery(roles, skills []string, location string) string {
	if len(roles) > maxSearchRoles {
		roles = roles[:maxSearchRoles]
	}
	if len(skills) > maxSearchSkills {
		skills = skills[:maxSearchSkills]
	}

	quoted := make([]string, len(roles))
	for i, role := range roles {
		quoted[i] = `"` + role + `"`
	}

	return fmt.Sprintf(`Search for current job openings with these criteria:
- Job Titles: %s
- Required Skills: %s
- Location: %s

Focus on job boards like:
- 104.com.tw (Taiwan)
- CakeResume
- LinkedIn Jobs
- 1111.com.tw (Taiwan)
- Indeed

Find 6-8 REAL, CURRENTLY OPEN positions.`,
		strings.Join(quoted, " OR "),
		strings.Join(skills, ", "),
		location)
}
