// Package agent contains the four AI delegates behind the API: resume
// analysis, job search, job-match analysis, and cover-letter generation.
// Each delegate owns its prompt contract and validates the model's JSON
// output against a schema before trusting it.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/career-harvester/internal/llm"
)

// ResponseError indicates the model returned output that does not satisfy
// the delegate's response contract.
type ResponseError struct {
	Delegate string
	Message  string
	Cause    error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: invalid model response: %s: %v", e.Delegate, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: invalid model response: %s", e.Delegate, e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

// truncate limits text to max characters, marking the cut.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "\n[Content truncated...]"
}

// validateSchema checks a JSON document against an embedded schema and
// returns a readable field-by-field error on mismatch.
func validateSchema(delegate, schema, document string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return &ResponseError{Delegate: delegate, Message: "response is not valid JSON", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		sb.WriteString(field + ": " + desc.Description())
	}
	return &ResponseError{Delegate: delegate, Message: sb.String()}
}

// generateJSON runs a JSON-mode request with the delegate's system prompt.
func generateJSON(ctx context.Context, client llm.Client, system, prompt string, temperature float32) (string, error) {
	return client.Generate(ctx, llm.Request{
		System:      system,
		Prompt:      prompt,
		Temperature: temperature,
		JSON:        true,
	})
}
