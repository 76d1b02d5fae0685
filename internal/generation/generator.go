// Package generation provides the contract for interacting with external
// AI/LLM services. It abstracts the details of LLM API integration (Gemini),
// allowing the application to derive suggested instructions for a task
// without coupling to a specific external backend.
package generation

import "context"

// Generator produces a validated list of instruction sentences for a task.
// Implementations either return a complete, validated list or an error,
// never a partial or best-guess result.
type Generator interface {
	// GenerateInstructions derives 3 to 10 single-sentence instructions from
	// the task's title and description. Both inputs must be non-empty after
	// trimming; otherwise the call fails without contacting the backend.
	GenerateInstructions(ctx context.Context, title, description string) ([]string, error)
}
