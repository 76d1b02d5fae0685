package gemini

import (
	"fmt"
	"strings"

	"task-manage-svc/internal/generation"
)

// Instruction list bounds. Responses outside these bounds are rejected
// wholesale rather than truncated or padded.
const (
	minInstructionCount = 3
	maxInstructionCount = 10
)

// validateInstructions checks the decoded instruction list against the
// format constraints and returns the trimmed instructions. Each instruction
// must be non-empty after trimming and contain at most one period; more than
// one period indicates concatenated sentences.
func validateInstructions(raw []string) ([]string, error) {
	if len(raw) < minInstructionCount || len(raw) > maxInstructionCount {
		return nil, fmt.Errorf("%w: expected between %d and %d instructions, got %d",
			generation.ErrInvalidResponse, minInstructionCount, maxInstructionCount, len(raw))
	}

	instructions := make([]string, 0, len(raw))
	for i, inst := range raw {
		trimmed := strings.TrimSpace(inst)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: instruction %d is empty",
				generation.ErrInvalidResponse, i)
		}

		if strings.Count(trimmed, ".") > 1 {
			return nil, fmt.Errorf("%w: instruction %d contains multiple sentences",
				generation.ErrInvalidResponse, i)
		}

		instructions = append(instructions, trimmed)
	}

	return instructions, nil
}
