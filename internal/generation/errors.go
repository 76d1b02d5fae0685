package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrEmptyInput is returned when the title or description is empty after
	// trimming; the external backend is never called in that case.
	ErrEmptyInput = errors.New("title and description are required for instruction generation")

	// ErrGenerationFailed is returned when instruction generation fails for
	// any general reason, including transport failures and timeouts.
	ErrGenerationFailed = errors.New("failed to generate instructions")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed
	// or violates the instruction format constraints.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
