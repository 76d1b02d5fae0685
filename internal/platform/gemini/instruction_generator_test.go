package gemini

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"text/template"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manage-svc/internal/config"
	"task-manage-svc/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestGenerator builds a generator without a live client. Input validation
// happens before the client is touched, so these tests never reach the API.
func newTestGenerator(t *testing.T) *InstructionGenerator {
	t.Helper()

	tmpl, err := template.New("instructions").Parse(promptTemplateText)
	require.NoError(t, err)

	return &InstructionGenerator{
		logger:         testLogger(),
		config:         config.LLMConfig{ModelName: "test-model"},
		promptTemplate: tmpl,
		model:          "test-model",
		timeout:        time.Second,
	}
}

func TestNewInstructionGeneratorValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()
		_, err := NewInstructionGenerator(ctx, nil, config.LLMConfig{
			GeminiAPIKey: "key", ModelName: "model",
		})
		assert.Error(t, err)
	})

	t.Run("missing API key", func(t *testing.T) {
		t.Parallel()
		_, err := NewInstructionGenerator(ctx, testLogger(), config.LLMConfig{
			ModelName: "model",
		})
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("missing model name", func(t *testing.T) {
		t.Parallel()
		_, err := NewInstructionGenerator(ctx, testLogger(), config.LLMConfig{
			GeminiAPIKey: "key",
		})
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}

func TestGenerateInstructionsRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)
	ctx := context.Background()

	cases := []struct {
		name        string
		title       string
		description string
	}{
		{"empty title", "", "Test Description"},
		{"empty description", "Test Task", ""},
		{"whitespace title", "   ", "Test Description"},
		{"whitespace description", "Test Task", "   "},
		{"both empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			instructions, err := g.GenerateInstructions(ctx, tc.title, tc.description)
			assert.ErrorIs(t, err, generation.ErrEmptyInput)
			assert.Nil(t, instructions)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)

	prompt, err := g.buildPrompt("Ship release", "Cut the release branch and tag it")
	require.NoError(t, err)

	assert.Contains(t, prompt, "Ship release")
	assert.Contains(t, prompt, "Cut the release branch and tag it")
	assert.Contains(t, prompt, "JSON array")
}

func TestValidateInstructions(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid list and trims entries", func(t *testing.T) {
		t.Parallel()

		raw := []string{
			"  Review the task requirements.  ",
			"Validate all inputs.",
			"Implement the change.",
		}
		instructions, err := validateInstructions(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Review the task requirements.",
			"Validate all inputs.",
			"Implement the change.",
		}, instructions)
	})

	t.Run("accepts exactly the bounds", func(t *testing.T) {
		t.Parallel()

		three := makeInstructions(3)
		_, err := validateInstructions(three)
		assert.NoError(t, err)

		ten := makeInstructions(10)
		_, err = validateInstructions(ten)
		assert.NoError(t, err)
	})

	t.Run("rejects too few instructions", func(t *testing.T) {
		t.Parallel()

		_, err := validateInstructions([]string{"Only one instruction."})
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("rejects too many instructions", func(t *testing.T) {
		t.Parallel()

		_, err := validateInstructions(makeInstructions(11))
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("rejects empty entries", func(t *testing.T) {
		t.Parallel()

		_, err := validateInstructions([]string{"First step.", "   ", "Third step."})
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("rejects multi-sentence entries", func(t *testing.T) {
		t.Parallel()

		_, err := validateInstructions([]string{
			"First step.",
			"Do this. Then do that.",
			"Third step.",
		})
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("accepts entries without a trailing period", func(t *testing.T) {
		t.Parallel()

		_, err := validateInstructions([]string{
			"Review the plan",
			"Write the code",
			"Run the checks",
		})
		assert.NoError(t, err)
	})
}

func makeInstructions(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("Instruction %d.", i))
	}
	return out
}
