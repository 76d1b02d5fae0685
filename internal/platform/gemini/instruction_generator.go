// Package gemini implements the generation.Generator contract using
// Google's Gemini API to derive suggested instructions for a task.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"google.golang.org/genai"

	"task-manage-svc/internal/config"
	"task-manage-svc/internal/generation"
)

// promptTemplateText asks the model for a bare JSON array so the response can
// be decoded without post-processing.
const promptTemplateText = `You are an assistant that breaks a work task into concise, actionable instructions.

Task title: {{.Title}}
Task description: {{.Description}}

Respond with a JSON array of between 3 and 10 strings. Each string must be a
single short imperative sentence ending in exactly one period, with no
numbering and no extra commentary. Respond with the JSON array only.`

// promptData carries the fields rendered into the prompt template.
type promptData struct {
	Title       string
	Description string
}

// InstructionGenerator implements the generation.Generator interface using
// Google's Gemini API.
type InstructionGenerator struct {
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	// timeout bounds a single generation call
	timeout time.Duration
}

// NewInstructionGenerator creates a new InstructionGenerator with the
// provided dependencies. Returns an error if the configuration is invalid or
// the Gemini client cannot be created.
func NewInstructionGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*InstructionGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("instructions").Parse(promptTemplateText)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &InstructionGenerator{
		logger:         logger,
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
		timeout:        timeout,
	}, nil
}

// Ensure InstructionGenerator implements generation.Generator
var _ generation.Generator = (*InstructionGenerator)(nil)

// GenerateInstructions derives 3 to 10 single-sentence instructions from the
// task's title and description. Any failure, from empty input and transport
// errors through malformed or out-of-bounds payloads, yields an error and no
// instructions; the caller never sees a partial list.
func (g *InstructionGenerator) GenerateInstructions(
	ctx context.Context,
	title, description string,
) ([]string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, generation.ErrEmptyInput
	}

	prompt, err := g.buildPrompt(title, description)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode instruction list: %v",
			generation.ErrInvalidResponse, err)
	}

	instructions, err := validateInstructions(raw)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "instructions generated",
		"model", g.model,
		"instruction_count", len(instructions))
	return instructions, nil
}

// buildPrompt renders the prompt template with the given task fields.
func (g *InstructionGenerator) buildPrompt(title, description string) (string, error) {
	var buf bytes.Buffer
	err := g.promptTemplate.Execute(&buf, promptData{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
