package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the environment variables that have no defaults.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TASK_SVC_DATABASE_URL", "postgres://localhost:5432/tasks")
	t.Setenv("TASK_SVC_AUTH_SESSION_SERVICE_URL", "http://localhost:8001")
	t.Setenv("TASK_SVC_LLM_GEMINI_API_KEY", "test-key")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 5, cfg.Auth.RequestTimeoutSeconds)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
	assert.Equal(t, 10, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, 2, cfg.Task.WorkerCount)
	assert.Equal(t, 100, cfg.Task.QueueSize)
}

func TestLoadReadsEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TASK_SVC_SERVER_PORT", "9090")
	t.Setenv("TASK_SVC_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TASK_SVC_LLM_TIMEOUT_SECONDS", "30")
	t.Setenv("TASK_SVC_TASK_WORKER_COUNT", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/tasks", cfg.Database.URL)
	assert.Equal(t, "http://localhost:8001", cfg.Auth.SessionServiceURL)
	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, 30, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, 4, cfg.Task.WorkerCount)
}

func TestLoadRejectsMissingRequiredValues(t *testing.T) {
	t.Setenv("TASK_SVC_AUTH_SESSION_SERVICE_URL", "http://localhost:8001")
	t.Setenv("TASK_SVC_LLM_GEMINI_API_KEY", "test-key")
	// database.url intentionally unset

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TASK_SVC_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
