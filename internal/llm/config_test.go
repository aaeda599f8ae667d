package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 8000, cfg.TaskTimeout(TaskPriority))
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("ZENTASK_LLM_ENABLED", "false")
	t.Setenv("ZENTASK_LLM_ENDPOINT", "http://gpu-box:11434")
	t.Setenv("ZENTASK_LLM_MODEL", "qwen2.5")
	t.Setenv("ZENTASK_LLM_TIMEOUT_MS", "9000")
	t.Setenv("ZENTASK_LLM_BREAKDOWN_TIMEOUT_MS", "20000")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "http://gpu-box:11434", cfg.Endpoint)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 20000, cfg.TaskTimeout(TaskBreakdown))
	assert.Equal(t, 8000, cfg.TaskTimeout(TaskPriority))
}

func TestApplyEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("ZENTASK_LLM_ENABLED", "maybe")
	t.Setenv("ZENTASK_LLM_MAX_RETRIES", "-3")
	t.Setenv("ZENTASK_LLM_ADVICE_TIMEOUT_MS", "not-a-number")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 10000, cfg.TaskTimeout(TaskAdvice))
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tasks = nil
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskAdvice))

	cfg.SetTaskTimeout(TaskAdvice, 1234)
	assert.Equal(t, 1234, cfg.TaskTimeout(TaskAdvice))
}
