package llm

import (
	"os"
	"strconv"
)

// TaskType identifies which advisory operation a call belongs to.
type TaskType string

const (
	TaskPriority  TaskType = "priority"
	TaskBreakdown TaskType = "breakdown"
	TaskAdvice    TaskType = "advice"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the generation client.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an enabled configuration pointing at a local
// Ollama-compatible server. Retries default to zero: every advisory call
// already has a deterministic fallback.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    true,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  10000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskPriority:  {Temperature: 0.1, MaxTokens: 64, TimeoutMs: 8000},
			TaskBreakdown: {Temperature: 0.3, MaxTokens: 512, TimeoutMs: 15000},
			TaskAdvice:    {Temperature: 0.5, MaxTokens: 256, TimeoutMs: 10000},
		},
	}
}

// taskTimeoutEnv names the per-task timeout override for each advisory call.
var taskTimeoutEnv = map[TaskType]string{
	TaskPriority:  "ZENTASK_LLM_PRIORITY_TIMEOUT_MS",
	TaskBreakdown: "ZENTASK_LLM_BREAKDOWN_TIMEOUT_MS",
	TaskAdvice:    "ZENTASK_LLM_ADVICE_TIMEOUT_MS",
}

// ApplyEnv overlays ZENTASK_LLM_* environment variables onto cfg. Invalid
// values are ignored.
func ApplyEnv(cfg *LLMConfig) {
	envBool("ZENTASK_LLM_ENABLED", &cfg.Enabled)
	envBool("ZENTASK_LLM_LOG_CALLS", &cfg.LogCalls)
	envString("ZENTASK_LLM_ENDPOINT", &cfg.Endpoint)
	envString("ZENTASK_LLM_MODEL", &cfg.Model)
	envInt("ZENTASK_LLM_TIMEOUT_MS", 1, &cfg.TimeoutMs)
	envInt("ZENTASK_LLM_MAX_RETRIES", 0, &cfg.MaxRetries)

	for task, name := range taskTimeoutEnv {
		ms := 0
		if envInt(name, 1, &ms) {
			cfg.SetTaskTimeout(task, ms)
		}
	}
}

func envString(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func envBool(name string, dst *bool) {
	if b, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		*dst = b
	}
}

// envInt stores the variable when it parses and is at least minimum.
func envInt(name string, minimum int, dst *int) bool {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n < minimum {
		return false
	}
	*dst = n
	return true
}

// TaskTimeout returns the effective timeout for a given task type.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// SetTaskTimeout sets a per-task timeout, creating the task entry if needed.
func (c *LLMConfig) SetTaskTimeout(task TaskType, ms int) {
	if c.Tasks == nil {
		c.Tasks = make(map[TaskType]TaskConfig)
	}
	tc := c.Tasks[task]
	tc.TimeoutMs = ms
	c.Tasks[task] = tc
}
