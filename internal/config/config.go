// Package config resolves runtime settings from built-in defaults, an
// optional TOML file and ZENTASK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/alexanderramin/zentask/internal/llm"
)

const DefaultHTTPAddr = "127.0.0.1:7410"

// Config is the resolved configuration handed to main.
type Config struct {
	DBPath   string
	HTTPAddr string
	LLM      llm.LLMConfig

	// File is the config file that was read, or "" when none existed.
	File string
}

// fileConfig mirrors config.toml. Decoding happens on top of the defaults so
// absent keys keep their default values.
type fileConfig struct {
	Database databaseSection `toml:"database"`
	Server   serverSection   `toml:"server"`
	LLM      llmSection      `toml:"llm"`
}

type databaseSection struct {
	Path string `toml:"path"`
}

type serverSection struct {
	Addr string `toml:"addr"`
}

type llmSection struct {
	Enabled            bool   `toml:"enabled"`
	LogCalls           bool   `toml:"log_calls"`
	Endpoint           string `toml:"endpoint"`
	Model              string `toml:"model"`
	TimeoutMs          int    `toml:"timeout_ms"`
	MaxRetries         int    `toml:"max_retries"`
	PriorityTimeoutMs  int    `toml:"priority_timeout_ms"`
	BreakdownTimeoutMs int    `toml:"breakdown_timeout_ms"`
	AdviceTimeoutMs    int    `toml:"advice_timeout_ms"`
}

func defaultFileConfig() fileConfig {
	l := llm.DefaultConfig()
	return fileConfig{
		Database: databaseSection{Path: filepath.Join(Home(), "zentask.db")},
		Server:   serverSection{Addr: DefaultHTTPAddr},
		LLM: llmSection{
			Enabled:            l.Enabled,
			LogCalls:           l.LogCalls,
			Endpoint:           l.Endpoint,
			Model:              l.Model,
			TimeoutMs:          l.TimeoutMs,
			MaxRetries:         l.MaxRetries,
			PriorityTimeoutMs:  l.TaskTimeout(llm.TaskPriority),
			BreakdownTimeoutMs: l.TaskTimeout(llm.TaskBreakdown),
			AdviceTimeoutMs:    l.TaskTimeout(llm.TaskAdvice),
		},
	}
}

// Default returns the configuration used when no file or env vars are set.
func Default() Config {
	return defaultFileConfig().resolve()
}

// Load builds the configuration. A missing config file is not an error; an
// unparsable one is.
func Load() (Config, error) {
	fc := defaultFileConfig()
	path := Path()

	found := true
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		found = false
	}

	cfg := fc.resolve()
	if found {
		cfg.File = path
	}
	applyEnv(&cfg)
	return cfg, nil
}

func (fc fileConfig) resolve() Config {
	l := llm.DefaultConfig()
	l.Enabled = fc.LLM.Enabled
	l.LogCalls = fc.LLM.LogCalls
	if fc.LLM.Endpoint != "" {
		l.Endpoint = fc.LLM.Endpoint
	}
	if fc.LLM.Model != "" {
		l.Model = fc.LLM.Model
	}
	if fc.LLM.TimeoutMs > 0 {
		l.TimeoutMs = fc.LLM.TimeoutMs
	}
	if fc.LLM.MaxRetries >= 0 {
		l.MaxRetries = fc.LLM.MaxRetries
	}
	setTaskTimeout(&l, llm.TaskPriority, fc.LLM.PriorityTimeoutMs)
	setTaskTimeout(&l, llm.TaskBreakdown, fc.LLM.BreakdownTimeoutMs)
	setTaskTimeout(&l, llm.TaskAdvice, fc.LLM.AdviceTimeoutMs)

	return Config{
		DBPath:   expandHome(fc.Database.Path),
		HTTPAddr: fc.Server.Addr,
		LLM:      l,
	}
}

func setTaskTimeout(cfg *llm.LLMConfig, task llm.TaskType, ms int) {
	if ms > 0 {
		cfg.SetTaskTimeout(task, ms)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ZENTASK_DB"); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v := os.Getenv("ZENTASK_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	llm.ApplyEnv(&cfg.LLM)
}

// Home is the per-user data directory, ~/.zentask.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zentask"
	}
	return filepath.Join(home, ".zentask")
}

// Path is the config file location: ZENTASK_CONFIG, else ~/.zentask/config.toml.
func Path() string {
	if v := os.Getenv("ZENTASK_CONFIG"); v != "" {
		return expandHome(v)
	}
	return filepath.Join(Home(), "config.toml")
}

func expandHome(p string) string {
	if p == "~" || len(p) > 1 && p[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[1:])
	}
	return p
}
