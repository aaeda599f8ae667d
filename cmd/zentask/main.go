package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/zentask/internal/advisor"
	"github.com/alexanderramin/zentask/internal/cli"
	"github.com/alexanderramin/zentask/internal/config"
	"github.com/alexanderramin/zentask/internal/db"
	"github.com/alexanderramin/zentask/internal/llm"
	"github.com/alexanderramin/zentask/internal/repository"
	"github.com/alexanderramin/zentask/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if cfg.LLM.LogCalls {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx := context.Background()
	tasks := store.New(repository.NewSQLiteKVRepo(database), store.WithLogger(logger))
	tasks.Load(ctx)

	// Advisory calls always go through a client; a disabled one makes every
	// call take its fallback.
	llmClient := llm.NewDisabledClient()
	if cfg.LLM.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		llmClient = llm.NewOllamaClient(cfg.LLM, observer)
	}

	app := &cli.App{
		Store:    tasks,
		Advisor:  advisor.New(llmClient),
		Logger:   logger,
		HTTPAddr: cfg.HTTPAddr,
	}

	// Detect interactive terminal for the board and the add form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
