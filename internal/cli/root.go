package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/zentask/internal/advisor"
	"github.com/alexanderramin/zentask/internal/cli/formatter"
	"github.com/alexanderramin/zentask/internal/store"
	"github.com/spf13/cobra"
)

// App holds everything the presentation layer needs. Task state lives in
// Store; commands never cache it.
type App struct {
	Store   *store.Store
	Advisor advisor.Advisor
	Logger  *slog.Logger

	// HTTPAddr is the default listen address for "serve".
	HTTPAddr string

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// Now is the clock used for relative dates. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startSpinner shows progress on stderr while an advisory call runs. Output
// that is not a terminal gets no spinner.
func (a *App) startSpinner(cmd *cobra.Command, message string) func() {
	if !a.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// NewRootCmd creates the top-level "zentask" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "zentask",
		Short:         "Personal task manager with AI-assisted planning",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runBoard(cmd, app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newListCmd(app),
		newShowCmd(app),
		newAddCmd(app),
		newToggleCmd(app),
		newRemoveCmd(app),
		newBreakdownCmd(app),
		newSubTaskCmd(app),
		newAdviceCmd(app),
		newStatsCmd(app),
		newCategoriesCmd(app),
		newBoardCmd(app),
		newServeCmd(app),
	)

	return root
}
