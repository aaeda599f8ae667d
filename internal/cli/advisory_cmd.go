package cli

import (
	"fmt"

	"github.com/alexanderramin/zentask/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBreakdownCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown ID",
		Short: "Split a task into AI-suggested sub-tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			if len(t.SubTasks) > 0 {
				return fmt.Errorf("task %q already has %d sub-tasks", t.Title, len(t.SubTasks))
			}

			stop := app.startSpinner(cmd, "Breaking down task...")
			subTasks := app.Advisor.BreakdownTask(ctx, t.Title)
			stop()

			applied, err := app.Store.ApplyBreakdown(ctx, t.ID, subTasks)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No sub-tasks were suggested."))
				return nil
			}

			updated, _ := app.Store.Get(t.ID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskDetail(updated, app.now()))
			return nil
		},
	}
}

func newAdviceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "advice",
		Short: "Ask the AI what to focus on next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := app.startSpinner(cmd, "Thinking...")
			advice := app.Advisor.GetAdvice(commandContext(cmd), app.Store.Snapshot())
			stop()

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAdvice(advice))
			return nil
		},
	}
}
