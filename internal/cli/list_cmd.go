package cli

import (
	"fmt"

	"github.com/alexanderramin/zentask/internal/cli/formatter"
	"github.com/alexanderramin/zentask/internal/view"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var tabFlag, search string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, filtered by tab and search text",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := view.ParseTab(tabFlag)
			if err != nil {
				return err
			}

			tasks := app.Store.Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatTabs(tab, view.Compute(tasks)))
			if search != "" {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("matching %q", search)))
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatTaskList(view.Filter(tasks, tab, search), app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tabFlag, "tab", "t", string(view.DefaultTab), "Tab to show: pending, completed, or all")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive text to match in title or description")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a task with its sub-tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskDetail(t, app.now()))
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(view.Compute(app.Store.Snapshot())))
			return nil
		},
	}
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCategories(view.CategoryCounts(app.Store.Snapshot())))
			return nil
		},
	}
}
