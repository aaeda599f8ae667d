package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/zentask/internal/cli/formatter"
	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/alexanderramin/zentask/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// taskInputFlags holds the raw flag values shared by "add" and the add form.
type taskInputFlags struct {
	title       string
	description string
	priority    string
	category    string
	suggest     bool
}

func bindTaskInputFlags(fs *pflag.FlagSet, f *taskInputFlags) {
	fs.StringVar(&f.title, "title", "", "Task title")
	fs.StringVarP(&f.description, "description", "d", "", "Optional description")
	fs.StringVarP(&f.priority, "priority", "p", "", "Priority: low, medium, or high (default medium)")
	fs.StringVarP(&f.category, "category", "c", "", "Category id (default "+domain.DefaultCategoryID+")")
	fs.BoolVar(&f.suggest, "suggest", false, "Ask the AI to suggest a priority when --priority is not given")
}

// validate checks explicitly supplied enum flags. Blank values are left to
// the store defaults.
func (f *taskInputFlags) validate() error {
	if f.priority != "" {
		if _, ok := domain.ParsePriority(f.priority); !ok {
			return fmt.Errorf("invalid priority %q (want low, medium, or high)", f.priority)
		}
	}
	if f.category != "" {
		if _, ok := domain.CategoryByID(f.category); !ok {
			ids := make([]string, len(domain.Categories))
			for i, c := range domain.Categories {
				ids[i] = c.ID
			}
			return fmt.Errorf("unknown category %q (want one of %s)", f.category, strings.Join(ids, ", "))
		}
	}
	return nil
}

func newAddCmd(app *App) *cobra.Command {
	var f taskInputFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			if strings.TrimSpace(f.title) == "" && app.interactive() {
				if err := runAddForm(&f); err != nil {
					return err
				}
			}
			if err := f.validate(); err != nil {
				return err
			}

			priority, _ := domain.ParsePriority(f.priority)
			if f.priority == "" && f.suggest && strings.TrimSpace(f.title) != "" {
				stop := app.startSpinner(cmd, "Suggesting priority...")
				priority = app.Advisor.SuggestPriority(ctx, f.title, f.description)
				stop()
				fmt.Fprintf(cmd.OutOrStdout(), "AI suggests %s\n", formatter.PriorityPill(priority))
			}

			t, err := app.Store.Add(ctx, store.TaskInput{
				Title:       f.title,
				Description: f.description,
				Priority:    priority,
				Category:    f.category,
			})
			if errors.Is(err, store.ErrEmptyTitle) {
				return fmt.Errorf("--title is required: %w", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", formatter.Bold(t.Title), formatter.ShortID(t.ID))
			return nil
		},
	}

	bindTaskInputFlags(cmd.Flags(), &f)
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle ID",
		Aliases: []string{"done"},
		Short:   "Mark a task completed, or pending again",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Store.ToggleCompleted(commandContext(cmd), t.ID); err != nil {
				return err
			}

			if t.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s\n", formatter.Bold(t.Title))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("Completed"), formatter.Bold(t.Title))
			}
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Store.Delete(commandContext(cmd), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", formatter.Bold(t.Title))
			return nil
		},
	}
}

func newSubTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Work with sub-tasks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle TASK SUBTASK",
		Short: "Mark a sub-task completed, or pending again",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			st, err := resolveSubTask(t, args[1])
			if err != nil {
				return err
			}
			if _, err := app.Store.ToggleSubTask(commandContext(cmd), t.ID, st.ID); err != nil {
				return err
			}

			updated, ok := app.Store.Get(t.ID)
			if !ok {
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubTasks(updated.SubTasks, "  "))
			return nil
		},
	})

	return cmd
}
