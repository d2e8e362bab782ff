package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prodsched/internal/cli/formatter"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/spf13/cobra"

	schedapp "github.com/alexanderramin/prodsched/internal/app"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage production tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskEditCmd(app),
		newTaskStatusCmd(app),
		newTaskRemoveCmd(app),
		newTaskCalendarCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		title, orderID, taskType, notes string
		priority, estimateMin           int
		start, end                      time.Time
		after                           []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a production task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			predecessors := make([]string, 0, len(after))
			for _, ref := range after {
				id, err := resolveTaskID(ctx, app, ref)
				if err != nil {
					return err
				}
				predecessors = append(predecessors, id)
			}
			if estimateMin == 0 && end.After(start) {
				estimateMin = int(end.Sub(start).Minutes())
			}

			t := &domain.Task{
				OrderID:              orderID,
				Title:                title,
				Type:                 taskType,
				Priority:             priority,
				EstimatedDurationMin: estimateMin,
				PlannedStart:         start,
				PlannedEnd:           end,
				PredecessorIDs:       predecessors,
				Notes:                notes,
			}
			if err := app.Tasks.Create(ctx, t, app.actor()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s [%s] %s\n",
				formatter.Bold(t.Title), t.ID, formatter.FormatWindow(t.PlannedStart, t.PlannedEnd))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&orderID, "order", "", "Production order id")
	cmd.Flags().StringVar(&taskType, "type", "", "Task type (e.g. Assembly)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().IntVar(&priority, "priority", domain.DefaultTaskPriority, "Priority 1 (highest) to 5")
	cmd.Flags().IntVar(&estimateMin, "estimate", 0, "Estimated minutes (defaults to the planned window)")
	timeVar(cmd.Flags(), &start, "start", "Planned start (RFC3339 or YYYY-MM-DD HH:MM)")
	timeVar(cmd.Flags(), &end, "end", "Planned end (RFC3339 or YYYY-MM-DD HH:MM)")
	cmd.Flags().StringSliceVar(&after, "after", nil, "Predecessor task ids (repeatable or comma-separated)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var (
		from, to time.Time
		orderID  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally by order or time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := listTasks(cmd.Context(), app, orderID, from, to)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&orderID, "order", "", "Only tasks of this production order")
	timeVar(cmd.Flags(), &from, "from", "Range start")
	timeVar(cmd.Flags(), &to, "to", "Range end")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsMutuallyExclusive("order", "from")

	return cmd
}

func listTasks(ctx context.Context, app *App, orderID string, from, to time.Time) ([]*domain.Task, error) {
	switch {
	case orderID != "":
		return app.Tasks.ListByOrder(ctx, orderID)
	case !from.IsZero():
		return app.Tasks.ListInRange(ctx, from, to)
	default:
		return app.Tasks.List(ctx)
	}
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a task with its resource bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			detail, err := app.Tasks.GetDetail(ctx, taskID)
			if err != nil {
				return err
			}
			names, err := resourceNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskDetail(detail, names))
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var (
		title, orderID, taskType, notes string
		priority, estimateMin           int
		after                           []string
		clearAfter                      bool
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a task's title, order, type, priority, estimate, notes or predecessors",
		Long: `Change a task's descriptive fields. Only the flags given are applied.
Use "reschedule" to move the task and "status" to change its lifecycle state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				t.Title = title
			}
			if flags.Changed("order") {
				t.OrderID = orderID
			}
			if flags.Changed("type") {
				t.Type = taskType
			}
			if flags.Changed("notes") {
				t.Notes = notes
			}
			if flags.Changed("priority") {
				t.Priority = priority
			}
			if flags.Changed("estimate") {
				t.EstimatedDurationMin = estimateMin
			}
			if clearAfter {
				t.PredecessorIDs = nil
			}
			if flags.Changed("after") {
				predecessors := make([]string, 0, len(after))
				for _, ref := range after {
					id, err := resolveTaskID(ctx, app, ref)
					if err != nil {
						return err
					}
					predecessors = append(predecessors, id)
				}
				t.PredecessorIDs = predecessors
			}

			if err := app.Tasks.Update(ctx, t, app.actor()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s [%s]\n", formatter.Bold(t.Title), t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&orderID, "order", "", "Production order id")
	cmd.Flags().StringVar(&taskType, "type", "", "Task type")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1 (highest) to 5")
	cmd.Flags().IntVar(&estimateMin, "estimate", 0, "Estimated minutes")
	cmd.Flags().StringSliceVar(&after, "after", nil, "Replace the predecessor task ids")
	cmd.Flags().BoolVar(&clearAfter, "clear-after", false, "Remove all predecessors")
	cmd.MarkFlagsMutuallyExclusive("after", "clear-after")

	return cmd
}

func newTaskStatusCmd(app *App) *cobra.Command {
	var pct int

	cmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move a task through its lifecycle (Planned, InProgress, Completed, OnHold, Cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("pct") {
				current, err := app.Tasks.GetByID(ctx, taskID)
				if err != nil {
					return err
				}
				pct = current.CompletionPct
			}
			actor := app.actor()
			t, err := app.Tasks.UpdateStatus(ctx, schedapp.StatusUpdateRequest{
				TaskID:        taskID,
				Status:        args[1],
				CompletionPct: pct,
				UserID:        actor.ID,
				UserName:      actor.Name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (%d%%)\n",
				formatter.Bold(t.Title), formatter.StatusPill(t.Status), t.CompletionPct)
			return nil
		},
	}

	cmd.Flags().IntVar(&pct, "pct", 0, "Completion percentage (keeps the current value when omitted)")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a task and its resource bookings",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, taskID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", taskID)
			return nil
		},
	}
}

func newTaskCalendarCmd(app *App) *cobra.Command {
	var from, to time.Time

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show tasks grouped by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.ListInRange(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing scheduled.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCalendar(tasks))
			return nil
		},
	}

	timeVar(cmd.Flags(), &from, "from", "Range start")
	timeVar(cmd.Flags(), &to, "to", "Range end")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
