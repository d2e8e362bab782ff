package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prodsched/internal/cli/formatter"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/spf13/cobra"

	schedapp "github.com/alexanderramin/prodsched/internal/app"
)

func newAssignCmd(app *App) *cobra.Command {
	var (
		start, end time.Time
		alloc      float64
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "assign TASK RESOURCE",
		Short: "Book a resource onto a task (re-running updates the booking)",
		Long: `Book a resource onto a task. The booking window defaults to the task's
planned window. Overlapping bookings above 100% are reported as conflicts
but never rejected.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := resolveResource(ctx, app, args[1])
			if err != nil {
				return err
			}
			if start.IsZero() || end.IsZero() {
				task, err := app.Tasks.GetByID(ctx, taskID)
				if err != nil {
					return err
				}
				if start.IsZero() {
					start = task.PlannedStart
				}
				if end.IsZero() {
					end = task.PlannedEnd
				}
			}

			actor := app.actor()
			resp, err := app.Assignments.AssignResource(ctx, schedapp.AssignResourceRequest{
				TaskID:        taskID,
				ResourceID:    res.ID,
				Start:         start,
				End:           end,
				AllocationPct: &alloc,
				Notes:         notes,
				UserID:        actor.ID,
				UserName:      actor.Name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAssignResult(resp, res.Name))
			return nil
		},
	}

	timeVar(cmd.Flags(), &start, "start", "Booking start (defaults to the task's planned start)")
	timeVar(cmd.Flags(), &end, "end", "Booking end (defaults to the task's planned end)")
	cmd.Flags().Float64Var(&alloc, "alloc", domain.DefaultAllocationPct, "Allocation percentage (0-100)")
	cmd.Flags().StringVar(&notes, "notes", "", "Booking notes")

	return cmd
}

func newUnassignCmd(app *App) *cobra.Command {
	var assignmentID string

	cmd := &cobra.Command{
		Use:   "unassign [TASK RESOURCE]",
		Short: "Remove a resource booking by task and resource, or by --id",
		Args: func(cmd *cobra.Command, args []string) error {
			if assignmentID != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if assignmentID != "" {
				if err := app.Assignments.RemoveResourceFromTask(ctx, assignmentID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed assignment %s\n", assignmentID)
				return nil
			}

			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := resolveResource(ctx, app, args[1])
			if err != nil {
				return err
			}
			if _, err := app.Assignments.UnassignResource(ctx, taskID, res.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unassigned %s from task %s\n", formatter.Bold(res.Name), taskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&assignmentID, "id", "", "Assignment id to remove")

	return cmd
}

func newConflictsCmd(app *App) *cobra.Command {
	var (
		task     string
		from, to time.Time
	)

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Report over-allocated resources for one task or a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var conflicts []domain.Conflict
			switch {
			case task != "":
				taskID, err := resolveTaskID(ctx, app, task)
				if err != nil {
					return err
				}
				if conflicts, err = app.Conflicts.DetectConflicts(ctx, taskID); err != nil {
					return err
				}
			case !from.IsZero():
				var err error
				if conflicts, err = app.Conflicts.ScanConflicts(ctx, from, to); err != nil {
					return err
				}
			default:
				return fmt.Errorf("either --task or --from/--to is required")
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatConflicts(conflicts))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Task id to check")
	timeVar(cmd.Flags(), &from, "from", "Range start")
	timeVar(cmd.Flags(), &to, "to", "Range end")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsMutuallyExclusive("task", "from")

	return cmd
}

func newRescheduleCmd(app *App) *cobra.Command {
	var start time.Time

	cmd := &cobra.Command{
		Use:   "reschedule TASK",
		Short: "Move a task and its bookings to a new start, keeping durations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			actor := app.actor()
			resp, err := app.Reschedule.RescheduleTask(ctx, schedapp.RescheduleRequest{
				TaskID:   taskID,
				NewStart: start,
				UserID:   actor.ID,
				UserName: actor.Name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReschedule(resp))
			return nil
		},
	}

	timeVar(cmd.Flags(), &start, "start", "New planned start")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
