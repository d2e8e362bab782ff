package scheduler

import (
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
)

// ShiftPlan moves a task to start at newStart and shifts every one of its
// assignments by the same delta, so each keeps its duration and its offset
// from the task. It mutates its arguments and returns the delta applied.
func ShiftPlan(task *domain.Task, assignments []*domain.Assignment, newStart time.Time) time.Duration {
	delta := task.MoveTo(newStart)
	for _, a := range assignments {
		a.Shift(delta)
	}
	return delta
}
