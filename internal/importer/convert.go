package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/google/uuid"
)

// Plan is a converted import, ready for persistence.
type Plan struct {
	Resources   []*domain.Resource
	Tasks       []*domain.Task
	Assignments []*domain.Assignment
}

// Convert turns a validated PlanImport into domain objects with fresh ids.
// Call ValidatePlan first; Convert assumes the plan is valid.
func Convert(plan *PlanImport, actor domain.Actor, now time.Time) (*Plan, error) {
	now = now.UTC()
	out := &Plan{}

	resourceIDs := make(map[string]string, len(plan.Resources))
	for _, r := range plan.Resources {
		rt, err := domain.ParseResourceType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", r.Ref, err)
		}
		res := &domain.Resource{
			ID:           uuid.New().String(),
			Name:         r.Name,
			Type:         rt,
			Department:   r.Department,
			Capacity:     r.Capacity,
			CostPerHour:  r.CostPerHour,
			Capabilities: r.Capabilities,
			IsActive:     true,
			WorkingHours: r.WorkingHours,
			DaysOff:      r.DaysOff,
			Notes:        r.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
			Version:      1,
		}
		resourceIDs[r.Ref] = res.ID
		out.Resources = append(out.Resources, res)
	}

	// Ids first, so predecessors can point forward.
	taskIDs := make(map[string]string, len(plan.Tasks))
	for _, t := range plan.Tasks {
		taskIDs[t.Ref] = uuid.New().String()
	}

	tasksByRef := make(map[string]*domain.Task, len(plan.Tasks))
	for _, t := range plan.Tasks {
		start, err := app.ParseTime(t.Start)
		if err != nil {
			return nil, fmt.Errorf("task %q start: %w", t.Ref, err)
		}
		end, err := app.ParseTime(t.End)
		if err != nil {
			return nil, fmt.Errorf("task %q end: %w", t.Ref, err)
		}

		priority := domain.DefaultTaskPriority
		if t.Priority != nil {
			priority = *t.Priority
		}
		estimate := int(end.Sub(start).Minutes())
		if t.EstimatedMin != nil {
			estimate = *t.EstimatedMin
		}

		var preds []string
		for _, ref := range t.PredecessorRefs {
			id, ok := taskIDs[ref]
			if !ok {
				return nil, fmt.Errorf("task %q: predecessor ref %q not found", t.Ref, ref)
			}
			preds = append(preds, id)
		}

		task := &domain.Task{
			ID:                   taskIDs[t.Ref],
			OrderID:              t.OrderID,
			Title:                t.Title,
			Type:                 t.Type,
			Priority:             priority,
			Status:               domain.TaskPlanned,
			EstimatedDurationMin: estimate,
			PlannedStart:         start,
			PlannedEnd:           end,
			PredecessorIDs:       preds,
			Notes:                t.Notes,
			CreatedAt:            now,
			CreatedBy:            actor,
			Version:              1,
		}
		tasksByRef[t.Ref] = task
		out.Tasks = append(out.Tasks, task)
	}

	for _, a := range plan.Assignments {
		task, ok := tasksByRef[a.TaskRef]
		if !ok {
			return nil, fmt.Errorf("task_ref %q not found", a.TaskRef)
		}
		resourceID, ok := resourceIDs[a.ResourceRef]
		if !ok {
			return nil, fmt.Errorf("resource_ref %q not found", a.ResourceRef)
		}

		start, end := task.PlannedStart, task.PlannedEnd
		if a.Start != "" {
			t, err := app.ParseTime(a.Start)
			if err != nil {
				return nil, err
			}
			start = t
		}
		if a.End != "" {
			t, err := app.ParseTime(a.End)
			if err != nil {
				return nil, err
			}
			end = t
		}
		alloc := domain.DefaultAllocationPct
		if a.AllocationPct != nil {
			alloc = *a.AllocationPct
		}

		out.Assignments = append(out.Assignments, &domain.Assignment{
			ID:            uuid.New().String(),
			TaskID:        task.ID,
			ResourceID:    resourceID,
			Start:         start,
			End:           end,
			AllocationPct: alloc,
			Notes:         a.Notes,
			CreatedAt:     now,
			CreatedBy:     actor,
			Version:       1,
		})
	}

	return out, nil
}
