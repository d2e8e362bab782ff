package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
)

// ValidatePlan checks the whole file before anything is converted and
// returns every problem found, not just the first.
func ValidatePlan(plan *PlanImport) []error {
	var errs []error

	resourceRefs := make(map[string]bool)
	errs = append(errs, validateResources(plan.Resources, resourceRefs)...)

	taskWindows := make(map[string]domain.Window)
	errs = append(errs, validateTasks(plan.Tasks, taskWindows)...)

	errs = append(errs, validateAssignments(plan.Assignments, resourceRefs, taskWindows)...)

	return errs
}

func validateResources(resources []ResourceImport, refs map[string]bool) []error {
	var errs []error

	for i, r := range resources {
		prefix := fmt.Sprintf("resources[%d]", i)

		if r.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[r.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, r.Ref))
		} else {
			refs[r.Ref] = true
		}

		if r.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if _, err := domain.ParseResourceType(r.Type); err != nil {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, r.Type))
		}
		if r.Capacity != nil && *r.Capacity < 0 {
			errs = append(errs, fmt.Errorf("%s.capacity must not be negative", prefix))
		}
		if r.CostPerHour != nil && *r.CostPerHour < 0 {
			errs = append(errs, fmt.Errorf("%s.cost_per_hour must not be negative", prefix))
		}
	}

	return errs
}

func validateTasks(tasks []TaskImport, windows map[string]domain.Window) []error {
	var errs []error
	refs := make(map[string]bool)

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			refs[t.Ref] = true
		}

		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if t.Priority != nil && (*t.Priority < 1 || *t.Priority > 5) {
			errs = append(errs, fmt.Errorf("%s.priority %d outside 1-5", prefix, *t.Priority))
		}
		if t.EstimatedMin != nil && *t.EstimatedMin < 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_min must not be negative", prefix))
		}

		start, startErr := parseRequiredTime(prefix+".start", t.Start)
		end, endErr := parseRequiredTime(prefix+".end", t.End)
		errs = appendIf(errs, startErr, endErr)
		if startErr == nil && endErr == nil {
			if !end.After(start) {
				errs = append(errs, fmt.Errorf("%s: end %q must be after start %q", prefix, t.End, t.Start))
			} else if t.Ref != "" {
				windows[t.Ref] = domain.Window{Start: start, End: end}
			}
		}
	}

	// Predecessors may point forward in the list, so they are checked once
	// every ref is known.
	for i, t := range tasks {
		for _, ref := range t.PredecessorRefs {
			switch {
			case ref == t.Ref:
				errs = append(errs, fmt.Errorf("tasks[%d].after: task %q cannot follow itself", i, ref))
			case !refs[ref]:
				errs = append(errs, fmt.Errorf("tasks[%d].after: ref %q not found in tasks", i, ref))
			}
		}
	}

	return errs
}

func validateAssignments(assignments []AssignmentImport, resourceRefs map[string]bool, taskWindows map[string]domain.Window) []error {
	var errs []error
	pairs := make(map[[2]string]bool)

	for i, a := range assignments {
		prefix := fmt.Sprintf("assignments[%d]", i)

		window, taskOK := taskWindows[a.TaskRef]
		if a.TaskRef == "" {
			errs = append(errs, fmt.Errorf("%s.task_ref is required", prefix))
		} else if !taskOK {
			errs = append(errs, fmt.Errorf("%s.task_ref: ref %q not found in tasks", prefix, a.TaskRef))
		}
		if a.ResourceRef == "" {
			errs = append(errs, fmt.Errorf("%s.resource_ref is required", prefix))
		} else if !resourceRefs[a.ResourceRef] {
			errs = append(errs, fmt.Errorf("%s.resource_ref: ref %q not found in resources", prefix, a.ResourceRef))
		}

		pair := [2]string{a.TaskRef, a.ResourceRef}
		if pairs[pair] {
			errs = append(errs, fmt.Errorf("%s: resource %q is already assigned to task %q", prefix, a.ResourceRef, a.TaskRef))
		}
		pairs[pair] = true

		if a.AllocationPct != nil {
			if err := domain.ValidateAllocation(*a.AllocationPct); err != nil {
				errs = append(errs, fmt.Errorf("%s.allocation_pct: %w", prefix, err))
			}
		}

		start, startErr := parseOptionalTime(prefix+".start", a.Start, window.Start)
		end, endErr := parseOptionalTime(prefix+".end", a.End, window.End)
		errs = appendIf(errs, startErr, endErr)
		if startErr == nil && endErr == nil && taskOK && !end.After(start) {
			errs = append(errs, fmt.Errorf("%s: end must be after start", prefix))
		}
	}

	return errs
}

func parseRequiredTime(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := app.ParseTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid time %q", field, raw)
	}
	return t, nil
}

func parseOptionalTime(field, raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	return parseRequiredTime(field, raw)
}

func appendIf(errs []error, candidates ...error) []error {
	for _, err := range candidates {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
