package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultTaskPriority = 3

type Task struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"orderId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"taskType"`
	Priority    int        `json:"priority"`
	Status      TaskStatus `json:"status"`

	EstimatedDurationMin int  `json:"estimatedDuration"`
	ActualDurationMin    *int `json:"actualDuration,omitempty"`

	PlannedStart time.Time  `json:"plannedStartTime"`
	PlannedEnd   time.Time  `json:"plannedEndTime"`
	ActualStart  *time.Time `json:"actualStartTime,omitempty"`
	ActualEnd    *time.Time `json:"actualEndTime,omitempty"`

	PredecessorIDs []string `json:"predecessorTaskIds"`
	CompletionPct  int      `json:"completionPercentage"`
	Notes          string   `json:"notes"`

	CreatedAt time.Time  `json:"createdAt"`
	CreatedBy Actor      `json:"createdBy"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy *Actor     `json:"updatedBy,omitempty"`

	// Version is bumped by the store on every update and checked on write.
	Version int `json:"version"`
}

func (t *Task) PlannedWindow() Window {
	return Window{Start: t.PlannedStart, End: t.PlannedEnd}
}

// Validate checks the field-level invariants of a task. Predecessor
// existence is checked by the service, which has store access.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return invalidf("task title is required")
	}
	if t.Priority < 1 || t.Priority > 5 {
		return invalidf("priority %d outside 1-5", t.Priority)
	}
	if t.CompletionPct < 0 || t.CompletionPct > 100 {
		return invalidf("completion %d%% outside 0-100", t.CompletionPct)
	}
	if t.EstimatedDurationMin < 0 {
		return invalidf("estimated duration must not be negative")
	}
	if err := ValidateWindow(t.PlannedStart, t.PlannedEnd); err != nil {
		return err
	}
	for _, id := range t.PredecessorIDs {
		if id == t.ID {
			return invalidf("task %s cannot be its own predecessor", id)
		}
		if _, err := uuid.Parse(id); err != nil {
			return invalidf("malformed predecessor id %q", id)
		}
	}
	return nil
}

// Touch stamps the update audit fields.
func (t *Task) Touch(actor Actor, now time.Time) {
	t.UpdatedAt = &now
	t.UpdatedBy = &actor
}

// MoveTo reschedules the planned window to start at newStart, keeping its
// duration, and returns the applied delta.
func (t *Task) MoveTo(newStart time.Time) time.Duration {
	delta := newStart.Sub(t.PlannedStart)
	w := t.PlannedWindow().Shift(delta)
	t.PlannedStart, t.PlannedEnd = w.Start, w.End
	return delta
}

// TransitionTo applies a status/progress change. Entering InProgress stamps
// the actual start once; Completed stamps the actual end, derives the actual
// duration and forces completion to 100.
func (t *Task) TransitionTo(next TaskStatus, completionPct int, actor Actor, now time.Time) error {
	if !t.Status.CanTransition(next) {
		return invalidf("cannot move task from %s to %s", t.Status, next)
	}
	if completionPct < 0 || completionPct > 100 {
		return invalidf("completion %d%% outside 0-100", completionPct)
	}

	t.Status = next
	t.CompletionPct = completionPct

	if next == TaskInProgress && t.ActualStart == nil {
		start := now
		t.ActualStart = &start
	}
	if next == TaskCompleted {
		if t.ActualEnd == nil {
			end := now
			t.ActualEnd = &end
		}
		if t.ActualStart != nil {
			mins := int(math.Round(t.ActualEnd.Sub(*t.ActualStart).Minutes()))
			t.ActualDurationMin = &mins
		}
		t.CompletionPct = 100
	}

	t.Touch(actor, now)
	return nil
}

// ParsePredecessorIDs splits the stored comma-separated list. Blank input
// yields no ids; an empty segment or a non-UUID id is malformed.
func ParsePredecessorIDs(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		id := strings.TrimSpace(p)
		if id == "" {
			return nil, invalidf("malformed predecessor list %q", raw)
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, invalidf("malformed predecessor id %q", id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func FormatPredecessorIDs(ids []string) string {
	return strings.Join(ids, ",")
}
