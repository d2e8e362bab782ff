package domain

import "strings"

type TaskStatus string

const (
	TaskPlanned    TaskStatus = "Planned"
	TaskInProgress TaskStatus = "InProgress"
	TaskCompleted  TaskStatus = "Completed"
	TaskOnHold     TaskStatus = "OnHold"
	TaskCancelled  TaskStatus = "Cancelled"
)

// TaskStatuses lists every status in lifecycle order.
var TaskStatuses = []TaskStatus{TaskPlanned, TaskInProgress, TaskCompleted, TaskOnHold, TaskCancelled}

// taskTransitions is the closed transition table. Statuses without an entry
// are terminal.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPlanned:    {TaskInProgress},
	TaskInProgress: {TaskCompleted, TaskOnHold, TaskCancelled},
	TaskOnHold:     {TaskInProgress},
}

// CanTransition reports whether a task may move from s to next. Staying in
// the same status is always allowed (progress-only update).
func (s TaskStatus) CanTransition(next TaskStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range taskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TaskStatus) IsTerminal() bool {
	_, ok := taskTransitions[s]
	return !ok
}

// ParseTaskStatus accepts the canonical names in any casing and with
// "_", "-" or " " separators ("in_progress", "In Progress", "inprogress").
func ParseTaskStatus(raw string) (TaskStatus, error) {
	key := normalizeEnum(raw)
	for _, s := range TaskStatuses {
		if normalizeEnum(string(s)) == key {
			return s, nil
		}
	}
	return "", invalidf("unknown task status %q", raw)
}

type ResourceType string

const (
	ResourceMachine ResourceType = "Machine"
	ResourcePerson  ResourceType = "Person"
	ResourceTool    ResourceType = "Tool"
	ResourceLine    ResourceType = "Line"
)

var ResourceTypes = []ResourceType{ResourceMachine, ResourcePerson, ResourceTool, ResourceLine}

func ParseResourceType(raw string) (ResourceType, error) {
	key := normalizeEnum(raw)
	for _, rt := range ResourceTypes {
		if normalizeEnum(string(rt)) == key {
			return rt, nil
		}
	}
	return "", invalidf("unknown resource type %q", raw)
}

func normalizeEnum(s string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}
