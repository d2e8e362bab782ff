package domain

import "time"

// Conflict is an advisory finding: two tasks' assignments on one resource
// overlap and together exceed 100% allocation. It never blocks a write.
type Conflict struct {
	ResourceID           string    `json:"resourceId"`
	ResourceName         string    `json:"resourceName"`
	TaskID               string    `json:"taskId"`
	ConflictingTaskID    string    `json:"conflictingTaskId"`
	ConflictingTaskTitle string    `json:"conflictingTaskTitle"`
	Start                time.Time `json:"startTime"`
	End                  time.Time `json:"endTime"`
	TotalAllocation      float64   `json:"totalAllocation"`
}
