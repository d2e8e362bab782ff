package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlanImport is the top-level JSON structure for a schedule import. Rows
// refer to each other by ref; real ids are assigned on conversion.
type PlanImport struct {
	Resources   []ResourceImport   `json:"resources"`
	Tasks       []TaskImport       `json:"tasks"`
	Assignments []AssignmentImport `json:"assignments,omitempty"`
}

type ResourceImport struct {
	Ref          string   `json:"ref"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Department   string   `json:"department,omitempty"`
	Capacity     *float64 `json:"capacity,omitempty"`
	CostPerHour  *float64 `json:"cost_per_hour,omitempty"`
	Capabilities string   `json:"capabilities,omitempty"`
	WorkingHours string   `json:"working_hours,omitempty"`
	DaysOff      string   `json:"days_off,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

type TaskImport struct {
	Ref             string   `json:"ref"`
	OrderID         string   `json:"order_id,omitempty"`
	Title           string   `json:"title"`
	Type            string   `json:"type,omitempty"`
	Priority        *int     `json:"priority,omitempty"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	EstimatedMin    *int     `json:"estimated_min,omitempty"`
	PredecessorRefs []string `json:"after,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// AssignmentImport books a resource onto a task. Start and End default to
// the task's window.
type AssignmentImport struct {
	TaskRef       string   `json:"task_ref"`
	ResourceRef   string   `json:"resource_ref"`
	Start         string   `json:"start,omitempty"`
	End           string   `json:"end,omitempty"`
	AllocationPct *float64 `json:"allocation_pct,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// LoadPlan reads and parses a schedule import JSON file.
func LoadPlan(path string) (*PlanImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan PlanImport
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &plan, nil
}
