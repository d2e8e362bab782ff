package app

import (
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
)

// AssignResourceRequest books a resource onto a task. Re-sending it for a
// pair that is already booked updates that booking in place.
type AssignResourceRequest struct {
	TaskID        string    `json:"taskId"`
	ResourceID    string    `json:"resourceId"`
	Start         time.Time `json:"startTime"`
	End           time.Time `json:"endTime"`
	AllocationPct *float64  `json:"allocationPercentage,omitempty"`
	Notes         string    `json:"notes"`
	UserID        string    `json:"userId"`
	UserName      string    `json:"userName"`
}

// Allocation returns the requested allocation, defaulting to 100%.
func (r AssignResourceRequest) Allocation() float64 {
	if r.AllocationPct == nil {
		return domain.DefaultAllocationPct
	}
	return *r.AllocationPct
}

func (r AssignResourceRequest) Actor() domain.Actor {
	return NewActor(r.UserID, r.UserName)
}

type AssignResourceResponse struct {
	Assignment   *domain.Assignment `json:"assignment"`
	Created      bool               `json:"created"`
	HasConflicts bool               `json:"hasConflicts"`
	Conflicts    []domain.Conflict  `json:"conflicts"`
}

type ResourceDeletion struct {
	ResourceID string               `json:"resourceId"`
	Outcome    domain.DeleteOutcome `json:"outcome"`
}

// NewActor builds the acting user from request fields. No identity at
// all means the system actor; a missing name falls back to the id.
func NewActor(id, name string) domain.Actor {
	a := domain.Actor{ID: id, Name: name}
	if a.IsZero() {
		return domain.SystemActor
	}
	if a.Name == "" {
		a.Name = a.ID
	}
	return a
}

// ImportResult summarizes a bulk schedule import.
type ImportResult struct {
	ResourceIDs  map[string]string `json:"resourceIds"`
	TaskIDs      map[string]string `json:"taskIds"`
	Assignments  int               `json:"assignments"`
	HasConflicts bool              `json:"hasConflicts"`
	Conflicts    []domain.Conflict `json:"conflicts"`
}
