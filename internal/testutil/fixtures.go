package testutil

import (
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/google/uuid"
)

// BaseTime anchors fixture windows so tests read in calendar terms.
var BaseTime = time.Date(2023, 1, 15, 8, 0, 0, 0, time.UTC)

var TestActor = domain.Actor{ID: "u-test", Name: "Test Planner"}

// Task options
type TaskOption func(*domain.Task)

func WithWindow(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.PlannedStart = start
		t.PlannedEnd = end
	}
}

func WithOrderID(id string) TaskOption {
	return func(t *domain.Task) {
		t.OrderID = id
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p int) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithPredecessors(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.PredecessorIDs = ids
	}
}

// NewTestTask returns a Planned task spanning BaseTime to BaseTime+8h.
func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:                   uuid.New().String(),
		OrderID:              "order-1",
		Title:                title,
		Type:                 "Assembly",
		Priority:             domain.DefaultTaskPriority,
		Status:               domain.TaskPlanned,
		EstimatedDurationMin: 480,
		PlannedStart:         BaseTime,
		PlannedEnd:           BaseTime.Add(8 * time.Hour),
		CreatedAt:            BaseTime.Add(-24 * time.Hour),
		CreatedBy:            TestActor,
		Version:              1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resource options
type ResourceOption func(*domain.Resource)

func WithResourceType(rt domain.ResourceType) ResourceOption {
	return func(r *domain.Resource) {
		r.Type = rt
	}
}

func WithDepartment(d string) ResourceOption {
	return func(r *domain.Resource) {
		r.Department = d
	}
}

func WithInactive() ResourceOption {
	return func(r *domain.Resource) {
		r.IsActive = false
	}
}

func NewTestResource(name string, opts ...ResourceOption) *domain.Resource {
	r := &domain.Resource{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       domain.ResourceMachine,
		Department: "Fabrication",
		IsActive:   true,
		CreatedAt:  BaseTime.Add(-48 * time.Hour),
		UpdatedAt:  BaseTime.Add(-48 * time.Hour),
		Version:    1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Assignment options
type AssignmentOption func(*domain.Assignment)

func WithAllocation(pct float64) AssignmentOption {
	return func(a *domain.Assignment) {
		a.AllocationPct = pct
	}
}

func WithAssignmentWindow(start, end time.Time) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Start = start
		a.End = end
	}
}

// NewTestAssignment books the resource for the task's planned window at 100%.
func NewTestAssignment(task *domain.Task, resourceID string, opts ...AssignmentOption) *domain.Assignment {
	a := &domain.Assignment{
		ID:            uuid.New().String(),
		TaskID:        task.ID,
		ResourceID:    resourceID,
		Start:         task.PlannedStart,
		End:           task.PlannedEnd,
		AllocationPct: domain.DefaultAllocationPct,
		CreatedAt:     BaseTime.Add(-24 * time.Hour),
		CreatedBy:     TestActor,
		Version:       1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
