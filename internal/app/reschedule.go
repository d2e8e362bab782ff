package app

import (
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
)

type RescheduleRequest struct {
	TaskID   string    `json:"taskId"`
	NewStart time.Time `json:"newStartTime"`
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
}

func (r RescheduleRequest) Actor() domain.Actor {
	return NewActor(r.UserID, r.UserName)
}

type RescheduleResponse struct {
	Task         *domain.Task         `json:"task"`
	Assignments  []*domain.Assignment `json:"assignments"`
	Delta        time.Duration        `json:"-"`
	HasConflicts bool                 `json:"hasConflicts"`
	Conflicts    []domain.Conflict    `json:"conflicts"`
}

type StatusUpdateRequest struct {
	TaskID        string `json:"taskId"`
	Status        string `json:"status"`
	CompletionPct int    `json:"completionPercentage"`
	UserID        string `json:"userId"`
	UserName      string `json:"userName"`
}

func (r StatusUpdateRequest) Actor() domain.Actor {
	return NewActor(r.UserID, r.UserName)
}

// TaskDetail is a task together with its resource bookings.
type TaskDetail struct {
	Task        *domain.Task         `json:"task"`
	Assignments []*domain.Assignment `json:"assignments"`
}
