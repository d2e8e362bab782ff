package domain

import (
	"strings"
	"time"
)

type Resource struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         ResourceType `json:"resourceType"`
	Department   string       `json:"department"`
	Capacity     *float64     `json:"capacity,omitempty"`
	CostPerHour  *float64     `json:"costPerHour,omitempty"`
	Capabilities string       `json:"capabilities"`
	IsActive     bool         `json:"isActive"`
	WorkingHours string       `json:"workingHours"` // e.g. "08:00-16:00"
	DaysOff      string       `json:"daysOff"`      // e.g. "Saturday,Sunday"
	Notes        string       `json:"notes"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Version      int          `json:"version"`
}

func (r *Resource) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalidf("resource name is required")
	}
	if _, err := ParseResourceType(string(r.Type)); err != nil {
		return err
	}
	if r.Capacity != nil && *r.Capacity < 0 {
		return invalidf("capacity must not be negative")
	}
	if r.CostPerHour != nil && *r.CostPerHour < 0 {
		return invalidf("cost per hour must not be negative")
	}
	return nil
}

// DeleteOutcome tells the caller what DeleteResource actually did.
type DeleteOutcome string

const (
	ResourceDeleted     DeleteOutcome = "deleted"
	ResourceDeactivated DeleteOutcome = "deactivated"
)
