package domain

import "time"

const DefaultAllocationPct = 100.0

// Assignment commits a resource to a task for a window at a fraction of
// the resource's capacity.
type Assignment struct {
	ID            string    `json:"id"`
	TaskID        string    `json:"taskId"`
	ResourceID    string    `json:"resourceId"`
	Start         time.Time `json:"startTime"`
	End           time.Time `json:"endTime"`
	AllocationPct float64   `json:"allocationPercentage"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     Actor     `json:"createdBy"`
	Version       int       `json:"version"`
}

func (a *Assignment) Window() Window {
	return Window{Start: a.Start, End: a.End}
}

func (a *Assignment) Validate() error {
	if err := ValidateWindow(a.Start, a.End); err != nil {
		return err
	}
	return ValidateAllocation(a.AllocationPct)
}

// Shift moves the assignment by delta, keeping its own duration.
func (a *Assignment) Shift(delta time.Duration) {
	w := a.Window().Shift(delta)
	a.Start, a.End = w.Start, w.End
}

// FullyAllocated reports whether the assignment consumes the whole resource.
func (a *Assignment) FullyAllocated() bool {
	return a.AllocationPct >= 100
}

func ValidateAllocation(pct float64) error {
	if pct < 0 || pct > 100 {
		return invalidf("allocation %.1f%% outside 0-100", pct)
	}
	return nil
}
