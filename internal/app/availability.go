package app

import "time"

// DateLayout keys per-day load maps.
const DateLayout = "2006-01-02"

// DayLoad is one resource's booked fraction of a nominal workday. Load is
// capped at 1.0; Raw keeps the uncapped sum so overbooking stays visible.
type DayLoad struct {
	Date string  `json:"date"`
	Load float64 `json:"load"`
	Raw  float64 `json:"raw"`
}

type TimeSlot struct {
	Start         time.Time `json:"startTime"`
	End           time.Time `json:"endTime"`
	TaskID        string    `json:"taskId"`
	TaskTitle     string    `json:"taskTitle"`
	AllocationPct float64   `json:"allocationPercentage"`
}

type ResourceAvailability struct {
	ResourceID   string     `json:"resourceId"`
	ResourceName string     `json:"resourceName"`
	Slots        []TimeSlot `json:"bookedSlots"`
}
