package domain

// Booking is an assignment joined with the names of the task and resource
// it links. Conflict reports and load views work on bookings.
type Booking struct {
	Assignment   Assignment
	TaskTitle    string
	TaskStatus   TaskStatus
	ResourceName string
}
