package service

import (
	"database/sql"

	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/repository"
)

// Services is the full set of use cases exposed to the CLI and HTTP layers.
type Services struct {
	Tasks        TaskService
	Resources    ResourceService
	Assignments  AssignmentService
	Conflicts    ConflictService
	Reschedule   RescheduleService
	Availability AvailabilityService
	Import       ImportService
}

// NewServices wires every service against one database.
func NewServices(database *sql.DB, workdayHours float64, observers ...UseCaseObserver) *Services {
	uow := db.NewSQLiteUnitOfWork(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	resources := repository.NewSQLiteResourceRepo(database)
	assignments := repository.NewSQLiteAssignmentRepo(database)

	conflicts := NewConflictService(tasks, assignments)
	return &Services{
		Tasks:        NewTaskService(tasks, assignments, observers...),
		Resources:    NewResourceService(resources, uow, observers...),
		Assignments:  NewAssignmentService(assignments, conflicts, uow, observers...),
		Conflicts:    conflicts,
		Reschedule:   NewRescheduleService(conflicts, uow, observers...),
		Availability: NewAvailabilityService(resources, assignments, workdayHours),
		Import:       NewImportService(conflicts, uow, observers...),
	}
}
