package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/alexanderramin/prodsched/internal/scheduler"
)

// maxLoadDays bounds one load query; a day entry is built per calendar day.
const maxLoadDays = 366

type availabilityService struct {
	resources    repository.ResourceRepo
	assignments  repository.AssignmentRepo
	workdayHours float64
}

// NewAvailabilityService measures load against workdayHours per day; a
// non-positive value means scheduler.NominalWorkdayHours.
func NewAvailabilityService(resources repository.ResourceRepo, assignments repository.AssignmentRepo, workdayHours float64) AvailabilityService {
	if workdayHours <= 0 {
		workdayHours = scheduler.NominalWorkdayHours
	}
	return &availabilityService{resources: resources, assignments: assignments, workdayHours: workdayHours}
}

func (s *availabilityService) GetResourceLoad(ctx context.Context, resourceID string, from, to time.Time) (map[string]float64, error) {
	days, err := s.GetResourceLoadDetail(ctx, resourceID, from, to)
	if err != nil {
		return nil, err
	}
	return scheduler.LoadMap(days), nil
}

func (s *availabilityService) GetResourceLoadDetail(ctx context.Context, resourceID string, from, to time.Time) ([]app.DayLoad, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
	}
	if days := dayStart(to).Sub(dayStart(from)).Hours()/24 + 1; days > maxLoadDays {
		return nil, fmt.Errorf("%w: load range spans %.0f days, at most %d allowed", domain.ErrInvalidInput, days, maxLoadDays)
	}
	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	first := dayStart(from)
	span := domain.Window{Start: first, End: dayStart(to).AddDate(0, 0, 1)}
	bookings, err := s.assignments.ListInRange(ctx, span, resourceID)
	if err != nil {
		return nil, err
	}
	assignments := make([]domain.Assignment, len(bookings))
	for i, b := range bookings {
		assignments[i] = b.Assignment
	}
	return scheduler.DailyLoad(assignments, from, to, s.workdayHours), nil
}

func (s *availabilityService) GetAvailableResources(ctx context.Context, start, end time.Time) ([]*domain.Resource, error) {
	if err := domain.ValidateWindow(start, end); err != nil {
		return nil, err
	}
	resources, err := s.resources.List(ctx, true)
	if err != nil {
		return nil, err
	}
	bookings, err := s.assignments.ListInRange(ctx, domain.Window{Start: start, End: end}, "")
	if err != nil {
		return nil, err
	}
	return scheduler.AvailableResources(resources, bookings), nil
}

func (s *availabilityService) GetResourceAvailability(ctx context.Context, from, to time.Time, resourceID string) ([]app.ResourceAvailability, error) {
	if err := domain.ValidateWindow(from, to); err != nil {
		return nil, err
	}
	var resources []*domain.Resource
	if resourceID != "" {
		r, err := s.resources.GetByID(ctx, resourceID)
		if err != nil {
			return nil, err
		}
		resources = []*domain.Resource{r}
	} else {
		var err error
		if resources, err = s.resources.List(ctx, true); err != nil {
			return nil, err
		}
	}
	bookings, err := s.assignments.ListInRange(ctx, domain.Window{Start: from, End: to}, resourceID)
	if err != nil {
		return nil, err
	}
	return scheduler.GroupSlots(resources, bookings), nil
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
