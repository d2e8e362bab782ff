package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(q db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: q}
}

const assignmentColumns = `a.id, a.task_id, a.resource_id, a.start_time, a.end_time, a.allocation_pct,
	a.notes, a.created_at, a.created_by_id, a.created_by_name, a.version`

const bookingSelect = `SELECT ` + assignmentColumns + `, t.title, t.status, r.name
	FROM task_resource_assignments a
	JOIN production_tasks t ON t.id = a.task_id
	JOIN resources r ON r.id = a.resource_id`

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	if a.Version == 0 {
		a.Version = 1
	}
	query := `INSERT INTO task_resource_assignments
		(id, task_id, resource_id, start_time, end_time, allocation_pct, notes,
		 created_at, created_by_id, created_by_name, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.TaskID,
		a.ResourceID,
		formatTime(a.Start),
		formatTime(a.End),
		a.AllocationPct,
		a.Notes,
		formatTime(a.CreatedAt),
		a.CreatedBy.ID,
		a.CreatedBy.Name,
		a.Version,
	)
	if err != nil {
		return writeErr("inserting assignment", err, true)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM task_resource_assignments a WHERE a.id = ?`
	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) GetByPair(ctx context.Context, taskID, resourceID string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM task_resource_assignments a
		WHERE a.task_id = ? AND a.resource_id = ?`
	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, taskID, resourceID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assignment of resource %s to task %s: %w", resourceID, taskID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM task_resource_assignments a
		WHERE a.task_id = ? ORDER BY a.start_time, a.id`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

// ListOverlapping follows domain.Window.Overlaps: empty windows, queried or
// stored, match nothing.
func (r *SQLiteAssignmentRepo) ListOverlapping(ctx context.Context, resourceID string, w domain.Window, excludeTaskID string) ([]domain.Booking, error) {
	if w.IsEmpty() {
		return nil, nil
	}
	query := bookingSelect + `
		WHERE a.resource_id = ? AND a.task_id <> ?
		  AND a.start_time < ? AND a.end_time > ? AND a.end_time > a.start_time
		ORDER BY a.start_time, a.id`
	return r.queryBookings(ctx, query, resourceID, excludeTaskID, formatTime(w.End), formatTime(w.Start))
}

func (r *SQLiteAssignmentRepo) ListInRange(ctx context.Context, w domain.Window, resourceID string) ([]domain.Booking, error) {
	if w.IsEmpty() {
		return nil, nil
	}
	if resourceID != "" {
		query := bookingSelect + `
			WHERE a.resource_id = ? AND a.start_time < ? AND a.end_time > ? AND a.end_time > a.start_time
			ORDER BY a.resource_id, a.start_time, a.id`
		return r.queryBookings(ctx, query, resourceID, formatTime(w.End), formatTime(w.Start))
	}
	query := bookingSelect + `
		WHERE a.start_time < ? AND a.end_time > ? AND a.end_time > a.start_time
		ORDER BY a.resource_id, a.start_time, a.id`
	return r.queryBookings(ctx, query, formatTime(w.End), formatTime(w.Start))
}

func (r *SQLiteAssignmentRepo) CountByResource(ctx context.Context, resourceID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM task_resource_assignments WHERE resource_id = ?`, resourceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting assignments: %w", err)
	}
	return n, nil
}

func (r *SQLiteAssignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	query := `UPDATE task_resource_assignments SET start_time = ?, end_time = ?, allocation_pct = ?,
		notes = ?, version = version + 1
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		formatTime(a.Start),
		formatTime(a.End),
		a.AllocationPct,
		a.Notes,
		a.ID,
		a.Version,
	)
	if err != nil {
		return writeErr("updating assignment", err, false)
	}
	if err := checkVersionedWrite(ctx, r.db, res, "task_resource_assignments", "assignment", a.ID); err != nil {
		return err
	}
	a.Version++
	return nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_resource_assignments WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting assignment", err, false)
	}
	return checkDeleted(res, "assignment", id)
}

func (r *SQLiteAssignmentRepo) DeleteByPair(ctx context.Context, taskID, resourceID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM task_resource_assignments WHERE task_id = ? AND resource_id = ?`, taskID, resourceID)
	if err != nil {
		return writeErr("deleting assignment", err, false)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking assignment delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("assignment of resource %s to task %s: %w", resourceID, taskID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var status string
		a, err := scanAssignment(rows, &b.TaskTitle, &status, &b.ResourceName)
		if err != nil {
			return nil, err
		}
		b.Assignment = *a
		b.TaskStatus = domain.TaskStatus(status)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}
	return out, nil
}

// scanAssignment scans the assignment columns followed by any extra
// destinations selected after them.
func scanAssignment(s scanner, extra ...any) (*domain.Assignment, error) {
	var a domain.Assignment
	var start, end, createdAt string

	dest := []any{&a.ID, &a.TaskID, &a.ResourceID, &start, &end, &a.AllocationPct,
		&a.Notes, &createdAt, &a.CreatedBy.ID, &a.CreatedBy.Name, &a.Version}
	err := s.Scan(append(dest, extra...)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}

	if a.Start, err = parseTime(start); err != nil {
		return nil, err
	}
	if a.End, err = parseTime(end); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}
