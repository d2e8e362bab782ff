package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo bound to a connection or
// transaction.
func NewSQLiteTaskRepo(q db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: q}
}

const taskColumns = `id, order_id, title, description, task_type, priority, status,
	estimated_duration, actual_duration, planned_start, planned_end, actual_start, actual_end,
	predecessor_task_ids, completion_pct, notes,
	created_at, created_by_id, created_by_name, updated_at, updated_by_id, updated_by_name, version`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	if t.Version == 0 {
		t.Version = 1
	}
	query := `INSERT INTO production_tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updatedByID, updatedByName := actorValues(t.UpdatedBy)
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.OrderID,
		t.Title,
		t.Description,
		t.Type,
		t.Priority,
		string(t.Status),
		t.EstimatedDurationMin,
		nullableIntToValue(t.ActualDurationMin),
		formatTime(t.PlannedStart),
		formatTime(t.PlannedEnd),
		nullableTimeToString(t.ActualStart),
		nullableTimeToString(t.ActualEnd),
		domain.FormatPredecessorIDs(t.PredecessorIDs),
		t.CompletionPct,
		t.Notes,
		formatTime(t.CreatedAt),
		t.CreatedBy.ID,
		t.CreatedBy.Name,
		nullableTimeToString(t.UpdatedAt),
		updatedByID,
		updatedByName,
		t.Version,
	)
	if err != nil {
		return writeErr("inserting task", err, false)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM production_tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM production_tasks ORDER BY planned_start, id`
	return r.queryTasks(ctx, query)
}

func (r *SQLiteTaskRepo) ListByOrder(ctx context.Context, orderID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM production_tasks WHERE order_id = ? ORDER BY planned_start, id`
	return r.queryTasks(ctx, query, orderID)
}

func (r *SQLiteTaskRepo) ListInRange(ctx context.Context, w domain.Window) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM production_tasks
		WHERE planned_start < ? AND planned_end > ?
		ORDER BY planned_start, id`
	return r.queryTasks(ctx, query, formatTime(w.End), formatTime(w.Start))
}

func (r *SQLiteTaskRepo) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM production_tasks WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("checking task ids: %w", err)
	}
	defer rows.Close()

	found := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning task id: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task ids: %w", err)
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE production_tasks SET order_id = ?, title = ?, description = ?, task_type = ?,
		priority = ?, status = ?, estimated_duration = ?, actual_duration = ?,
		planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?,
		predecessor_task_ids = ?, completion_pct = ?, notes = ?,
		updated_at = ?, updated_by_id = ?, updated_by_name = ?, version = version + 1
		WHERE id = ? AND version = ?`
	updatedByID, updatedByName := actorValues(t.UpdatedBy)
	res, err := r.db.ExecContext(ctx, query,
		t.OrderID,
		t.Title,
		t.Description,
		t.Type,
		t.Priority,
		string(t.Status),
		t.EstimatedDurationMin,
		nullableIntToValue(t.ActualDurationMin),
		formatTime(t.PlannedStart),
		formatTime(t.PlannedEnd),
		nullableTimeToString(t.ActualStart),
		nullableTimeToString(t.ActualEnd),
		domain.FormatPredecessorIDs(t.PredecessorIDs),
		t.CompletionPct,
		t.Notes,
		nullableTimeToString(t.UpdatedAt),
		updatedByID,
		updatedByName,
		t.ID,
		t.Version,
	)
	if err != nil {
		return writeErr("updating task", err, false)
	}
	if err := checkVersionedWrite(ctx, r.db, res, "production_tasks", "task", t.ID); err != nil {
		return err
	}
	t.Version++
	return nil
}

// Delete removes the task; its assignments go with it via ON DELETE CASCADE.
func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM production_tasks WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting task", err, false)
	}
	return checkDeleted(res, "task", id)
}

func (r *SQLiteTaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// scanTask returns sql.ErrNoRows unwrapped so GetByID can map it.
func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var status, plannedStart, plannedEnd, predecessors, createdAt string
	var actualDuration sql.NullInt64
	var actualStart, actualEnd, updatedAt, updatedByID, updatedByName sql.NullString

	err := s.Scan(
		&t.ID, &t.OrderID, &t.Title, &t.Description, &t.Type, &t.Priority, &status,
		&t.EstimatedDurationMin, &actualDuration, &plannedStart, &plannedEnd, &actualStart, &actualEnd,
		&predecessors, &t.CompletionPct, &t.Notes,
		&createdAt, &t.CreatedBy.ID, &t.CreatedBy.Name, &updatedAt, &updatedByID, &updatedByName, &t.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(status)
	t.ActualDurationMin = nullIntPtr(actualDuration)
	if t.PlannedStart, err = parseTime(plannedStart); err != nil {
		return nil, err
	}
	if t.PlannedEnd, err = parseTime(plannedEnd); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	t.ActualStart = parseNullableTime(actualStart)
	t.ActualEnd = parseNullableTime(actualEnd)
	t.UpdatedAt = parseNullableTime(updatedAt)
	if updatedByID.Valid {
		t.UpdatedBy = &domain.Actor{ID: updatedByID.String, Name: updatedByName.String}
	}
	// Stored lists were validated on write; tolerate legacy junk on read.
	if ids, perr := domain.ParsePredecessorIDs(predecessors); perr == nil {
		t.PredecessorIDs = ids
	}
	return &t, nil
}

func actorValues(a *domain.Actor) (interface{}, interface{}) {
	if a == nil {
		return nil, nil
	}
	return a.ID, a.Name
}
