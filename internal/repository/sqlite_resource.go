package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/domain"
)

// SQLiteResourceRepo implements ResourceRepo using a SQLite database.
type SQLiteResourceRepo struct {
	db db.DBTX
}

func NewSQLiteResourceRepo(q db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: q}
}

const resourceColumns = `id, name, resource_type, department, capacity, cost_per_hour, capabilities,
	is_active, working_hours, days_off, notes, created_at, updated_at, version`

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	if res.Version == 0 {
		res.Version = 1
	}
	query := `INSERT INTO resources (` + resourceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.Name,
		string(res.Type),
		res.Department,
		nullableFloatToValue(res.Capacity),
		nullableFloatToValue(res.CostPerHour),
		res.Capabilities,
		boolToInt(res.IsActive),
		res.WorkingHours,
		res.DaysOff,
		res.Notes,
		formatTime(res.CreatedAt),
		formatTime(res.UpdatedAt),
		res.Version,
	)
	if err != nil {
		return writeErr("inserting resource", err, false)
	}
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	res, err := scanResource(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resource %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *SQLiteResourceRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Resource, error) {
	if activeOnly {
		return r.queryResources(ctx, `SELECT `+resourceColumns+` FROM resources WHERE is_active = 1 ORDER BY name, id`)
	}
	return r.queryResources(ctx, `SELECT `+resourceColumns+` FROM resources ORDER BY name, id`)
}

func (r *SQLiteResourceRepo) ListByType(ctx context.Context, rt domain.ResourceType) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE resource_type = ? AND is_active = 1 ORDER BY name, id`
	return r.queryResources(ctx, query, string(rt))
}

func (r *SQLiteResourceRepo) ListByDepartment(ctx context.Context, department string) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE department = ? AND is_active = 1 ORDER BY name, id`
	return r.queryResources(ctx, query, department)
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	query := `UPDATE resources SET name = ?, resource_type = ?, department = ?, capacity = ?,
		cost_per_hour = ?, capabilities = ?, is_active = ?, working_hours = ?, days_off = ?,
		notes = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`
	result, err := r.db.ExecContext(ctx, query,
		res.Name,
		string(res.Type),
		res.Department,
		nullableFloatToValue(res.Capacity),
		nullableFloatToValue(res.CostPerHour),
		res.Capabilities,
		boolToInt(res.IsActive),
		res.WorkingHours,
		res.DaysOff,
		res.Notes,
		formatTime(res.UpdatedAt),
		res.ID,
		res.Version,
	)
	if err != nil {
		return writeErr("updating resource", err, false)
	}
	if err := checkVersionedWrite(ctx, r.db, result, "resources", "resource", res.ID); err != nil {
		return err
	}
	res.Version++
	return nil
}

func (r *SQLiteResourceRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting resource", err, false)
	}
	return checkDeleted(result, "resource", id)
}

func (r *SQLiteResourceRepo) queryResources(ctx context.Context, query string, args ...any) ([]*domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var out []*domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return out, nil
}

func scanResource(s scanner) (*domain.Resource, error) {
	var res domain.Resource
	var rtype, createdAt, updatedAt string
	var capacity, cost sql.NullFloat64
	var active int

	err := s.Scan(&res.ID, &res.Name, &rtype, &res.Department, &capacity, &cost, &res.Capabilities,
		&active, &res.WorkingHours, &res.DaysOff, &res.Notes, &createdAt, &updatedAt, &res.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning resource: %w", err)
	}

	res.Type = domain.ResourceType(rtype)
	res.Capacity = nullFloatPtr(capacity)
	res.CostPerHour = nullFloatPtr(cost)
	res.IsActive = intToBool(active)
	if res.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if res.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}
