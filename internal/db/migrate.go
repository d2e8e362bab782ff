package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schedule store schema. Statements are idempotent and
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS production_tasks (
		id                    TEXT PRIMARY KEY,
		order_id              TEXT NOT NULL,
		title                 TEXT NOT NULL,
		description           TEXT NOT NULL DEFAULT '',
		task_type             TEXT NOT NULL DEFAULT '',
		priority              INTEGER NOT NULL DEFAULT 3
		                      CHECK(priority BETWEEN 1 AND 5),
		status                TEXT NOT NULL DEFAULT 'Planned'
		                      CHECK(status IN ('Planned','InProgress','Completed','OnHold','Cancelled')),
		estimated_duration    INTEGER NOT NULL DEFAULT 0,
		actual_duration       INTEGER,
		planned_start         TEXT NOT NULL,
		planned_end           TEXT NOT NULL,
		actual_start          TEXT,
		actual_end            TEXT,
		predecessor_task_ids  TEXT NOT NULL DEFAULT '',
		completion_pct        INTEGER NOT NULL DEFAULT 0
		                      CHECK(completion_pct BETWEEN 0 AND 100),
		notes                 TEXT NOT NULL DEFAULT '',
		created_at            TEXT NOT NULL,
		created_by_id         TEXT NOT NULL DEFAULT '',
		created_by_name       TEXT NOT NULL DEFAULT '',
		updated_at            TEXT,
		updated_by_id         TEXT,
		updated_by_name       TEXT,
		version               INTEGER NOT NULL DEFAULT 1,
		CHECK(planned_end >= planned_start)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_production_tasks_order ON production_tasks(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_production_tasks_planned ON production_tasks(planned_start, planned_end)`,
	`CREATE TABLE IF NOT EXISTS resources (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		resource_type  TEXT NOT NULL
		               CHECK(resource_type IN ('Machine','Person','Tool','Line')),
		department     TEXT NOT NULL DEFAULT '',
		capacity       REAL,
		cost_per_hour  REAL,
		capabilities   TEXT NOT NULL DEFAULT '',
		is_active      INTEGER NOT NULL DEFAULT 1,
		working_hours  TEXT NOT NULL DEFAULT '',
		days_off       TEXT NOT NULL DEFAULT '',
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		version        INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_resources_type ON resources(resource_type)`,
	`CREATE INDEX IF NOT EXISTS idx_resources_department ON resources(department)`,
	`CREATE TABLE IF NOT EXISTS task_resource_assignments (
		id               TEXT PRIMARY KEY,
		task_id          TEXT NOT NULL REFERENCES production_tasks(id) ON DELETE CASCADE,
		resource_id      TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		allocation_pct   REAL NOT NULL DEFAULT 100
		                 CHECK(allocation_pct >= 0 AND allocation_pct <= 100),
		notes            TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		created_by_id    TEXT NOT NULL DEFAULT '',
		created_by_name  TEXT NOT NULL DEFAULT '',
		version          INTEGER NOT NULL DEFAULT 1,
		CHECK(end_time >= start_time)
	)`,
	// One active assignment per (task, resource) pair; re-assigning updates in place.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_task_resource ON task_resource_assignments(task_id, resource_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_resource_window ON task_resource_assignments(resource_id, start_time, end_time)`,
}
