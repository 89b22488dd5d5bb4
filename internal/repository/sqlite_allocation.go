package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
)

// allocationColumns is the canonical SELECT column list for allocations.
const allocationColumns = `id, planning_item_id, resource_id, start_at, end_at,
		title, activity, assigned_to, created_at, updated_at`

// SQLiteAllocationRepo implements AllocationRepo using a SQLite database.
type SQLiteAllocationRepo struct {
	db db.DBTX
}

// NewSQLiteAllocationRepo creates a new SQLiteAllocationRepo.
func NewSQLiteAllocationRepo(db db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: db}
}

func (r *SQLiteAllocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	assignees, err := marshalAssignees(a.AssignedTo)
	if err != nil {
		return err
	}
	query := `INSERT INTO allocations (` + allocationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.PlanningItemID,
		a.ResourceID,
		a.Start.Format(time.RFC3339),
		a.End.Format(time.RFC3339),
		a.Title,
		string(a.Activity),
		assignees,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) GetByID(ctx context.Context, id string) (*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanAllocation(row)
}

func (r *SQLiteAllocationRepo) List(ctx context.Context) ([]*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations
		ORDER BY resource_id, start_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()
	return r.scanAllocations(rows)
}

func (r *SQLiteAllocationRepo) ListWindow(ctx context.Context, start, end time.Time) ([]*domain.Allocation, error) {
	// Half-open intersection: the allocation starts before the window ends
	// and ends after the window starts.
	query := `SELECT ` + allocationColumns + ` FROM allocations
		WHERE start_at < ? AND end_at > ?
		ORDER BY resource_id, start_at, id`
	rows, err := r.db.QueryContext(ctx, query,
		end.Format(time.RFC3339), start.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing allocations in window: %w", err)
	}
	defer rows.Close()
	return r.scanAllocations(rows)
}

func (r *SQLiteAllocationRepo) ListByResource(ctx context.Context, resourceID string) ([]*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations
		WHERE resource_id = ? ORDER BY start_at, id`
	rows, err := r.db.QueryContext(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations by resource: %w", err)
	}
	defer rows.Close()
	return r.scanAllocations(rows)
}

func (r *SQLiteAllocationRepo) Update(ctx context.Context, a *domain.Allocation) error {
	assignees, err := marshalAssignees(a.AssignedTo)
	if err != nil {
		return err
	}
	query := `UPDATE allocations SET planning_item_id = ?, resource_id = ?, start_at = ?, end_at = ?,
		title = ?, activity = ?, assigned_to = ?, updated_at = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		a.PlanningItemID,
		a.ResourceID,
		a.Start.Format(time.RFC3339),
		a.End.Format(time.RFC3339),
		a.Title,
		string(a.Activity),
		assignees,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating allocation: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("allocation: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteAllocationRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM allocations WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) scanAllocation(row *sql.Row) (*domain.Allocation, error) {
	var a domain.Allocation
	var activityStr, assigneesRaw string
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&a.ID, &a.PlanningItemID, &a.ResourceID, &startStr, &endStr,
		&a.Title, &activityStr, &assigneesRaw, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("allocation: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning allocation: %w", err)
	}
	return r.populateAllocation(&a, activityStr, assigneesRaw, startStr, endStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteAllocationRepo) scanAllocations(rows *sql.Rows) ([]*domain.Allocation, error) {
	var out []*domain.Allocation
	for rows.Next() {
		var a domain.Allocation
		var activityStr, assigneesRaw string
		var startStr, endStr, createdAtStr, updatedAtStr string

		err := rows.Scan(
			&a.ID, &a.PlanningItemID, &a.ResourceID, &startStr, &endStr,
			&a.Title, &activityStr, &assigneesRaw, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning allocation row: %w", err)
		}
		alloc, err := r.populateAllocation(&a, activityStr, assigneesRaw, startStr, endStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		out = append(out, alloc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	return out, nil
}

func (r *SQLiteAllocationRepo) populateAllocation(
	a *domain.Allocation,
	activityStr, assigneesRaw string,
	startStr, endStr, createdAtStr, updatedAtStr string,
) (*domain.Allocation, error) {
	a.Activity = domain.ActivityType(activityStr)

	var err error
	if a.AssignedTo, err = unmarshalAssignees(assigneesRaw); err != nil {
		return nil, err
	}
	if a.Start, err = time.Parse(time.RFC3339, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_at: %w", err)
	}
	if a.End, err = time.Parse(time.RFC3339, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_at: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return a, nil
}
