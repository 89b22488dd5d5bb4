package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
)

// SQLiteResourceRepo implements ResourceRepo using a SQLite database.
type SQLiteResourceRepo struct {
	db db.DBTX
}

// NewSQLiteResourceRepo creates a new SQLiteResourceRepo.
func NewSQLiteResourceRepo(db db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: db}
}

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	query := `INSERT INTO resources (id, kind, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		string(res.Kind),
		res.Name,
		res.CreatedAt.Format(time.RFC3339),
		res.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return r.replaceWindows(ctx, res.ID, res.Windows)
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := `SELECT id, kind, name, created_at, updated_at FROM resources WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	res, err := r.scanResource(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadWindows(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *SQLiteResourceRepo) List(ctx context.Context) ([]*domain.Resource, error) {
	query := `SELECT id, kind, name, created_at, updated_at FROM resources ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var out []*domain.Resource
	for rows.Next() {
		res, err := r.scanResourceRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	for _, res := range out {
		if err := r.loadWindows(ctx, res); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	query := `UPDATE resources SET kind = ?, name = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		string(res.Kind),
		res.Name,
		res.UpdatedAt.Format(time.RFC3339),
		res.ID,
	)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("resource: %w", ErrNotFound)
	}
	return r.replaceWindows(ctx, res.ID, res.Windows)
}

func (r *SQLiteResourceRepo) SetWindows(ctx context.Context, resourceID string, windows []domain.AvailabilityWindow) error {
	return r.replaceWindows(ctx, resourceID, windows)
}

func (r *SQLiteResourceRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM resources WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) replaceWindows(ctx context.Context, resourceID string, windows []domain.AvailabilityWindow) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM availability_windows WHERE resource_id = ?`, resourceID); err != nil {
		return fmt.Errorf("clearing availability windows: %w", err)
	}
	for i, w := range windows {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO availability_windows (resource_id, position, start_at, end_at, status)
			 VALUES (?, ?, ?, ?, ?)`,
			resourceID, i,
			w.Start.Format(time.RFC3339),
			w.End.Format(time.RFC3339),
			string(w.Status),
		)
		if err != nil {
			return fmt.Errorf("inserting availability window %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteResourceRepo) loadWindows(ctx context.Context, res *domain.Resource) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT start_at, end_at, status FROM availability_windows
		 WHERE resource_id = ? ORDER BY position`, res.ID)
	if err != nil {
		return fmt.Errorf("loading availability windows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var startStr, endStr, statusStr string
		if err := rows.Scan(&startStr, &endStr, &statusStr); err != nil {
			return fmt.Errorf("scanning availability window: %w", err)
		}
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return fmt.Errorf("parsing window start: %w", err)
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return fmt.Errorf("parsing window end: %w", err)
		}
		res.Windows = append(res.Windows, domain.AvailabilityWindow{
			Start:  start,
			End:    end,
			Status: domain.AvailabilityStatus(statusStr),
		})
	}
	return rows.Err()
}

func (r *SQLiteResourceRepo) scanResource(row *sql.Row) (*domain.Resource, error) {
	var res domain.Resource
	var kindStr, createdAtStr, updatedAtStr string
	err := row.Scan(&res.ID, &kindStr, &res.Name, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("resource: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning resource: %w", err)
	}
	return r.populateResource(&res, kindStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteResourceRepo) scanResourceRow(rows *sql.Rows) (*domain.Resource, error) {
	var res domain.Resource
	var kindStr, createdAtStr, updatedAtStr string
	if err := rows.Scan(&res.ID, &kindStr, &res.Name, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning resource row: %w", err)
	}
	return r.populateResource(&res, kindStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteResourceRepo) populateResource(res *domain.Resource, kindStr, createdAtStr, updatedAtStr string) (*domain.Resource, error) {
	res.Kind = domain.ResourceKind(kindStr)

	var parseErr error
	res.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	res.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return res, nil
}
