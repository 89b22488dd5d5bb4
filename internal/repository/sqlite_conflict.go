package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
)

// conflictColumns is the canonical SELECT column list for conflicts.
const conflictColumns = `id, type, severity, resource_id, allocation_a_id, allocation_b_id,
		pair_key, description, status, resolution_note, detected_at, resolved_at`

// SQLiteConflictRepo implements ConflictRepo using a SQLite database.
type SQLiteConflictRepo struct {
	db db.DBTX
}

// NewSQLiteConflictRepo creates a new SQLiteConflictRepo.
func NewSQLiteConflictRepo(db db.DBTX) *SQLiteConflictRepo {
	return &SQLiteConflictRepo{db: db}
}

func (r *SQLiteConflictRepo) Create(ctx context.Context, c *domain.Conflict) error {
	query := `INSERT INTO conflicts (` + conflictColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		string(c.Type),
		string(c.Severity),
		c.ResourceID,
		c.AllocationAID,
		c.AllocationBID,
		c.PairKey,
		c.Description,
		string(c.Status),
		c.ResolutionNote,
		c.DetectedAt.Format(time.RFC3339),
		nullableTimeToString(c.ResolvedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting conflict: %w", err)
	}
	return nil
}

func (r *SQLiteConflictRepo) GetByID(ctx context.Context, id string) (*domain.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	c, err := r.scanConflict(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadSuggestions(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteConflictRepo) GetActiveByPairKey(ctx context.Context, pairKey string) (*domain.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts WHERE pair_key = ? AND status = 'active'`
	row := r.db.QueryRowContext(ctx, query, pairKey)
	c, err := r.scanConflict(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadSuggestions(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteConflictRepo) List(ctx context.Context, filter ConflictFilter) ([]*domain.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts WHERE 1=1`
	var args []any
	if filter.Severity != nil {
		query += ` AND severity = ?`
		args = append(args, string(*filter.Severity))
	}
	if filter.Type != nil {
		query += ` AND type = ?`
		args = append(args, string(*filter.Type))
	}
	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, string(*filter.Status))
	}
	query += ` ORDER BY detected_at, pair_key`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing conflicts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Conflict
	for rows.Next() {
		c, err := r.scanConflictRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conflicts: %w", err)
	}
	for _, c := range out {
		if err := r.loadSuggestions(ctx, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteConflictRepo) UpdateDetection(ctx context.Context, c *domain.Conflict) error {
	query := `UPDATE conflicts SET type = ?, severity = ?, description = ?, detected_at = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		string(c.Type),
		string(c.Severity),
		c.Description,
		c.DetectedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating conflict detection fields: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("conflict: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteConflictRepo) SetStatus(ctx context.Context, id string, status domain.ConflictStatus, note string, resolvedAt *time.Time) error {
	query := `UPDATE conflicts SET status = ?, resolution_note = ?, resolved_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		string(status),
		note,
		nullableTimeToString(resolvedAt, time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("setting conflict status: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("conflict: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteConflictRepo) ReplaceSuggestions(ctx context.Context, conflictID string, suggestions []domain.Suggestion) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM suggestions WHERE conflict_id = ?`, conflictID); err != nil {
		return fmt.Errorf("clearing suggestions: %w", err)
	}
	for _, s := range suggestions {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO suggestions (id, conflict_id, kind, title, description, impact, sort_rank)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.ID, conflictID, string(s.Kind), s.Title, s.Description, string(s.Impact), s.Rank,
		)
		if err != nil {
			return fmt.Errorf("inserting suggestion: %w", err)
		}
	}
	return nil
}

func (r *SQLiteConflictRepo) loadSuggestions(ctx context.Context, c *domain.Conflict) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, conflict_id, kind, title, description, impact, sort_rank
		 FROM suggestions WHERE conflict_id = ? ORDER BY sort_rank`, c.ID)
	if err != nil {
		return fmt.Errorf("loading suggestions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Suggestion
		var kindStr, impactStr string
		if err := rows.Scan(&s.ID, &s.ConflictID, &kindStr, &s.Title, &s.Description, &impactStr, &s.Rank); err != nil {
			return fmt.Errorf("scanning suggestion: %w", err)
		}
		s.Kind = domain.SuggestionKind(kindStr)
		s.Impact = domain.Impact(impactStr)
		c.Suggestions = append(c.Suggestions, s)
	}
	return rows.Err()
}

func (r *SQLiteConflictRepo) scanConflict(row *sql.Row) (*domain.Conflict, error) {
	var c domain.Conflict
	var typeStr, severityStr, statusStr, detectedAtStr string
	var resolvedAtStr sql.NullString

	err := row.Scan(
		&c.ID, &typeStr, &severityStr, &c.ResourceID, &c.AllocationAID, &c.AllocationBID,
		&c.PairKey, &c.Description, &statusStr, &c.ResolutionNote, &detectedAtStr, &resolvedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("conflict: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning conflict: %w", err)
	}
	return r.populateConflict(&c, typeStr, severityStr, statusStr, detectedAtStr, resolvedAtStr)
}

func (r *SQLiteConflictRepo) scanConflictRow(rows *sql.Rows) (*domain.Conflict, error) {
	var c domain.Conflict
	var typeStr, severityStr, statusStr, detectedAtStr string
	var resolvedAtStr sql.NullString

	err := rows.Scan(
		&c.ID, &typeStr, &severityStr, &c.ResourceID, &c.AllocationAID, &c.AllocationBID,
		&c.PairKey, &c.Description, &statusStr, &c.ResolutionNote, &detectedAtStr, &resolvedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning conflict row: %w", err)
	}
	return r.populateConflict(&c, typeStr, severityStr, statusStr, detectedAtStr, resolvedAtStr)
}

func (r *SQLiteConflictRepo) populateConflict(
	c *domain.Conflict,
	typeStr, severityStr, statusStr, detectedAtStr string,
	resolvedAtStr sql.NullString,
) (*domain.Conflict, error) {
	c.Type = domain.ConflictType(typeStr)
	c.Severity = domain.Severity(severityStr)
	c.Status = domain.ConflictStatus(statusStr)
	c.ResolvedAt = parseNullableTime(resolvedAtStr, time.RFC3339)

	var parseErr error
	c.DetectedAt, parseErr = time.Parse(time.RFC3339, detectedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing detected_at: %w", parseErr)
	}
	return c, nil
}
