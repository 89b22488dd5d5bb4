package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
)

// ConflictFilter narrows conflict listings. Nil fields match everything.
type ConflictFilter struct {
	Severity *domain.Severity
	Type     *domain.ConflictType
	Status   *domain.ConflictStatus
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	SetWindows(ctx context.Context, resourceID string, windows []domain.AvailabilityWindow) error
	Delete(ctx context.Context, id string) error
}

type AllocationRepo interface {
	Create(ctx context.Context, a *domain.Allocation) error
	GetByID(ctx context.Context, id string) (*domain.Allocation, error)
	List(ctx context.Context) ([]*domain.Allocation, error)
	// ListWindow returns allocations whose interval intersects [start, end).
	ListWindow(ctx context.Context, start, end time.Time) ([]*domain.Allocation, error)
	ListByResource(ctx context.Context, resourceID string) ([]*domain.Allocation, error)
	Update(ctx context.Context, a *domain.Allocation) error
	Delete(ctx context.Context, id string) error
}

type ConflictRepo interface {
	Create(ctx context.Context, c *domain.Conflict) error
	GetByID(ctx context.Context, id string) (*domain.Conflict, error)
	GetActiveByPairKey(ctx context.Context, pairKey string) (*domain.Conflict, error)
	List(ctx context.Context, filter ConflictFilter) ([]*domain.Conflict, error)
	// UpdateDetection refreshes the computed fields of an existing conflict
	// (severity, type, description, detected-at) without touching its
	// identity or resolution history.
	UpdateDetection(ctx context.Context, c *domain.Conflict) error
	SetStatus(ctx context.Context, id string, status domain.ConflictStatus, note string, resolvedAt *time.Time) error
	ReplaceSuggestions(ctx context.Context, conflictID string, suggestions []domain.Suggestion) error
}
