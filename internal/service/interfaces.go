package service

import (
	"context"
	"time"

	"github.com/alexanderramin/stagehand/internal/contract"
	"github.com/alexanderramin/stagehand/internal/domain"
)

type ResourceService interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	SetWindows(ctx context.Context, resourceID string, windows []domain.AvailabilityWindow) error
	Delete(ctx context.Context, id string) error
}

type AllocationService interface {
	Create(ctx context.Context, a *domain.Allocation) error
	GetByID(ctx context.Context, id string) (*domain.Allocation, error)
	List(ctx context.Context) ([]*domain.Allocation, error)
	ListWindow(ctx context.Context, start, end time.Time) ([]*domain.Allocation, error)
	ListByResource(ctx context.Context, resourceID string) ([]*domain.Allocation, error)
	Update(ctx context.Context, a *domain.Allocation) error
	Delete(ctx context.Context, id string) error
}

type DetectionService interface {
	DetectConflicts(ctx context.Context, req contract.DetectRequest) (*contract.DetectResponse, error)
}

type ConflictService interface {
	GetByID(ctx context.Context, id string) (*domain.Conflict, error)
	List(ctx context.Context, filter contract.ConflictFilter) ([]*domain.Conflict, error)
	// Resolve closes an active conflict. A non-empty suggestionID records
	// which proposed remediation was applied.
	Resolve(ctx context.Context, id, suggestionID, note string) error
	Ignore(ctx context.Context, id, note string) error
}
