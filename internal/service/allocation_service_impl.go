package service

import (
	"context"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/google/uuid"
)

type allocationService struct {
	allocations repository.AllocationRepo
	resources   repository.ResourceRepo
}

func NewAllocationService(allocations repository.AllocationRepo, resources repository.ResourceRepo) AllocationService {
	return &allocationService{allocations: allocations, resources: resources}
}

func (s *allocationService) Create(ctx context.Context, a *domain.Allocation) error {
	if err := a.Validate(); err != nil {
		return err
	}
	// The booked resource must exist; conflicts against phantom resources
	// would be undetectable and unresolvable.
	if _, err := s.resources.GetByID(ctx, a.ResourceID); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.PlanningItemID == "" {
		a.PlanningItemID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.allocations.Create(ctx, a)
}

func (s *allocationService) GetByID(ctx context.Context, id string) (*domain.Allocation, error) {
	return s.allocations.GetByID(ctx, id)
}

func (s *allocationService) List(ctx context.Context) ([]*domain.Allocation, error) {
	return s.allocations.List(ctx)
}

func (s *allocationService) ListWindow(ctx context.Context, start, end time.Time) ([]*domain.Allocation, error) {
	return s.allocations.ListWindow(ctx, start, end)
}

func (s *allocationService) ListByResource(ctx context.Context, resourceID string) ([]*domain.Allocation, error) {
	return s.allocations.ListByResource(ctx, resourceID)
}

func (s *allocationService) Update(ctx context.Context, a *domain.Allocation) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := s.resources.GetByID(ctx, a.ResourceID); err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()
	return s.allocations.Update(ctx, a)
}

func (s *allocationService) Delete(ctx context.Context, id string) error {
	return s.allocations.Delete(ctx, id)
}
