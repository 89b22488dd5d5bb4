package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/google/uuid"
)

type resourceService struct {
	resources repository.ResourceRepo
}

func NewResourceService(resources repository.ResourceRepo) ResourceService {
	return &resourceService{resources: resources}
}

func validateResource(r *domain.Resource) error {
	if r.Name == "" {
		return fmt.Errorf("resource name is required")
	}
	if !domain.ValidResourceKinds[string(r.Kind)] {
		return fmt.Errorf("invalid resource kind: %q", r.Kind)
	}
	return validateWindows(r.Windows)
}

func validateWindows(windows []domain.AvailabilityWindow) error {
	for i, w := range windows {
		if !w.End.After(w.Start) {
			return fmt.Errorf("availability window %d: %w", i, domain.ErrInvalidInterval)
		}
	}
	return nil
}

func (s *resourceService) Create(ctx context.Context, r *domain.Resource) error {
	if err := validateResource(r); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.resources.Create(ctx, r)
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *resourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	return s.resources.List(ctx)
}

func (s *resourceService) Update(ctx context.Context, r *domain.Resource) error {
	if err := validateResource(r); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	return s.resources.Update(ctx, r)
}

func (s *resourceService) SetWindows(ctx context.Context, resourceID string, windows []domain.AvailabilityWindow) error {
	if err := validateWindows(windows); err != nil {
		return err
	}
	return s.resources.SetWindows(ctx, resourceID, windows)
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	return s.resources.Delete(ctx, id)
}
