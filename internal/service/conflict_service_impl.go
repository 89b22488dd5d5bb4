package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/stagehand/internal/contract"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
)

type conflictService struct {
	conflicts repository.ConflictRepo
}

func NewConflictService(conflicts repository.ConflictRepo) ConflictService {
	return &conflictService{conflicts: conflicts}
}

func (s *conflictService) GetByID(ctx context.Context, id string) (*domain.Conflict, error) {
	return s.conflicts.GetByID(ctx, id)
}

func (s *conflictService) List(ctx context.Context, filter contract.ConflictFilter) ([]*domain.Conflict, error) {
	return s.conflicts.List(ctx, filter)
}

func (s *conflictService) Resolve(ctx context.Context, id, suggestionID, note string) error {
	c, err := s.requireActive(ctx, id)
	if err != nil {
		return err
	}
	if suggestionID != "" {
		applied, err := findSuggestion(c, suggestionID)
		if err != nil {
			return err
		}
		if note == "" {
			note = fmt.Sprintf("applied suggestion: %s", applied.Title)
		} else {
			note = fmt.Sprintf("applied suggestion: %s (%s)", applied.Title, note)
		}
	}
	resolvedAt := time.Now().UTC()
	return s.conflicts.SetStatus(ctx, id, domain.ConflictResolved, note, &resolvedAt)
}

func (s *conflictService) Ignore(ctx context.Context, id, note string) error {
	if _, err := s.requireActive(ctx, id); err != nil {
		return err
	}
	resolvedAt := time.Now().UTC()
	return s.conflicts.SetStatus(ctx, id, domain.ConflictIgnored, note, &resolvedAt)
}

// requireActive loads a conflict and rejects terminal ones. Terminal
// conflicts stay terminal; re-closing one would silently rewrite its
// resolution history.
func (s *conflictService) requireActive(ctx context.Context, id string) (*domain.Conflict, error) {
	c, err := s.conflicts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, fmt.Errorf("conflict %s is already %s: %w", id, c.Status, ErrInvalidState)
	}
	return c, nil
}

func findSuggestion(c *domain.Conflict, suggestionID string) (*domain.Suggestion, error) {
	for i := range c.Suggestions {
		if c.Suggestions[i].ID == suggestionID {
			return &c.Suggestions[i], nil
		}
	}
	return nil, fmt.Errorf("suggestion %s: %w", suggestionID, repository.ErrNotFound)
}
