package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/stagehand/internal/contract"
	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/detector"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const autoResolveNote = "auto-resolved: no longer overlapping"

type detectionService struct {
	resources   repository.ResourceRepo
	allocations repository.AllocationRepo
	uow         db.UnitOfWork
}

func NewDetectionService(
	resources repository.ResourceRepo,
	allocations repository.AllocationRepo,
	uow db.UnitOfWork,
) DetectionService {
	return &detectionService{
		resources:   resources,
		allocations: allocations,
		uow:         uow,
	}
}

// DetectConflicts runs the full pipeline: load a snapshot, index it, sweep
// each resource concurrently, classify the raw pairs, then reconcile the
// result against the persisted conflicts in one transaction. Re-running over
// an unchanged schedule is a no-op: existing active conflicts keep their ids
// and no duplicates appear.
func (s *detectionService) DetectConflicts(ctx context.Context, req contract.DetectRequest) (*contract.DetectResponse, error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	if (req.WindowStart == nil) != (req.WindowEnd == nil) {
		return nil, &contract.DetectError{
			Code:    contract.ErrInvalidWindow,
			Message: "window start and end must be set together",
		}
	}
	windowed := req.WindowStart != nil
	if windowed && !req.WindowEnd.After(*req.WindowStart) {
		return nil, &contract.DetectError{
			Code:    contract.ErrInvalidWindow,
			Message: "window end must be after window start",
		}
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var allocs []*domain.Allocation
	if windowed {
		allocs, err = s.allocations.ListWindow(ctx, *req.WindowStart, *req.WindowEnd)
	} else {
		allocs, err = s.allocations.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}

	snapshot := make([]domain.Allocation, len(allocs))
	for i, a := range allocs {
		snapshot[i] = *a
	}
	ix, skipped := detector.BuildIndex(snapshot)

	pairs, err := sweepAll(ctx, catalog, ix)
	if err != nil {
		return nil, err
	}
	pairs = append(pairs, detector.DoubleBookings(ix)...)

	conflicts := detector.Classify(catalog, pairs, now)
	pairByKey := make(map[string]detector.Pair, len(pairs))
	for _, p := range pairs {
		key := domain.ConflictPairKey(p.A.ID, p.B.ID, p.ResourceID)
		if _, ok := pairByKey[key]; !ok {
			pairByKey[key] = p
		}
	}

	stats := contract.DetectStats{
		ResourcesScanned:   len(catalog),
		AllocationsIndexed: ix.Len(),
		PairsFound:         len(conflicts),
	}

	resp := &contract.DetectResponse{
		GeneratedAt: now,
		Skipped:     skipped,
		Stats:       stats,
	}

	if req.DryRun {
		for i := range conflicts {
			resp.Conflicts = append(resp.Conflicts, &conflicts[i])
		}
		return resp, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		persisted, txStats, err := reconcile(ctx, tx, conflicts, pairByKey, catalog, ix, now, windowed)
		if err != nil {
			return err
		}
		resp.Conflicts = persisted
		resp.Stats.Created = txStats.Created
		resp.Stats.Updated = txStats.Updated
		resp.Stats.AutoResolved = txStats.AutoResolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *detectionService) loadCatalog(ctx context.Context) (map[string]domain.Resource, error) {
	list, err := s.resources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading resources: %w", err)
	}
	catalog := make(map[string]domain.Resource, len(list))
	for _, r := range list {
		catalog[r.ID] = *r
	}
	return catalog, nil
}

// sweepAll runs the per-resource overlap and availability sweeps, one
// goroutine per resource. Each goroutine writes only its own result slot,
// and the merge preserves resource order so the output is deterministic.
func sweepAll(ctx context.Context, catalog map[string]domain.Resource, ix *detector.Index) ([]detector.Pair, error) {
	ids := ix.ResourceIDs()
	results := make([][]detector.Pair, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sorted := ix.ForResource(id)
			pairs := detector.OverlapPairs(sorted)
			if res, ok := catalog[id]; ok {
				pairs = append(pairs, detector.UnavailablePairs(res, sorted)...)
			}
			results[i] = pairs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []detector.Pair
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

// reconcile diffs the computed conflict set against the active set in the
// store. Matching pair keys keep their persisted identity, new pairs are
// created, and active conflicts whose pair no longer overlaps are resolved
// with an audit note. Windowed runs only auto-resolve conflicts that were in
// scope for the scan; anything the window never looked at is left alone.
func reconcile(
	ctx context.Context,
	tx db.DBTX,
	computed []domain.Conflict,
	pairByKey map[string]detector.Pair,
	catalog map[string]domain.Resource,
	ix *detector.Index,
	now time.Time,
	windowed bool,
) ([]*domain.Conflict, contract.DetectStats, error) {
	repo := repository.NewSQLiteConflictRepo(tx)
	var stats contract.DetectStats

	activeStatus := domain.ConflictActive
	existing, err := repo.List(ctx, repository.ConflictFilter{Status: &activeStatus})
	if err != nil {
		return nil, stats, fmt.Errorf("loading active conflicts: %w", err)
	}
	existingByKey := make(map[string]*domain.Conflict, len(existing))
	for _, c := range existing {
		existingByKey[c.PairKey] = c
	}

	var persisted []*domain.Conflict
	for i := range computed {
		c := computed[i]
		if prior, ok := existingByKey[c.PairKey]; ok {
			c.ID = prior.ID
			if err := repo.UpdateDetection(ctx, &c); err != nil {
				return nil, stats, err
			}
			stats.Updated++
		} else {
			c.ID = uuid.New().String()
			if err := repo.Create(ctx, &c); err != nil {
				return nil, stats, err
			}
			stats.Created++
		}

		suggestions := detector.Suggest(&c, pairByKey[c.PairKey], catalog, ix)
		for j := range suggestions {
			suggestions[j].ID = uuid.New().String()
			suggestions[j].ConflictID = c.ID
		}
		if err := repo.ReplaceSuggestions(ctx, c.ID, suggestions); err != nil {
			return nil, stats, err
		}
		c.Suggestions = suggestions
		persisted = append(persisted, &c)
	}

	computedKeys := make(map[string]bool, len(computed))
	for i := range computed {
		computedKeys[computed[i].PairKey] = true
	}
	for _, prior := range existing {
		if computedKeys[prior.PairKey] {
			continue
		}
		if windowed && !inScanScope(prior, ix) {
			continue
		}
		resolvedAt := now
		if err := repo.SetStatus(ctx, prior.ID, domain.ConflictResolved, autoResolveNote, &resolvedAt); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, stats, err
		}
		stats.AutoResolved++
	}

	return persisted, stats, nil
}

// inScanScope reports whether a windowed run actually examined the conflict's
// participants: either allocation was indexed, or the conflict's resource was
// swept.
func inScanScope(c *domain.Conflict, ix *detector.Index) bool {
	if _, ok := ix.Get(c.AllocationAID); ok {
		return true
	}
	if _, ok := ix.Get(c.AllocationBID); ok {
		return true
	}
	return len(ix.ForResource(c.ResourceID)) > 0
}
