package review

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"pindrop/internal/domain"
)

// How long to wait after a successful commit before refetching. The server
// recomputes reverse-geocoded metadata asynchronously, so an immediate
// refetch would still show the assets as unlocated.
const defaultRefetchDelay = 500 * time.Millisecond

// Session is a single reviewer's working state: the accumulated result set,
// the pending edit map keyed by asset id, and the hidden-item bookkeeping.
// All mutations are serialized through its mutex; fetch and commit guard
// against reentrant calls with domain.ErrBusy.
type Session struct {
	repo      domain.AssetRepository
	estimator domain.Estimator
	geometry  domain.GeometryAdapter
	seen      domain.SeenStore
	acc       *Accumulator
	logger    *slog.Logger

	mu         sync.Mutex
	pending    map[string]*domain.Candidate
	order      []string // visible asset ids, accumulation order
	hidden     int      // projected candidates currently filtered by the seen set
	committing bool

	refetchDelay time.Duration
	onRefetch    func(error) // invoked after the post-commit refetch completes
}

// NewSession creates a review session for the given filter criteria
func NewSession(
	repo domain.AssetRepository,
	estimator domain.Estimator,
	geometry domain.GeometryAdapter,
	seen domain.SeenStore,
	criteria domain.FilterCriteria,
	logger *slog.Logger,
) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		repo:         repo,
		estimator:    estimator,
		geometry:     geometry,
		seen:         seen,
		acc:          NewAccumulator(repo, criteria, logger),
		logger:       logger,
		pending:      make(map[string]*domain.Candidate),
		refetchDelay: defaultRefetchDelay,
	}
}

// SetRefetchDelay overrides the post-commit refetch delay. Zero disables the
// automatic refetch; the caller then refreshes on its own schedule.
func (s *Session) SetRefetchDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refetchDelay = d
}

// SetOnRefetch registers a callback fired when the delayed post-commit
// refetch completes. Used by the TUI to repaint from its event loop.
func (s *Session) SetOnRefetch(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefetch = fn
}

// SetFilter swaps the filter criteria: accumulation restarts at page 1, the
// pending edit map is dropped wholesale, and the first page is fetched.
// Pending edits are criteria-scoped; none survive a filter change.
func (s *Session) SetFilter(ctx context.Context, criteria domain.FilterCriteria) error {
	if criteria.PageSize < 1 {
		return errors.New("page size must be at least 1")
	}
	if criteria.Equal(s.acc.Criteria()) {
		return nil
	}

	s.acc.SetCriteria(criteria)
	s.mu.Lock()
	s.pending = make(map[string]*domain.Candidate)
	s.order = nil
	s.hidden = 0
	s.mu.Unlock()

	return s.FetchNext(ctx)
}

// FetchNext accumulates one more page and re-derives the visible set.
// Returns domain.ErrBusy if a fetch is already in flight, or *FetchError on
// store failure; either way the working set is unchanged.
func (s *Session) FetchNext(ctx context.Context) error {
	if err := s.acc.FetchNext(ctx); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// Refresh re-projects the accumulated assets and merges the result into the
// pending edit map without fetching. Useful after the timeline changes.
func (s *Session) Refresh() {
	s.refresh()
}

// refresh recomputes projection and visibility, then reconciles the pending
// edit map against the new visible list.
func (s *Session) refresh() {
	projected := Project(s.acc.Assets(), s.estimator, s.geometry)

	visible := make([]domain.Candidate, 0, len(projected))
	for _, c := range projected {
		if !s.seen.Contains(c.Asset.ID) {
			visible = append(visible, c)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden = len(projected) - len(visible)
	s.merge(visible)
}

// merge reconciles freshly projected candidates with the existing pending
// map. Two explicit passes, in this order:
//
//  1. Fill gaps: insert candidates the map doesn't know, and overwrite
//     entries whose estimate is still absent. A fresh projection only wins
//     when there is nothing to protect.
//  2. Prune: drop every entry whose id is no longer visible.
//
// An entry holding a non-absent estimate is never touched by pass 1, which
// is what keeps user toggles and manually adjusted points alive across
// re-projections of other pages.
func (s *Session) merge(visible []domain.Candidate) {
	for i := range visible {
		c := visible[i]
		cur, ok := s.pending[c.Asset.ID]
		if !ok || cur.Estimate == nil {
			fresh := c
			s.pending[c.Asset.ID] = &fresh
		}
	}

	keep := make(map[string]struct{}, len(visible))
	order := make([]string, 0, len(visible))
	for _, c := range visible {
		keep[c.Asset.ID] = struct{}{}
		order = append(order, c.Asset.ID)
	}
	for id := range s.pending {
		if _, ok := keep[id]; !ok {
			delete(s.pending, id)
		}
	}
	s.order = order
}

// Visible returns the current working set in accumulation order
func (s *Session) Visible() []domain.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Candidate, 0, len(s.order))
	for _, id := range s.order {
		if c, ok := s.pending[id]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// Candidate returns the pending entry for an asset id
func (s *Session) Candidate(id string) (domain.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.pending[id]; ok {
		return *c, true
	}
	return domain.Candidate{}, false
}

// HiddenCount reports how many projected candidates the seen set is hiding
func (s *Session) HiddenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hidden
}

// ConfirmedCount reports how many visible candidates are accepted with a
// usable estimate; this drives the commit action's enabled state.
func (s *Session) ConfirmedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.pending {
		if c.Accepted && c.Estimate != nil {
			n++
		}
	}
	return n
}

// HasMore reports whether more pages can be fetched
func (s *Session) HasMore() bool { return s.acc.HasNext() }

// Page returns the page the next fetch will request
func (s *Session) Page() int { return s.acc.Page() }

// Criteria returns the active filter criteria
func (s *Session) Criteria() domain.FilterCriteria { return s.acc.Criteria() }

// ToggleAccepted flips the accept flag on a visible candidate
func (s *Session) ToggleAccepted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.pending[id]
	if !ok || c.Estimate == nil {
		return false
	}
	c.Accepted = !c.Accepted
	return c.Accepted
}

// SetPoint records a manually placed point for a candidate. The estimate is
// marked manual so later re-projections can't claw it back, and the edit is
// implicitly accepted.
func (s *Session) SetPoint(id string, point domain.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.pending[id]
	if !ok {
		return false
	}
	if c.Estimate == nil {
		c.Estimate = &domain.Estimate{}
	}
	c.Estimate.Point = point
	c.Estimate.Source = domain.ConfidenceManual
	c.Accepted = true
	return true
}

// Hide adds an asset to the durable seen set and removes it from view
func (s *Session) Hide(id string) error {
	if err := s.seen.Add(id); err != nil {
		s.logger.Error("failed to persist hidden asset", "error", err, "assetID", id)
		return err
	}
	s.refresh()
	return nil
}

// UnhideAll removes from the seen set every asset id present in the current
// projected set. Hidden ids recorded under other filters (or for assets the
// accumulator hasn't fetched) stay hidden.
func (s *Session) UnhideAll() error {
	var ids []string
	for _, asset := range s.acc.Assets() {
		if s.seen.Contains(asset.ID) {
			ids = append(ids, asset.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.seen.Remove(ids...); err != nil {
		s.logger.Error("failed to unhide assets", "error", err, "count", len(ids))
		return err
	}
	s.logger.Info("unhid assets", "count", len(ids))
	s.refresh()
	return nil
}
