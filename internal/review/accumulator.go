package review

import (
	"context"
	"log/slog"
	"sync"

	"pindrop/internal/domain"
)

// Accumulator owns the growing, criteria-scoped list of fetched assets and
// the current page cursor. Pages append in fetch order; ids already present
// are dropped so overlapping pages from the store never double-insert.
//
// Fetches are guarded: a second FetchNext while one is in flight returns
// domain.ErrBusy instead of double-appending.
type Accumulator struct {
	repo   domain.AssetRepository
	logger *slog.Logger

	mu       sync.Mutex
	criteria domain.FilterCriteria
	page     int
	assets   []domain.Asset
	have     map[string]struct{} // ids already accumulated
	hasNext  bool
	fetching bool
}

// NewAccumulator creates an accumulator positioned at page 1
func NewAccumulator(repo domain.AssetRepository, criteria domain.FilterCriteria, logger *slog.Logger) *Accumulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accumulator{
		repo:     repo,
		logger:   logger,
		criteria: criteria,
		page:     1,
		have:     make(map[string]struct{}),
		hasNext:  true,
	}
}

// FetchNext fetches the page at the current cursor and appends it.
// On any store error the accumulated list and cursor are left unchanged.
func (a *Accumulator) FetchNext(ctx context.Context) error {
	a.mu.Lock()
	if a.fetching {
		a.mu.Unlock()
		return domain.ErrBusy
	}
	a.fetching = true
	page := a.page
	criteria := a.criteria
	a.mu.Unlock()

	res, err := a.repo.SearchAssets(ctx, criteria, page)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.fetching = false

	if err != nil {
		a.logger.Error("failed to fetch assets", "error", err, "page", page)
		return &FetchError{Page: page, Err: err}
	}

	added := 0
	for _, asset := range res.Assets {
		if _, ok := a.have[asset.ID]; ok {
			continue
		}
		a.have[asset.ID] = struct{}{}
		a.assets = append(a.assets, asset)
		added++
	}
	a.hasNext = res.HasNextPage
	a.page = page + 1

	a.logger.Debug("fetched page", "page", page, "added", added, "total", len(a.assets), "hasNext", a.hasNext)
	return nil
}

// Reset clears all accumulated assets and rewinds the cursor to page 1
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.assets = nil
	a.have = make(map[string]struct{})
	a.page = 1
	a.hasNext = true
}

// SetCriteria swaps the filter and resets accumulation; stale assets from a
// different filter must not leak into the new session.
func (a *Accumulator) SetCriteria(criteria domain.FilterCriteria) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.criteria = criteria
	a.assets = nil
	a.have = make(map[string]struct{})
	a.page = 1
	a.hasNext = true
}

// SetPage repositions the cursor. Only the post-commit recompute and tests
// call this; ordinary fetching never moves the cursor backwards.
func (a *Accumulator) SetPage(page int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if page < 1 {
		page = 1
	}
	a.page = page
}

// Assets returns a copy of the accumulated assets in fetch order
func (a *Accumulator) Assets() []domain.Asset {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Asset, len(a.assets))
	copy(out, a.assets)
	return out
}

// Page returns the page the next fetch will request
func (a *Accumulator) Page() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page
}

// HasNext reports whether the store signalled more pages on the last fetch
func (a *Accumulator) HasNext() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hasNext
}

// Criteria returns the active filter
func (a *Accumulator) Criteria() domain.FilterCriteria {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.criteria
}
