package review_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"pindrop/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepo serves canned pages and records location updates
type fakeRepo struct {
	mu        sync.Mutex
	pages     map[int]domain.SearchPage
	searchErr error
	updateErr map[string]error
	updated   map[string]domain.Point

	// When set, UpdateLocation signals updateStarted then blocks until
	// updateGate closes.
	updateGate    chan struct{}
	updateStarted chan struct{}
}

func newFakeRepo(pages map[int]domain.SearchPage) *fakeRepo {
	return &fakeRepo{
		pages:     pages,
		updateErr: make(map[string]error),
		updated:   make(map[string]domain.Point),
	}
}

func (r *fakeRepo) SearchAssets(_ context.Context, _ domain.FilterCriteria, page int) (domain.SearchPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.searchErr != nil {
		return domain.SearchPage{}, r.searchErr
	}
	return r.pages[page], nil
}

func (r *fakeRepo) UpdateLocation(_ context.Context, assetID string, point domain.Point) error {
	r.mu.Lock()
	gate := r.updateGate
	started := r.updateStarted
	r.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErr[assetID]; err != nil {
		return err
	}
	r.updated[assetID] = point
	return nil
}

func (r *fakeRepo) updatedPoint(assetID string) (domain.Point, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.updated[assetID]
	return p, ok
}

// fakeEstimator returns canned estimates keyed by capture time
type fakeEstimator struct {
	estimates map[int64]domain.Estimate
}

func (e *fakeEstimator) Estimate(at time.Time) (*domain.Estimate, bool) {
	est, ok := e.estimates[at.Unix()]
	if !ok {
		return nil, false
	}
	out := est
	return &out, true
}

// memSeen is an in-memory seen set for tests
type memSeen struct {
	ids map[string]struct{}
}

func newMemSeen() *memSeen { return &memSeen{ids: make(map[string]struct{})} }

func (s *memSeen) Add(ids ...string) error {
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return nil
}

func (s *memSeen) Remove(ids ...string) error {
	for _, id := range ids {
		delete(s.ids, id)
	}
	return nil
}

func (s *memSeen) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *memSeen) Close() error { return nil }

func asset(id string, takenAt int64, name string) domain.Asset {
	return domain.Asset{ID: id, OriginalFileName: name, TakenAt: time.Unix(takenAt, 0)}
}

func exactEstimate(lat, lng float64) domain.Estimate {
	return domain.Estimate{
		Point:  domain.Point{Lat: lat, Lng: lng},
		Source: domain.ConfidenceExact,
	}
}
