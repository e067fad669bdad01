package review_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pindrop/internal/domain"
	"pindrop/internal/geometry"
	"pindrop/internal/review"
)

func TestCommitWritesAcceptedAndHidesRest(t *testing.T) {
	s, repo, seen := newScenarioSession(t)
	fetchTwice(t, s)

	if err := s.Commit(context.Background(), review.CommitOptions{HideRest: true}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	for _, id := range []string{"A", "C"} {
		if _, ok := repo.updatedPoint(id); !ok {
			t.Errorf("accepted asset %s was not written", id)
		}
	}
	if _, ok := repo.updatedPoint("B"); ok {
		t.Error("unaccepted asset B was written")
	}
	if !seen.Contains("B") {
		t.Error("hideRest did not add B to the seen set")
	}

	// 3 visible, 2 committed, page size 2: resume at ceil(1/2) = 1
	if s.Page() != 1 {
		t.Fatalf("resume page = %d, want 1", s.Page())
	}
	if len(s.Visible()) != 0 {
		t.Fatal("working set should be cleared after commit")
	}
	if s.HiddenCount() != 0 {
		t.Fatalf("hidden = %d, want 0 after commit", s.HiddenCount())
	}
}

func TestCommitWithoutHideRestLeavesSeenAlone(t *testing.T) {
	s, _, seen := newScenarioSession(t)
	fetchTwice(t, s)

	if err := s.Commit(context.Background(), review.CommitOptions{}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if seen.Contains("B") {
		t.Fatal("B should not be hidden without hideRest")
	}
}

func TestCommitFailureLeavesSessionUntouched(t *testing.T) {
	s, repo, seen := newScenarioSession(t)
	fetchTwice(t, s)

	repo.mu.Lock()
	repo.updateErr["A"] = errors.New("500 from server")
	repo.mu.Unlock()

	err := s.Commit(context.Background(), review.CommitOptions{HideRest: true})
	var commitErr *review.CommitError
	if !errors.As(err, &commitErr) {
		t.Fatalf("expected *CommitError, got %v", err)
	}
	if commitErr.AssetID != "A" {
		t.Fatalf("CommitError.AssetID = %q, want %q", commitErr.AssetID, "A")
	}

	// No bookkeeping may move on failure
	if len(s.Visible()) != 3 {
		t.Fatalf("visible = %d, want 3 after failed commit", len(s.Visible()))
	}
	if seen.Contains("B") {
		t.Fatal("hideRest must not apply on a failed commit")
	}
	if s.Page() != 3 {
		t.Fatalf("page = %d, want 3 (cursor untouched)", s.Page())
	}
	if s.ConfirmedCount() != 2 {
		t.Fatalf("confirmed = %d, want 2 after failed commit", s.ConfirmedCount())
	}
}

func TestCommitResumePageNeverBelowOne(t *testing.T) {
	// Every visible candidate is accepted, so visibleBefore - confirmed = 0
	repo := newFakeRepo(map[int]domain.SearchPage{
		1: {Assets: []domain.Asset{asset("A", 10, "a.jpg")}, HasNextPage: false},
	})
	est := &fakeEstimator{estimates: map[int64]domain.Estimate{10: exactEstimate(1, 2)}}
	s := review.NewSession(repo, est, geometry.NewAdapter(), newMemSeen(), testCriteria(1), discardLogger())
	s.SetRefetchDelay(0)

	if err := s.FetchNext(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if err := s.Commit(context.Background(), review.CommitOptions{}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if s.Page() != 1 {
		t.Fatalf("page = %d, want 1", s.Page())
	}
}

func TestCommitEmptyBatchIsNoOp(t *testing.T) {
	s, repo, _ := newScenarioSession(t)
	if err := s.FetchNext(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	s.ToggleAccepted("A") // reject the only accepted candidate on page 1

	if err := s.Commit(context.Background(), review.CommitOptions{}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatal("no updates expected for an empty batch")
	}
	if len(s.Visible()) != 2 {
		t.Fatal("empty commit should leave the working set alone")
	}
}

func TestCommitRejectsReentrantCalls(t *testing.T) {
	s, repo, _ := newScenarioSession(t)
	fetchTwice(t, s)

	gate := make(chan struct{})
	started := make(chan struct{}, 2)
	repo.mu.Lock()
	repo.updateGate = gate
	repo.updateStarted = started
	repo.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.Commit(context.Background(), review.CommitOptions{})
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first commit never reached the repository")
	}

	if err := s.Commit(context.Background(), review.CommitOptions{}); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("second commit: got %v, want ErrBusy", err)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first commit: %v", err)
	}
}
