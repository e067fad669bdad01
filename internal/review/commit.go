package review

import (
	"context"
	"sync"
	"time"

	"pindrop/internal/domain"
)

// CommitOptions tunes a commit batch
type CommitOptions struct {
	// HideRest adds every visible-but-unaccepted asset to the seen set on
	// full success, so skipped items don't resurface next session.
	HideRest bool
}

type confirmedEdit struct {
	assetID string
	point   domain.Point
}

// Commit writes every accepted edit to the asset store as one batch.
//
// The batch is all-or-nothing from the session's point of view: updates fan
// out concurrently, and if any fails the pending map, seen set, and cursor
// are left exactly as they were (the error reports the first failing asset;
// updates that had already succeeded on the server are not rolled back).
//
// On full success the unaccepted remainder is optionally hidden, the
// accumulator resets, and the cursor is repositioned at the page just before
// the assets still needing review:
//
//	page = max(1, ceil((visibleBefore - confirmed) / pageSize))
//
// visibleBefore is counted before hide-rest removals, so with HideRest the
// resume page can be off by a page in either direction. Known approximation,
// kept as-is.
//
// A refetch is scheduled after a short delay rather than run inline, because
// the store recomputes location metadata asynchronously; callers may still
// need a manual refresh if the server is slow. Returns domain.ErrBusy if a
// commit is already running.
func (s *Session) Commit(ctx context.Context, opts CommitOptions) error {
	s.mu.Lock()
	if s.committing {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	s.committing = true

	var confirmed []confirmedEdit
	var rest []string
	for _, id := range s.order {
		c := s.pending[id]
		if c.Accepted && c.Estimate != nil {
			confirmed = append(confirmed, confirmedEdit{assetID: id, point: c.Estimate.Point})
		} else {
			rest = append(rest, id)
		}
	}
	visibleBefore := len(s.order)
	delay := s.refetchDelay
	onRefetch := s.onRefetch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.committing = false
		s.mu.Unlock()
	}()

	if len(confirmed) == 0 {
		return nil
	}

	if err := s.updateAll(ctx, confirmed); err != nil {
		s.logger.Error("commit aborted", "error", err, "batch", len(confirmed))
		return err
	}

	if opts.HideRest && len(rest) > 0 {
		if err := s.seen.Add(rest...); err != nil {
			// Updates are already on the server; don't fail the commit over
			// seen-set bookkeeping.
			s.logger.Error("failed to hide remaining assets", "error", err, "count", len(rest))
		}
	}

	pageSize := s.acc.Criteria().PageSize
	resume := (visibleBefore - len(confirmed) + pageSize - 1) / pageSize
	if resume < 1 {
		resume = 1
	}

	s.acc.Reset()
	s.acc.SetPage(resume)
	s.mu.Lock()
	s.pending = make(map[string]*domain.Candidate)
	s.order = nil
	s.hidden = 0
	s.mu.Unlock()

	s.logger.Info("committed edits", "count", len(confirmed), "hidRest", opts.HideRest && len(rest) > 0, "resumePage", resume)

	if delay > 0 {
		time.AfterFunc(delay, func() {
			err := s.FetchNext(context.Background())
			if err != nil {
				s.logger.Warn("post-commit refetch failed", "error", err)
			}
			if onRefetch != nil {
				onRefetch(err)
			}
		})
	}
	return nil
}

// updateAll fans the per-asset updates out concurrently and waits for all of
// them, returning a *CommitError for the first failure in batch order.
func (s *Session) updateAll(ctx context.Context, edits []confirmedEdit) error {
	errs := make([]error, len(edits))
	var wg sync.WaitGroup
	for i, edit := range edits {
		wg.Add(1)
		go func(i int, edit confirmedEdit) {
			defer wg.Done()
			if err := s.repo.UpdateLocation(ctx, edit.assetID, edit.point); err != nil {
				errs[i] = &CommitError{AssetID: edit.assetID, Err: err}
			}
		}(i, edit)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
