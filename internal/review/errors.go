package review

import "fmt"

// FetchError wraps a store failure during page accumulation.
// Accumulator state is unchanged when one is returned.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// CommitError reports the first per-asset update failure that aborted a
// commit batch. The session's own bookkeeping is untouched, but updates
// issued before the failing one may already have landed on the server;
// the core cannot roll those back.
type CommitError struct {
	AssetID string
	Err     error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit asset %s: %v", e.AssetID, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
