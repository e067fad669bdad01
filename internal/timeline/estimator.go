package timeline

import (
	"sort"
	"time"

	"pindrop/internal/domain"
)

const (
	// A fix this close to the capture time counts as an exact match
	defaultExactWindow = 15 * time.Minute

	// Interpolation only between fixes at most this far apart
	defaultMaxGap = 8 * time.Hour

	// Fixes within this span of the capture time become relevant segments
	segmentSpan = 1 * time.Hour

	// A silence longer than this splits the surrounding track into segments
	segmentSplitGap = 15 * time.Minute
)

// Estimator implements domain.Estimator over a loaded timeline.
// Pure function of the timestamp; safe for concurrent use.
type Estimator struct {
	tl          *Timeline
	exactWindow time.Duration
	maxGap      time.Duration
}

// NewEstimator creates an estimator with default matching windows
func NewEstimator(tl *Timeline) *Estimator {
	return &Estimator{tl: tl, exactWindow: defaultExactWindow, maxGap: defaultMaxGap}
}

// NewEstimatorWithWindows creates an estimator with explicit windows.
// Non-positive values fall back to the defaults.
func NewEstimatorWithWindows(tl *Timeline, exactWindow, maxGap time.Duration) *Estimator {
	e := NewEstimator(tl)
	if exactWindow > 0 {
		e.exactWindow = exactWindow
	}
	if maxGap > 0 {
		e.maxGap = maxGap
	}
	return e
}

// Estimate returns the best point for a capture time. A fix inside the exact
// window wins outright; otherwise the point is linearly interpolated between
// the bracketing fixes when they are close enough together. Timestamps
// outside the timeline's usable range produce no estimate.
func (e *Estimator) Estimate(at time.Time) (*domain.Estimate, bool) {
	fixes := e.tl.fixes

	// Index of the first fix at or after the capture time
	i := sort.Search(len(fixes), func(i int) bool { return !fixes[i].At.Before(at) })

	var before, after *Fix
	if i > 0 {
		before = &fixes[i-1]
	}
	if i < len(fixes) {
		after = &fixes[i]
	}

	if nearest := closer(before, after, at); nearest != nil && absDuration(nearest.At.Sub(at)) <= e.exactWindow {
		return &domain.Estimate{
			Point:    nearest.Point,
			Source:   domain.ConfidenceExact,
			Segments: e.segmentsAround(at),
		}, true
	}

	if before != nil && after != nil && after.At.Sub(before.At) <= e.maxGap {
		return &domain.Estimate{
			Point:    interpolate(*before, *after, at),
			Source:   domain.ConfidenceInterpolated,
			Segments: e.segmentsAround(at),
		}, true
	}

	return nil, false
}

// segmentsAround collects fixes within segmentSpan of the capture time and
// splits them into contiguous segments wherever the track goes quiet.
func (e *Estimator) segmentsAround(at time.Time) []domain.TrackSegment {
	fixes := e.tl.fixes
	lo := at.Add(-segmentSpan)
	hi := at.Add(segmentSpan)

	start := sort.Search(len(fixes), func(i int) bool { return !fixes[i].At.Before(lo) })
	end := sort.Search(len(fixes), func(i int) bool { return fixes[i].At.After(hi) })
	if start >= end {
		return nil
	}

	var segments []domain.TrackSegment
	segStart := start
	for i := start + 1; i <= end; i++ {
		if i == end || fixes[i].At.Sub(fixes[i-1].At) > segmentSplitGap {
			segments = append(segments, makeSegment(fixes[segStart:i]))
			segStart = i
		}
	}
	return segments
}

func makeSegment(fixes []Fix) domain.TrackSegment {
	points := make([]domain.Point, len(fixes))
	for i, f := range fixes {
		points[i] = f.Point
	}
	return domain.TrackSegment{
		Points: points,
		Start:  fixes[0].At,
		End:    fixes[len(fixes)-1].At,
	}
}

// interpolate positions the point between two fixes proportionally to time.
// Linear in lat/lng, which is fine at the distances a few hours of travel
// covers.
func interpolate(before, after Fix, at time.Time) domain.Point {
	span := after.At.Sub(before.At)
	if span <= 0 {
		return before.Point
	}
	frac := float64(at.Sub(before.At)) / float64(span)
	return domain.Point{
		Lat: before.Point.Lat + (after.Point.Lat-before.Point.Lat)*frac,
		Lng: before.Point.Lng + (after.Point.Lng-before.Point.Lng)*frac,
	}
}

func closer(before, after *Fix, at time.Time) *Fix {
	switch {
	case before == nil:
		return after
	case after == nil:
		return before
	case absDuration(before.At.Sub(at)) <= absDuration(after.At.Sub(at)):
		return before
	default:
		return after
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
