package domain

import (
	"fmt"
	"time"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the point for display (5 decimals is roughly 1m precision)
func (p Point) String() string {
	return fmt.Sprintf("%.5f, %.5f", p.Lat, p.Lng)
}

// ConfidenceSource describes how an estimate's point was derived
type ConfidenceSource int

const (
	// ConfidenceExact means a recorded fix fell within the exact-match window
	ConfidenceExact ConfidenceSource = iota

	// ConfidenceInterpolated means the point was interpolated between two fixes
	ConfidenceInterpolated

	// ConfidenceManual means the user placed the point themselves
	ConfidenceManual
)

// String returns a human-readable representation of the confidence source
func (c ConfidenceSource) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceInterpolated:
		return "interpolated"
	case ConfidenceManual:
		return "manual"
	default:
		return "unknown"
	}
}

// TrackSegment is a contiguous run of timeline fixes around an estimate.
// Opaque to the review core; the geometry adapter turns it into something
// a map layer can draw.
type TrackSegment struct {
	Points []Point   // Ordered fixes
	Start  time.Time // Time of first fix
	End    time.Time // Time of last fix
}

// Estimate is the estimator's best guess for where an asset was captured
type Estimate struct {
	Point    Point            // Best point
	Source   ConfidenceSource // How the point was derived
	Segments []TrackSegment   // Track context relevant to the estimate
}

// Asset is a photo record from the external store. Read-only here; the only
// write path back to the store is the per-asset location update during commit.
type Asset struct {
	ID               string    // Store-assigned unique identifier
	OriginalFileName string    // Filename as uploaded
	TakenAt          time.Time // Capture timestamp
	CameraModel      string    // EXIF camera model, if any
}

// GeometryKind distinguishes renderable shapes
type GeometryKind int

const (
	GeometryMarker GeometryKind = iota
	GeometryPolyline
)

// Geometry is a renderable shape derived from a track segment
type Geometry struct {
	Kind   GeometryKind
	Points []Point
}

// Candidate pairs an asset with its estimated location and the user's
// current accept/reject decision.
type Candidate struct {
	Asset    Asset
	Estimate *Estimate // nil when the estimator had nothing for the timestamp
	Geometry []Geometry
	Accepted bool
}

// FilterCriteria scopes a review session. Criteria are immutable while a
// session runs; changing them starts accumulation over from page 1.
type FilterCriteria struct {
	TagIDs      []string // Restrict to assets carrying all of these tags
	NotInAlbum  bool     // Only assets not in any album
	CameraModel string   // EXIF model filter, empty = any
	PageSize    int      // Assets per fetched page, must be > 0
}

// Equal reports whether two criteria describe the same result domain
func (c FilterCriteria) Equal(o FilterCriteria) bool {
	if c.NotInAlbum != o.NotInAlbum || c.CameraModel != o.CameraModel || c.PageSize != o.PageSize {
		return false
	}
	if len(c.TagIDs) != len(o.TagIDs) {
		return false
	}
	for i, id := range c.TagIDs {
		if o.TagIDs[i] != id {
			return false
		}
	}
	return true
}

// SearchPage is one page of a paginated asset search
type SearchPage struct {
	Assets      []Asset
	HasNextPage bool
}
