package geometry

import "pindrop/internal/domain"

// Adapter implements domain.GeometryAdapter. A one-point segment renders as
// a marker, longer runs as a polyline; empty segments render as nothing.
type Adapter struct{}

// NewAdapter creates a geometry adapter
func NewAdapter() Adapter { return Adapter{} }

func (Adapter) ToRenderable(seg domain.TrackSegment) (domain.Geometry, bool) {
	switch len(seg.Points) {
	case 0:
		return domain.Geometry{}, false
	case 1:
		return domain.Geometry{Kind: domain.GeometryMarker, Points: seg.Points}, true
	default:
		return domain.Geometry{Kind: domain.GeometryPolyline, Points: seg.Points}, true
	}
}
