package domain

import (
	"context"
	"time"
)

// AssetRepository: network operations against the asset store
// (implemented by the immich client).
type AssetRepository interface {
	// SearchAssets returns one page of assets matching the criteria.
	// Pages are 1-based; ordering is stable for a given store snapshot.
	SearchAssets(ctx context.Context, criteria FilterCriteria, page int) (SearchPage, error)

	// UpdateLocation writes new coordinates to a single asset
	UpdateLocation(ctx context.Context, assetID string, point Point) error
}

// Estimator produces a location estimate for a capture timestamp.
// Pure function of the timestamp plus whatever timeline state the
// implementation was constructed with.
type Estimator interface {
	Estimate(at time.Time) (*Estimate, bool)
}

// GeometryAdapter converts track segments into renderable shapes.
// Segments that can't be rendered return ok=false and are dropped silently.
type GeometryAdapter interface {
	ToRenderable(seg TrackSegment) (Geometry, bool)
}

// SeenStore is the durable set of asset ids the user has hidden from review.
// Survives restarts; Contains must be cheap, it runs once per projected
// candidate on every refresh.
type SeenStore interface {
	Add(ids ...string) error
	Remove(ids ...string) error
	Contains(id string) bool
	Close() error
}
