package review

import (
	"strings"

	"pindrop/internal/domain"
)

// Project maps accumulated assets to review candidates. Pure, no caching:
// it runs over the full accumulated list on every accumulation change so a
// newly loaded timeline or page is always reflected.
//
// A candidate starts accepted only when all three hold: the estimator
// produced a point, the point came from an exact track match, and the
// filename doesn't look like a screenshot.
func Project(assets []domain.Asset, estimator domain.Estimator, geometry domain.GeometryAdapter) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(assets))
	for _, asset := range assets {
		c := domain.Candidate{Asset: asset}
		if est, ok := estimator.Estimate(asset.TakenAt); ok {
			c.Estimate = est
			c.Geometry = renderSegments(est.Segments, geometry)
			c.Accepted = est.Source == domain.ConfidenceExact && !LooksLikeScreenshot(asset.OriginalFileName)
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// renderSegments converts segments to renderable geometry, silently dropping
// anything the adapter can't express.
func renderSegments(segments []domain.TrackSegment, geometry domain.GeometryAdapter) []domain.Geometry {
	var out []domain.Geometry
	for _, seg := range segments {
		if g, ok := geometry.ToRenderable(seg); ok {
			out = append(out, g)
		}
	}
	return out
}

// Screenshot filename prefixes used by the common platforms
var screenshotMarkers = []string{
	"screenshot",
	"screen shot",
	"screen_shot",
	"screencap",
	"scrnshot",
	"simulator screen",
}

// LooksLikeScreenshot reports whether a filename matches a known
// screen-capture naming pattern. Screenshots carry the device clock but
// rarely the device location, so they never default to accepted.
func LooksLikeScreenshot(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range screenshotMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
