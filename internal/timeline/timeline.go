package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"pindrop/internal/domain"
)

// Fix is a single recorded position
type Fix struct {
	Point domain.Point
	At    time.Time
}

// Timeline is a time-ordered movement record loaded from a location-history
// export (Google Takeout "Records.json" layout).
type Timeline struct {
	fixes []Fix
}

// recordsFile mirrors the Takeout layout. Coordinates are E7-scaled ints;
// newer exports carry an RFC3339 timestamp, older ones epoch millis.
type recordsFile struct {
	Locations []struct {
		LatitudeE7  int64  `json:"latitudeE7"`
		LongitudeE7 int64  `json:"longitudeE7"`
		Timestamp   string `json:"timestamp"`
		TimestampMs string `json:"timestampMs"`
	} `json:"locations"`
}

// NewTimeline builds a timeline from fixes directly, sorting by time
func NewTimeline(fixes []Fix) *Timeline {
	sorted := make([]Fix, len(fixes))
	copy(sorted, fixes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })
	return &Timeline{fixes: sorted}
}

// LoadFile reads a location-history export from disk
func LoadFile(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline: %w", err)
	}
	return Parse(data)
}

// Parse decodes a location-history export and returns a sorted timeline
func Parse(data []byte) (*Timeline, error) {
	var file recordsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse timeline: %w", err)
	}
	if len(file.Locations) == 0 {
		return nil, errors.New("timeline contains no locations")
	}

	fixes := make([]Fix, 0, len(file.Locations))
	for _, loc := range file.Locations {
		at, ok := parseTimestamp(loc.Timestamp, loc.TimestampMs)
		if !ok {
			continue
		}
		fixes = append(fixes, Fix{
			Point: domain.Point{
				Lat: float64(loc.LatitudeE7) / 1e7,
				Lng: float64(loc.LongitudeE7) / 1e7,
			},
			At: at,
		})
	}
	if len(fixes) == 0 {
		return nil, errors.New("timeline contains no usable locations")
	}

	sort.Slice(fixes, func(i, j int) bool { return fixes[i].At.Before(fixes[j].At) })
	return &Timeline{fixes: fixes}, nil
}

func parseTimestamp(rfc3339, epochMs string) (time.Time, bool) {
	if rfc3339 != "" {
		if t, err := time.Parse(time.RFC3339, rfc3339); err == nil {
			return t, true
		}
	}
	if epochMs != "" {
		if ms, err := strconv.ParseInt(epochMs, 10, 64); err == nil {
			return time.UnixMilli(ms), true
		}
	}
	return time.Time{}, false
}

// Len returns the number of fixes
func (t *Timeline) Len() int { return len(t.fixes) }

// Span returns the time range the timeline covers
func (t *Timeline) Span() (time.Time, time.Time) {
	return t.fixes[0].At, t.fixes[len(t.fixes)-1].At
}
