package timeline_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pindrop/internal/timeline"
)

const takeoutSample = `{
  "locations": [
    {"latitudeE7": 523700000, "longitudeE7": 48900000, "timestamp": "2023-06-15T12:30:00Z"},
    {"latitudeE7": 520900000, "longitudeE7": 51200000, "timestamp": "2023-06-15T12:00:00Z"},
    {"latitudeE7": 487000000, "longitudeE7": 23500000, "timestampMs": "1686830400000"}
  ]
}`

func TestParseSortsAndScalesCoordinates(t *testing.T) {
	tl, err := timeline.Parse([]byte(takeoutSample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tl.Len() != 3 {
		t.Fatalf("parsed %d fixes, want 3", tl.Len())
	}

	first, last := tl.Span()
	// The timestampMs record (2023-06-15T12:00:00Z) ties with the second
	// RFC3339 one; either way the span must be ordered.
	if !first.Before(last) {
		t.Fatalf("span not ordered: %v .. %v", first, last)
	}
	if want := time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC); !last.Equal(want) {
		t.Fatalf("last fix at %v, want %v", last, want)
	}
}

func TestParseE7Scaling(t *testing.T) {
	tl, err := timeline.Parse([]byte(`{"locations":[
		{"latitudeE7": 523700000, "longitudeE7": -48900000, "timestamp": "2023-06-15T12:00:00Z"}
	]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	est := timeline.NewEstimator(tl)
	got, ok := est.Estimate(time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC))
	if !ok {
		t.Fatal("expected an estimate at the fix time")
	}
	if got.Point.Lat != 52.37 || got.Point.Lng != -4.89 {
		t.Fatalf("point = %v, want (52.37, -4.89)", got.Point)
	}
}

func TestParseSkipsUnusableRecords(t *testing.T) {
	tl, err := timeline.Parse([]byte(`{"locations":[
		{"latitudeE7": 1, "longitudeE7": 1},
		{"latitudeE7": 523700000, "longitudeE7": 48900000, "timestamp": "2023-06-15T12:00:00Z"}
	]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tl.Len() != 1 {
		t.Fatalf("parsed %d fixes, want 1 (timestampless record skipped)", tl.Len())
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	if _, err := timeline.Parse([]byte(`{"locations": []}`)); err == nil {
		t.Fatal("expected error for empty export")
	}
	if _, err := timeline.Parse([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed export")
	}
	if _, err := timeline.Parse([]byte(`{"locations":[{"latitudeE7": 1, "longitudeE7": 1}]}`)); err == nil {
		t.Fatal("expected error when no record has a usable timestamp")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Records.json")
	if err := os.WriteFile(path, []byte(takeoutSample), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	tl, err := timeline.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tl.Len() != 3 {
		t.Fatalf("loaded %d fixes, want 3", tl.Len())
	}

	if _, err := timeline.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
