package immich_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pindrop/internal/domain"
	"pindrop/internal/immich"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const searchResponseBody = `{
  "assets": {
    "items": [
      {
        "id": "asset-1",
        "originalFileName": "IMG_0001.jpg",
        "fileCreatedAt": "2023-06-15T12:05:00Z",
        "exifInfo": {"model": "Pixel 7", "dateTimeOriginal": "2023-06-15T12:00:00Z"}
      },
      {
        "id": "asset-2",
        "originalFileName": "IMG_0002.jpg",
        "fileCreatedAt": "2023-06-15T13:00:00Z"
      }
    ],
    "nextPage": "2"
  }
}`

func TestSearchAssets(t *testing.T) {
	var gotReq map[string]any
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/search/metadata" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotHeader = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, searchResponseBody)
	}))
	defer srv.Close()

	c := immich.NewClient(srv.URL, "test-key", discardLogger())
	criteria := domain.FilterCriteria{
		NotInAlbum:  true,
		CameraModel: "Pixel 7",
		TagIDs:      []string{"tag-1"},
		PageSize:    50,
	}
	page, err := c.SearchAssets(context.Background(), criteria, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotHeader.Get("x-api-key") != "test-key" {
		t.Errorf("x-api-key = %q, want %q", gotHeader.Get("x-api-key"), "test-key")
	}
	if gotReq["page"] != float64(1) || gotReq["size"] != float64(50) {
		t.Errorf("paging = %v/%v, want 1/50", gotReq["page"], gotReq["size"])
	}
	if gotReq["withExif"] != true || gotReq["isNotInAlbum"] != true {
		t.Errorf("flags = %v/%v, want true/true", gotReq["withExif"], gotReq["isNotInAlbum"])
	}
	if gotReq["model"] != "Pixel 7" {
		t.Errorf("model = %v, want Pixel 7", gotReq["model"])
	}

	if len(page.Assets) != 2 {
		t.Fatalf("got %d assets, want 2", len(page.Assets))
	}
	if !page.HasNextPage {
		t.Error("nextPage was set, HasNextPage should be true")
	}

	// EXIF capture time wins over the file timestamp when present
	want := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	if !page.Assets[0].TakenAt.Equal(want) {
		t.Errorf("asset-1 takenAt = %v, want %v", page.Assets[0].TakenAt, want)
	}
	if page.Assets[0].CameraModel != "Pixel 7" {
		t.Errorf("asset-1 model = %q, want Pixel 7", page.Assets[0].CameraModel)
	}
	fallback := time.Date(2023, 6, 15, 13, 0, 0, 0, time.UTC)
	if !page.Assets[1].TakenAt.Equal(fallback) {
		t.Errorf("asset-2 takenAt = %v, want file timestamp %v", page.Assets[1].TakenAt, fallback)
	}
}

func TestSearchAssetsLastPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"assets": {"items": [], "nextPage": null}}`)
	}))
	defer srv.Close()

	c := immich.NewClient(srv.URL, "k", discardLogger())
	page, err := c.SearchAssets(context.Background(), domain.FilterCriteria{PageSize: 50}, 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.HasNextPage {
		t.Error("null nextPage should map to HasNextPage = false")
	}
}

func TestUpdateLocation(t *testing.T) {
	var gotBody map[string]float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/assets/asset-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := immich.NewClient(srv.URL, "k", discardLogger())
	err := c.UpdateLocation(context.Background(), "asset-1", domain.Point{Lat: 52.37, Lng: 4.89})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotBody["latitude"] != 52.37 || gotBody["longitude"] != 4.89 {
		t.Fatalf("body = %v, want latitude/longitude 52.37/4.89", gotBody)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrAuthFailed},
		{http.StatusForbidden, domain.ErrAuthFailed},
		{http.StatusNotFound, domain.ErrAssetNotFound},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c := immich.NewClient(srv.URL, "k", discardLogger())
		if err := c.Ping(context.Background()); !errors.Is(err, tt.want) {
			t.Errorf("status %d: got %v, want %v", tt.status, err, tt.want)
		}
		srv.Close()
	}
}

func TestUnreachableServerMapsToOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the request

	c := immich.NewClient(srv.URL, "k", discardLogger())
	if err := c.Ping(context.Background()); !errors.Is(err, domain.ErrServerOffline) {
		t.Fatalf("got %v, want ErrServerOffline", err)
	}
}
