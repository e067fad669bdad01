package immich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"pindrop/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Pindrop/1.0"
)

// Client implements domain.AssetRepository against an Immich server
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Immich API client
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated HTTP request with a JSON body
func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("immich request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("immich request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrAssetNotFound
	default:
		c.logger.Error("immich request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// SearchAssets returns one page of assets without GPS data matching the
// filter. Pages are 1-based; Immich signals the next page as a string or
// null when the result set is exhausted.
func (c *Client) SearchAssets(ctx context.Context, criteria domain.FilterCriteria, page int) (domain.SearchPage, error) {
	req := searchRequest{
		Page:     page,
		Size:     criteria.PageSize,
		WithExif: true,
	}
	if criteria.NotInAlbum {
		notInAlbum := true
		req.IsNotInAlbum = &notInAlbum
	}
	if len(criteria.TagIDs) > 0 {
		req.TagIDs = criteria.TagIDs
	}
	if criteria.CameraModel != "" {
		model := criteria.CameraModel
		req.Model = &model
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/search/metadata", req)
	if err != nil {
		return domain.SearchPage{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return domain.SearchPage{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return domain.SearchPage{
		Assets:      mapAssets(resp.Assets.Items),
		HasNextPage: resp.Assets.NextPage != nil,
	}, nil
}

// UpdateLocation writes new coordinates to a single asset
func (c *Client) UpdateLocation(ctx context.Context, assetID string, point domain.Point) error {
	payload := updateRequest{Latitude: point.Lat, Longitude: point.Lng}
	_, err := c.doRequest(ctx, http.MethodPut, "/api/assets/"+assetID, payload)
	return err
}

// Ping verifies connectivity and the API key
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/api/server/ping", nil)
	return err
}
