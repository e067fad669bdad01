package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrAssetNotFound indicates the requested asset does not exist
	ErrAssetNotFound = errors.New("asset not found")

	// ErrServerOffline indicates the asset server is unreachable
	ErrServerOffline = errors.New("asset server is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrBusy indicates a fetch or commit is already in flight
	ErrBusy = errors.New("operation already in progress")
)
