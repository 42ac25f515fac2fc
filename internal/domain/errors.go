package domain

import "errors"

var (
	// ErrInvalidQuery is returned when the query text is empty or malformed.
	// This is a caller error and is never retried.
	ErrInvalidQuery = errors.New("query text is empty or invalid")

	// ErrBackendFailure is returned when a catalog backend is unreachable,
	// rejects our credentials, or returns a malformed response.
	ErrBackendFailure = errors.New("catalog backend request failed")

	// ErrCacheMiss is returned when data is not found in cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrSummaryFailure is returned by the expensive summary path; callers
	// recover by switching to the deterministic path.
	ErrSummaryFailure = errors.New("summary generation failed")
)
