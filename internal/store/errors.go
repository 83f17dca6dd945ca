package store

import "errors"

var (
	// ErrReportNotFound is returned by GetReport for an unknown id.
	// Updates never return it: updating a missing report is a no-op.
	ErrReportNotFound = errors.New("report not found")

	// ErrWorkerNotFound is returned by GetWorker for an unknown id.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrEmailAlreadyExists is returned when registering an email that is
	// already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when an account lookup matches
	// nothing.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrLiveFeedUnavailable is returned by the remote adapter when no
	// Redis change feed is configured; callers fall back to the local
	// polling subscription.
	ErrLiveFeedUnavailable = errors.New("live update feed unavailable")

	// ErrBuildingQuery wraps query construction failures.
	ErrBuildingQuery = errors.New("failed to build query")
	// ErrExecutingQuery wraps query execution failures.
	ErrExecutingQuery = errors.New("failed to execute query")
	// ErrScanningRow wraps single-row scan failures.
	ErrScanningRow = errors.New("failed to scan row")
	// ErrScanningRows wraps result-set iteration failures.
	ErrScanningRows = errors.New("error during rows iteration")
)
