package repositories

import "errors"

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("repository: record not found")

	// ErrDuplicate is returned when a unique key rejects the write.
	ErrDuplicate = errors.New("repository: duplicate key")

	// ErrInUse is returned when a foreign key blocks a delete.
	ErrInUse = errors.New("repository: record is referenced")

	ErrBuildQuery = errors.New("repository: failed to build query")
	ErrExecQuery  = errors.New("repository: failed to execute query")
	ErrScanRow    = errors.New("repository: failed to scan row")
)
