package domain

import "errors"

var (
	// ErrNotFound signals that no catalog item matches the query.
	ErrNotFound = errors.New("not found")
	// ErrNotLoaded signals a query against an index that never loaded.
	ErrNotLoaded = errors.New("catalog not loaded")
	// ErrSnapshotUnavailable signals a missing or unreadable snapshot file.
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")
	// ErrEmptyCatalog signals that every snapshot row was rejected.
	ErrEmptyCatalog = errors.New("catalog is empty")
)
