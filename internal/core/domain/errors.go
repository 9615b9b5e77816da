package domain

import "errors"

// Domain errors represent the failure taxonomy of an archive run.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidConfig indicates the configuration is unusable
	// (bad field reference, empty data dir, malformed date bound).
	// Fatal: surfaced before any I/O happens.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMetadataFetch indicates a remote listing query failed.
	// Fatal for the object type being processed; the run continues
	// with the remaining object types.
	ErrMetadataFetch = errors.New("metadata fetch failed")

	// ErrFetch indicates a single-file remote fetch failed.
	// Recorded per task; the file stays absent from the downloaded
	// ledger so a future run retries it.
	ErrFetch = errors.New("file fetch failed")

	// ErrLedgerIO indicates a durable ledger write failed.
	// Fatal for the run; progress already flushed remains valid.
	ErrLedgerIO = errors.New("ledger write failed")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
