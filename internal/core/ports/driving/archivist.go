package driving

import "context"

// Archivist exposes the two top-level operations of the engine.
type Archivist interface {
	// Download archives every configured object type. It returns a
	// report even when some object types failed; the error is
	// non-nil only for run-fatal conditions (ledger write failure).
	Download(ctx context.Context, opts DownloadOptions) (*DownloadReport, error)

	// Validate checks the on-disk archive against the metadata
	// snapshots. Same error contract as Download.
	Validate(ctx context.Context, opts ValidateOptions) (*ValidationReport, error)
}

// DownloadOptions tunes a download run.
type DownloadOptions struct {
	// MaxWorkers bounds the worker pool. Zero means the runtime
	// default (GOMAXPROCS).
	MaxWorkers int
}

// ValidateOptions tunes a validation run.
type ValidateOptions struct {
	// MaxWorkers bounds the worker pool. Zero means the runtime
	// default (GOMAXPROCS).
	MaxWorkers int

	// Revalidate recomputes checksums even for entries already
	// recorded as valid in the validated ledger.
	Revalidate bool

	// RemoveInvalid deletes the ledger entries and on-disk files of
	// invalid artifacts so the next download run re-fetches them.
	RemoveInvalid bool
}

// DownloadReport aggregates download statistics across object types.
type DownloadReport struct {
	// Total is the number of resolved download tasks targets.
	Total int

	// Processed counts targets handled to completion (any outcome).
	Processed int

	// Skipped counts targets already present and recorded.
	Skipped int

	// Downloaded counts remote fetches performed.
	Downloaded int

	// Copied counts targets satisfied by a local duplicate copy.
	Copied int

	// Errors counts targets that ended in a task error.
	Errors int

	// FailedObjects counts object types abandoned on metadata
	// fetch errors.
	FailedObjects int

	// Size is the byte total of processed artifacts.
	Size int64
}

// Success reports whether the run finished without errors.
func (r *DownloadReport) Success() bool {
	return r.Errors == 0 && r.FailedObjects == 0
}

// ValidationReport aggregates validation statistics across object types.
type ValidationReport struct {
	// Total is the number of targets checked.
	Total int

	// Processed counts targets handled to completion.
	Processed int

	// Invalid counts targets with a missing file or a checksum or
	// size mismatch.
	Invalid int

	// Removed counts invalid targets removed from disk and ledger.
	Removed int

	// FailedObjects counts object types abandoned on metadata
	// fetch errors.
	FailedObjects int
}

// Success reports whether every checked target was valid.
func (r *ValidationReport) Success() bool {
	return r.Invalid == 0 && r.FailedObjects == 0
}
