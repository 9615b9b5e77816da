package domain

// DownloadTask is one resolved, deduplicated unit of work: a single
// artifact plus every on-disk path it must end up at. Exactly one
// task exists per artifact id within a run, so at most one remote
// fetch happens; the remaining targets are local copies made after
// the first path is materialised.
type DownloadTask struct {
	// Artifact is the file to fetch or copy.
	Artifact Artifact

	// Targets are the absolute target paths, in resolution order.
	// Never empty.
	Targets []string
}

// LedgerEntry is one row of a progress ledger: the durable record
// that an artifact was downloaded to (or validated at) a path.
type LedgerEntry struct {
	// Key identifies the entry. The downloaded ledger keys on
	// artifact id; the validated ledger keys on target path.
	Key string

	// DocumentID is the owning document id (empty for attachments
	// and for validated entries).
	DocumentID string

	// Path is the on-disk path recorded for the entry.
	Path string

	// Checksum is the content digest recorded at validation time,
	// empty when the artifact is size-checked.
	Checksum string

	// Size is the byte size recorded at validation time, used for
	// artifacts without a checksum.
	Size int64
}
