package driven

import "github.com/forcearc/forcearc/internal/core/domain"

// Ledger is the durable record of completed work, shared by every
// worker within a phase. Implementations load fully into memory,
// serve reads and writes from there, and persist on Flush.
//
// The engine calls Flush at the end of each object type and at the
// end of the run. A crash between flushes loses at most the unflushed
// tail; the next run recomputes that tail from the filesystem.
type Ledger interface {
	// Get returns the entry for a key, or (zero, false).
	Get(key string) (domain.LedgerEntry, bool)

	// Has reports whether an entry exists for a key.
	Has(key string) bool

	// Record inserts or replaces the entry for entry.Key.
	Record(entry domain.LedgerEntry)

	// Remove deletes the entry for a key, if present.
	Remove(key string)

	// Len returns the number of entries held.
	Len() int

	// Flush persists the current state durably.
	Flush() error
}
