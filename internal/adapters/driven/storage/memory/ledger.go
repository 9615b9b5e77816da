package memory

import (
	"sync"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
)

// Ensure Ledger implements the interface.
var _ driven.Ledger = (*Ledger)(nil)

// Ledger is an in-memory progress ledger. Flush is a no-op unless an
// error is injected via FlushErr.
type Ledger struct {
	mu      sync.Mutex
	data    map[string]domain.LedgerEntry
	flushes int

	// FlushErr, when set, is returned by every Flush call.
	FlushErr error
}

// NewLedger creates an empty in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{data: make(map[string]domain.LedgerEntry)}
}

// Get implements driven.Ledger.
func (l *Ledger) Get(key string) (domain.LedgerEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.data[key]
	return entry, ok
}

// Has implements driven.Ledger.
func (l *Ledger) Has(key string) bool {
	_, ok := l.Get(key)
	return ok
}

// Record implements driven.Ledger.
func (l *Ledger) Record(entry domain.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data[entry.Key] = entry
}

// Remove implements driven.Ledger.
func (l *Ledger) Remove(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.data, key)
}

// Len implements driven.Ledger.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.data)
}

// Flush implements driven.Ledger.
func (l *Ledger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flushes++
	return l.FlushErr
}

// Flushes returns how many times Flush was called.
func (l *Ledger) Flushes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flushes
}
