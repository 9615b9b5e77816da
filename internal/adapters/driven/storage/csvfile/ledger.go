package csvfile

import (
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
)

// Ledger file names, shared across object types within a phase.
const (
	downloadedFile = "downloaded_versions.csv"
	validatedFile  = "validated_versions.csv"
)

// Ensure Ledger implements the interface.
var _ driven.Ledger = (*Ledger)(nil)

// rowCodec maps ledger entries to and from CSV rows.
type rowCodec struct {
	header []string
	encode func(domain.LedgerEntry) []string
	decode func([]string) (domain.LedgerEntry, error)
}

// Ledger is a CSV-backed progress ledger. The whole file is loaded
// into memory on construction; reads and writes are served from the
// in-memory map under a mutex, and Flush rewrites the file.
type Ledger struct {
	path  string
	codec rowCodec

	mu    sync.Mutex
	order []string
	data  map[string]domain.LedgerEntry
}

// NewDownloadedLedger opens the downloaded ledger under dataDir,
// keyed by artifact id. An absent file means nothing downloaded yet.
func NewDownloadedLedger(dataDir string) (*Ledger, error) {
	return open(filepath.Join(dataDir, downloadedFile), rowCodec{
		header: []string{"Id", "ContentDocumentId", "Path on disk"},
		encode: func(e domain.LedgerEntry) []string {
			return []string{e.Key, e.DocumentID, e.Path}
		},
		decode: func(row []string) (domain.LedgerEntry, error) {
			if len(row) < 3 {
				return domain.LedgerEntry{}, fmt.Errorf("malformed downloaded row")
			}
			return domain.LedgerEntry{Key: row[0], DocumentID: row[1], Path: row[2]}, nil
		},
	})
}

// NewValidatedLedger opens the validated ledger under dataDir, keyed
// by target path with the checksum or size observed at validation.
func NewValidatedLedger(dataDir string) (*Ledger, error) {
	return open(filepath.Join(dataDir, validatedFile), rowCodec{
		header: []string{"Path", "Checksum", "ContentSize"},
		encode: func(e domain.LedgerEntry) []string {
			return []string{e.Path, e.Checksum, strconv.FormatInt(e.Size, 10)}
		},
		decode: func(row []string) (domain.LedgerEntry, error) {
			if len(row) < 3 {
				return domain.LedgerEntry{}, fmt.Errorf("malformed validated row")
			}
			size, err := strconv.ParseInt(row[2], 10, 64)
			if err != nil {
				return domain.LedgerEntry{}, fmt.Errorf("content size: %w", err)
			}
			return domain.LedgerEntry{Key: row[0], Path: row[0], Checksum: row[1], Size: size}, nil
		},
	})
}

func open(path string, codec rowCodec) (*Ledger, error) {
	l := &Ledger{
		path:  path,
		codec: codec,
		data:  make(map[string]domain.LedgerEntry),
	}
	rows, ok, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if ok {
		for _, row := range rows {
			entry, err := codec.decode(row)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			l.record(entry)
		}
	}
	return l, nil
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
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.data[key]
	return ok
}

// Record implements driven.Ledger.
func (l *Ledger) Record(entry domain.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(entry)
}

func (l *Ledger) record(entry domain.LedgerEntry) {
	if _, ok := l.data[entry.Key]; !ok {
		l.order = append(l.order, entry.Key)
	}
	l.data[entry.Key] = entry
}

// Remove implements driven.Ledger.
func (l *Ledger) Remove(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.data[key]; !ok {
		return
	}
	delete(l.data, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
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
	rows := make([][]string, 0, len(l.order))
	for _, key := range l.order {
		rows = append(rows, l.codec.encode(l.data[key]))
	}
	return writeRows(l.path, l.codec.header, rows)
}

// Path returns the ledger's file path.
func (l *Ledger) Path() string {
	return l.path
}
