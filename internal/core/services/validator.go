package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"sync"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
	"github.com/forcearc/forcearc/internal/logger"
)

// Validator checks downloaded files against their expected checksum
// (content versions) or byte size (legacy attachments). Results are
// recorded in the validated ledger, keyed by target path, so re-runs
// trust prior results instead of re-hashing terabytes of archive.
type Validator struct {
	validated  driven.Ledger
	downloaded driven.Ledger

	revalidate    bool
	removeInvalid bool

	mu    sync.Mutex
	stats validationTotals
}

type validationTotals struct {
	total     int
	processed int
	invalid   int
	removed   int
}

// NewValidator creates a validator over the two ledgers.
func NewValidator(validated, downloaded driven.Ledger, revalidate, removeInvalid bool) *Validator {
	return &Validator{
		validated:     validated,
		downloaded:    downloaded,
		revalidate:    revalidate,
		removeInvalid: removeInvalid,
	}
}

// Run validates every target of every task on a bounded pool and
// returns the outcome totals. Invalid files are a first-class status,
// not an error; with removeInvalid set they are deleted from disk and
// from both ledgers so the next download run re-fetches them.
func (v *Validator) Run(ctx context.Context, tasks []domain.DownloadTask, workers int) (total, processed, invalid, removed int) {
	v.mu.Lock()
	v.stats = validationTotals{total: CountTargets(tasks)}
	v.mu.Unlock()

	runTasks(ctx, workers, tasks, func(task domain.DownloadTask) {
		for _, target := range task.Targets {
			v.checkTarget(task.Artifact, target)
		}
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.stats
	return s.total, s.processed, s.invalid, s.removed
}

func (v *Validator) checkTarget(artifact domain.Artifact, target string) {
	bad, reason := v.verify(artifact, target)

	didRemove := false
	if bad && v.removeInvalid {
		v.discard(artifact, target)
		didRemove = true
	}

	v.mu.Lock()
	v.stats.processed++
	if bad {
		v.stats.invalid++
	}
	if didRemove {
		v.stats.removed++
	}
	processed, totalN := v.stats.processed, v.stats.total
	v.mu.Unlock()

	if bad {
		logger.Warn("[%d/%d] invalid %s => %s (%s)", processed, totalN, artifact.ID(), target, reason)
	} else {
		logger.Debug("[%d/%d] valid %s => %s", processed, totalN, artifact.ID(), target)
	}
}

// verify reports whether the target is invalid and why.
func (v *Validator) verify(artifact domain.Artifact, target string) (bool, string) {
	info, err := os.Stat(target)
	if err != nil {
		return true, "file does not exist"
	}

	expected, hasChecksum := artifact.Checksum()

	// A prior run already computed this target's digest or size.
	// Trust it unless the caller forces re-validation.
	if entry, ok := v.validated.Get(target); ok && !v.revalidate {
		if hasChecksum {
			if entry.Checksum != expected {
				return true, "checksum mismatch"
			}
			return false, ""
		}
		if entry.Size != artifact.Size() {
			return true, "size mismatch"
		}
		return false, ""
	}

	if !hasChecksum {
		v.validated.Record(domain.LedgerEntry{Key: target, Path: target, Size: info.Size()})
		if info.Size() != artifact.Size() {
			return true, "size mismatch"
		}
		return false, ""
	}

	sum, err := md5File(target)
	if err != nil {
		return true, err.Error()
	}
	v.validated.Record(domain.LedgerEntry{Key: target, Path: target, Checksum: sum})
	if sum != expected {
		return true, "checksum mismatch"
	}
	return false, ""
}

// discard removes an invalid target from disk and from both ledgers.
// The downloaded entry goes only when it points at this exact path;
// a duplicate path recorded elsewhere may still be good.
func (v *Validator) discard(artifact domain.Artifact, target string) {
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		logger.Warn("remove %s: %v", target, err)
	}
	v.validated.Remove(target)
	if entry, ok := v.downloaded.Get(artifact.ID()); ok && entry.Path == target {
		v.downloaded.Remove(artifact.ID())
	}
}

func md5File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
