package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
	"github.com/forcearc/forcearc/internal/logger"
)

// Downloader executes resolved download tasks against the remote
// collaborator, recording completions in the downloaded ledger.
// One Downloader is shared by all workers of a phase.
type Downloader struct {
	client   driven.SalesforceClient
	ledger   driven.Ledger
	governor *Governor

	mu    sync.Mutex
	stats downloadTotals
}

// downloadTotals accumulates per-target outcomes for one run.
type downloadTotals struct {
	total      int
	processed  int
	skipped    int
	downloaded int
	copied     int
	errors     int
	size       int64
}

// NewDownloader creates a downloader. governor may be nil.
func NewDownloader(client driven.SalesforceClient, ledger driven.Ledger, governor *Governor) *Downloader {
	return &Downloader{client: client, ledger: ledger, governor: governor}
}

// Run executes the tasks on a bounded pool and returns the outcome
// totals. Per-task errors are recorded, never propagated; the tasks
// that error stay absent from the ledger so a future run retries them.
func (d *Downloader) Run(ctx context.Context, tasks []domain.DownloadTask, workers int) (total, processed, skipped, downloaded, copied, errs int, size int64) {
	d.mu.Lock()
	d.stats = downloadTotals{total: CountTargets(tasks)}
	d.mu.Unlock()

	runTasks(ctx, workers, tasks, func(task domain.DownloadTask) {
		d.processTask(ctx, task)
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.stats
	return s.total, s.processed, s.skipped, s.downloaded, s.copied, s.errors, s.size
}

// processTask materialises every target of one consolidated task.
// The first target satisfied from the remote side (or found on disk)
// becomes the local source for the remaining duplicates, so the copy
// source always exists before any copy reads it.
func (d *Downloader) processTask(ctx context.Context, task domain.DownloadTask) {
	artifact := task.Artifact
	sourcePath := ""

	for _, target := range task.Targets {
		outcome, err := d.materialize(ctx, artifact, target, &sourcePath)
		d.mu.Lock()
		d.stats.processed++
		switch {
		case err != nil:
			d.stats.errors++
		case outcome == outcomeSkipped:
			d.stats.skipped++
			d.stats.size += artifact.Size()
		case outcome == outcomeCopied:
			d.stats.copied++
			d.stats.size += artifact.Size()
		default:
			d.stats.downloaded++
			d.stats.size += artifact.Size()
		}
		processed, totalN := d.stats.processed, d.stats.total
		d.mu.Unlock()

		if err != nil {
			logger.Warn("[%d/%d] %s: %v", processed, totalN, artifact.ID(), err)
		} else {
			logger.Debug("[%d/%d] %s %s => %s", processed, totalN, outcome, artifact.ID(), target)
		}
	}
}

type targetOutcome string

const (
	outcomeSkipped    targetOutcome = "skipped"
	outcomeCopied     targetOutcome = "copied"
	outcomeDownloaded targetOutcome = "downloaded"
)

func (d *Downloader) materialize(ctx context.Context, artifact domain.Artifact, target string, sourcePath *string) (targetOutcome, error) {
	entry, known := d.ledger.Get(artifact.ID())

	// Target already on disk: make sure the ledger knows about it.
	if fileExists(target) {
		if !known {
			d.recordDownloaded(artifact, target)
		}
		if *sourcePath == "" {
			*sourcePath = target
		}
		return outcomeSkipped, nil
	}

	// A sibling target of this task was materialised first.
	if *sourcePath != "" {
		if err := copyFile(*sourcePath, target); err != nil {
			return "", err
		}
		return outcomeCopied, nil
	}

	// A previous run downloaded this artifact somewhere else.
	if known && fileExists(entry.Path) {
		if err := copyFile(entry.Path, target); err != nil {
			return "", err
		}
		*sourcePath = target
		return outcomeCopied, nil
	}

	// Remote fetch. The governor gates quota consumption; local
	// copies above never consult it.
	if err := d.governor.Wait(ctx); err != nil {
		return "", err
	}
	if err := d.fetch(ctx, artifact, target); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrFetch, artifact.ID(), err)
	}
	d.recordDownloaded(artifact, target)
	*sourcePath = target
	return outcomeDownloaded, nil
}

func (d *Downloader) recordDownloaded(artifact domain.Artifact, path string) {
	entry := domain.LedgerEntry{Key: artifact.ID(), Path: path}
	if v, ok := artifact.(domain.ContentVersion); ok {
		entry.DocumentID = v.DocumentID
	}
	d.ledger.Record(entry)
}

// fetch streams the artifact body into target. The stream lands in a
// uniquely named temp file first and is renamed into place, so an
// interrupted fetch never leaves a half-written target behind.
func (d *Downloader) fetch(ctx context.Context, artifact domain.Artifact, target string) error {
	body, err := d.client.FetchFile(ctx, artifact)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp := target + ".tmp-" + uuid.NewString()
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, target)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
