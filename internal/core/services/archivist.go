package services

import (
	"context"
	"fmt"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
	"github.com/forcearc/forcearc/internal/core/ports/driving"
	"github.com/forcearc/forcearc/internal/logger"
)

// Ensure Archivist implements the interface.
var _ driving.Archivist = (*Archivist)(nil)

// Archivist composes the metadata index, task resolver, ledgers,
// governor and executor into the Download and Validate operations.
// All state is scoped to one Archivist value; there are no process
// globals.
type Archivist struct {
	objects    []domain.ArchiveObject
	client     driven.SalesforceClient
	index      *MetadataIndex
	downloaded driven.Ledger
	validated  driven.Ledger
	governor   *Governor
}

// NewArchivist creates an orchestrator over the given collaborators.
// governor may be nil to disable API usage backpressure.
func NewArchivist(
	objects []domain.ArchiveObject,
	client driven.SalesforceClient,
	store driven.MetadataStore,
	downloaded driven.Ledger,
	validated driven.Ledger,
	governor *Governor,
) *Archivist {
	return &Archivist{
		objects:    objects,
		client:     client,
		index:      NewMetadataIndex(client, store),
		downloaded: downloaded,
		validated:  validated,
		governor:   governor,
	}
}

// Download archives every configured object type: index metadata,
// resolve deduplicated tasks, execute them on the pool, flush the
// ledger. A metadata failure abandons that object type only; a ledger
// flush failure aborts the run.
func (a *Archivist) Download(ctx context.Context, opts driving.DownloadOptions) (*driving.DownloadReport, error) {
	report := &driving.DownloadReport{}
	downloader := NewDownloader(a.client, a.downloaded, a.governor)

	for _, obj := range a.objects {
		tasks, err := a.resolve(ctx, obj)
		if err != nil {
			logger.Warn("[%s] %v", obj.ObjType, err)
			report.FailedObjects++
			continue
		}

		pending, preSkipped := a.filterComplete(tasks)
		logger.Info("[%s] %d targets resolved, %d already complete", obj.ObjType, CountTargets(tasks), preSkipped)

		total, processed, skipped, downloaded, copied, errs, size := downloader.Run(ctx, pending, opts.MaxWorkers)
		report.Total += total + preSkipped
		report.Processed += processed + preSkipped
		report.Skipped += skipped + preSkipped
		report.Downloaded += downloaded
		report.Copied += copied
		report.Errors += errs
		report.Size += size

		if err := a.downloaded.Flush(); err != nil {
			return report, fmt.Errorf("%w: %w", domain.ErrLedgerIO, err)
		}
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
	}

	if err := a.downloaded.Flush(); err != nil {
		return report, fmt.Errorf("%w: %w", domain.ErrLedgerIO, err)
	}
	return report, nil
}

// Validate checks every resolved target of every configured object
// type against its expected checksum or size.
func (a *Archivist) Validate(ctx context.Context, opts driving.ValidateOptions) (*driving.ValidationReport, error) {
	report := &driving.ValidationReport{}
	validator := NewValidator(a.validated, a.downloaded, opts.Revalidate, opts.RemoveInvalid)

	for _, obj := range a.objects {
		tasks, err := a.resolve(ctx, obj)
		if err != nil {
			logger.Warn("[%s] %v", obj.ObjType, err)
			report.FailedObjects++
			continue
		}
		logger.Info("[%s] validating %d targets", obj.ObjType, CountTargets(tasks))

		total, processed, invalid, removed := validator.Run(ctx, tasks, opts.MaxWorkers)
		report.Total += total
		report.Processed += processed
		report.Invalid += invalid
		report.Removed += removed

		if err := a.flushValidation(opts); err != nil {
			return report, err
		}
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
	}

	if err := a.flushValidation(opts); err != nil {
		return report, err
	}
	return report, nil
}

// flushValidation persists the validated ledger, and the downloaded
// ledger too when remove-invalid may have mutated it.
func (a *Archivist) flushValidation(opts driving.ValidateOptions) error {
	if err := a.validated.Flush(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLedgerIO, err)
	}
	if opts.RemoveInvalid {
		if err := a.downloaded.Flush(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrLedgerIO, err)
		}
	}
	return nil
}

// resolve runs the Indexing and Resolving states for one object type.
// Metadata indexing completes fully before any task is produced.
func (a *Archivist) resolve(ctx context.Context, obj domain.ArchiveObject) ([]domain.DownloadTask, error) {
	links, err := a.index.Links(ctx, obj)
	if err != nil {
		return nil, err
	}
	versions, err := a.index.Versions(ctx, obj, links)
	if err != nil {
		return nil, err
	}
	var attachments *domain.AttachmentList
	if obj.IncludeAttachments {
		if attachments, err = a.index.Attachments(ctx, obj); err != nil {
			return nil, err
		}
	}
	return BuildDownloadTasks(obj, links, versions, attachments), nil
}

// filterComplete drops tasks whose artifact is already recorded in
// the downloaded ledger with every target present on disk. The ledger
// is the source of truth; the disk check keeps its path column honest.
func (a *Archivist) filterComplete(tasks []domain.DownloadTask) (pending []domain.DownloadTask, skippedTargets int) {
	pending = make([]domain.DownloadTask, 0, len(tasks))
	for _, task := range tasks {
		if a.taskComplete(task) {
			skippedTargets += len(task.Targets)
			continue
		}
		pending = append(pending, task)
	}
	return pending, skippedTargets
}

func (a *Archivist) taskComplete(task domain.DownloadTask) bool {
	if !a.downloaded.Has(task.Artifact.ID()) {
		return false
	}
	for _, target := range task.Targets {
		if !fileExists(target) {
			return false
		}
	}
	return true
}
