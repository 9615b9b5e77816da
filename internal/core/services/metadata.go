package services

import (
	"context"
	"fmt"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
	"github.com/forcearc/forcearc/internal/logger"
)

// versionBatchSize caps how many document ids go into a single
// content version query.
const versionBatchSize = 3000

// MetadataIndex loads the metadata lists describing which files exist
// for an object type. A snapshot on disk is loaded verbatim with no
// remote call; otherwise the remote collaborator is queried and the
// result persisted before returning, so a snapshot is never partial.
type MetadataIndex struct {
	client driven.SalesforceClient
	store  driven.MetadataStore
}

// NewMetadataIndex creates a metadata index over client and store.
func NewMetadataIndex(client driven.SalesforceClient, store driven.MetadataStore) *MetadataIndex {
	return &MetadataIndex{client: client, store: store}
}

// Links returns the document link list for obj, from snapshot or remote.
func (m *MetadataIndex) Links(ctx context.Context, obj domain.ArchiveObject) (*domain.LinkList, error) {
	links, ok, err := m.store.LoadLinks(obj)
	if err != nil {
		return nil, fmt.Errorf("load link snapshot: %w", err)
	}
	if ok {
		logger.Debug("[%s] loaded %d links from snapshot", obj.ObjType, links.Len())
		return links, nil
	}

	rows, err := m.client.QueryLinks(ctx, obj)
	if err != nil {
		return nil, fmt.Errorf("%w: links for %s: %w", domain.ErrMetadataFetch, obj.ObjType, err)
	}
	links = domain.NewLinkList()
	for _, row := range rows {
		links.Add(row)
	}
	if err := m.store.SaveLinks(obj, links); err != nil {
		return nil, fmt.Errorf("save link snapshot: %w", err)
	}
	logger.Debug("[%s] fetched %d links", obj.ObjType, links.Len())
	return links, nil
}

// Versions returns the content version list for obj. Versions are
// always fetched by joining against the document ids already held in
// the link list, never independently, so a partial link list can
// never produce orphaned version rows.
func (m *MetadataIndex) Versions(ctx context.Context, obj domain.ArchiveObject, links *domain.LinkList) (*domain.VersionList, error) {
	versions, ok, err := m.store.LoadVersions(obj)
	if err != nil {
		return nil, fmt.Errorf("load version snapshot: %w", err)
	}
	if ok {
		logger.Debug("[%s] loaded %d versions from snapshot", obj.ObjType, versions.Len())
		return versions, nil
	}

	versions = domain.NewVersionList()
	ids := links.DocumentIDs()
	for start := 0; start < len(ids); start += versionBatchSize {
		end := start + versionBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		rows, err := m.client.QueryVersions(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: versions for %s: %w", domain.ErrMetadataFetch, obj.ObjType, err)
		}
		for _, row := range rows {
			versions.Add(row)
		}
	}
	if err := m.store.SaveVersions(obj, versions); err != nil {
		return nil, fmt.Errorf("save version snapshot: %w", err)
	}
	logger.Debug("[%s] fetched %d versions", obj.ObjType, versions.Len())
	return versions, nil
}

// Attachments returns the legacy attachment list for obj, from
// snapshot or remote.
func (m *MetadataIndex) Attachments(ctx context.Context, obj domain.ArchiveObject) (*domain.AttachmentList, error) {
	attachments, ok, err := m.store.LoadAttachments(obj)
	if err != nil {
		return nil, fmt.Errorf("load attachment snapshot: %w", err)
	}
	if ok {
		logger.Debug("[%s] loaded %d attachments from snapshot", obj.ObjType, attachments.Len())
		return attachments, nil
	}

	rows, err := m.client.QueryAttachments(ctx, obj)
	if err != nil {
		return nil, fmt.Errorf("%w: attachments for %s: %w", domain.ErrMetadataFetch, obj.ObjType, err)
	}
	attachments = domain.NewAttachmentList()
	for _, row := range rows {
		attachments.Add(row)
	}
	if err := m.store.SaveAttachments(obj, attachments); err != nil {
		return nil, fmt.Errorf("save attachment snapshot: %w", err)
	}
	logger.Debug("[%s] fetched %d attachments", obj.ObjType, attachments.Len())
	return attachments, nil
}
