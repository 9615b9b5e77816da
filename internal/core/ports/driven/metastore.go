package driven

import "github.com/forcearc/forcearc/internal/core/domain"

// MetadataStore persists per-object metadata snapshots so repeated
// runs skip the remote listing queries. A snapshot on disk is treated
// as "already fetched"; absence triggers a fetch followed by a save.
type MetadataStore interface {
	// LoadLinks loads the link snapshot for an object type.
	// The second return is false when no snapshot exists.
	LoadLinks(obj domain.ArchiveObject) (*domain.LinkList, bool, error)

	// SaveLinks writes the link snapshot for an object type.
	SaveLinks(obj domain.ArchiveObject, links *domain.LinkList) error

	// LoadVersions loads the content version snapshot.
	LoadVersions(obj domain.ArchiveObject) (*domain.VersionList, bool, error)

	// SaveVersions writes the content version snapshot.
	SaveVersions(obj domain.ArchiveObject, versions *domain.VersionList) error

	// LoadAttachments loads the attachment snapshot.
	LoadAttachments(obj domain.ArchiveObject) (*domain.AttachmentList, bool, error)

	// SaveAttachments writes the attachment snapshot.
	SaveAttachments(obj domain.ArchiveObject, attachments *domain.AttachmentList) error
}
