package driven

import (
	"context"
	"io"

	"github.com/forcearc/forcearc/internal/core/domain"
)

// SalesforceClient is the remote collaborator boundary. Every method
// is a potentially slow, fallible network operation; timeouts and
// transport-level retries belong to the implementation.
type SalesforceClient interface {
	// QueryLinks lists the document link rows for an object type,
	// applying its date bounds, extra filter and dir name field.
	QueryLinks(ctx context.Context, obj domain.ArchiveObject) ([]domain.DocumentLink, error)

	// QueryVersions lists the content versions for a batch of
	// document ids.
	QueryVersions(ctx context.Context, documentIDs []string) ([]domain.ContentVersion, error)

	// QueryAttachments lists the legacy attachments for an object
	// type, applying its date bounds.
	QueryAttachments(ctx context.Context, obj domain.ArchiveObject) ([]domain.Attachment, error)

	// FetchFile opens the binary body of an artifact. The caller
	// owns the returned reader and must close it.
	FetchFile(ctx context.Context, artifact domain.Artifact) (io.ReadCloser, error)

	// APIUsage reports the org's current daily API consumption.
	APIUsage(ctx context.Context) (domain.APIUsage, error)
}
