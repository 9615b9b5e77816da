package domain

import (
	"path/filepath"
	"time"
)

// ArchiveObject describes one configured record type to archive.
// It is assembled from configuration and immutable for the run.
type ArchiveObject struct {
	// DataDir is the archive root directory.
	DataDir string

	// ObjType is the Salesforce object type (Account, Case, ...).
	ObjType string

	// ModifiedDateGt, if set, limits the archive to documents
	// modified strictly after this instant.
	ModifiedDateGt *time.Time

	// ModifiedDateLt, if set, limits the archive to documents
	// modified strictly before this instant.
	ModifiedDateLt *time.Time

	// DirNameField optionally names a field on the link row used as
	// the grouping directory instead of the linked record id.
	// Resolved at metadata-fetch time, validated at config load.
	DirNameField string

	// ExtraFilter is an optional SOQL condition appended verbatim to
	// the link query WHERE clause.
	ExtraFilter string

	// IncludeAttachments enables the legacy Attachment flow for
	// this object type.
	IncludeAttachments bool
}

// ObjDir is the directory holding this object type's snapshots and files.
func (o ArchiveObject) ObjDir() string {
	return filepath.Join(o.DataDir, o.ObjType)
}

// FilesDir is the directory all downloaded files live under.
func (o ArchiveObject) FilesDir() string {
	return filepath.Join(o.ObjDir(), "files")
}
