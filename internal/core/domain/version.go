package domain

import "fmt"

// ContentVersion is one downloadable version of a document.
type ContentVersion struct {
	// VersionID is the id of this version row.
	VersionID string

	// DocumentID is the id of the owning document.
	DocumentID string

	// Title is the display title of the document.
	Title string

	// Extension is the file extension, without a leading dot.
	Extension string

	// VersionChecksum is the MD5 digest Salesforce recorded for the
	// version content.
	VersionChecksum string

	// VersionNumber is the ordinal of this version within the document.
	VersionNumber int

	// ContentSize is the content size in bytes.
	ContentSize int64
}

// Kind implements Artifact.
func (v ContentVersion) Kind() ArtifactKind { return KindContentVersion }

// ID implements Artifact.
func (v ContentVersion) ID() string { return v.VersionID }

// Checksum implements Artifact.
func (v ContentVersion) Checksum() (string, bool) { return v.VersionChecksum, true }

// Size implements Artifact.
func (v ContentVersion) Size() int64 { return v.ContentSize }

// Filename implements Artifact. The name encodes document id, version
// ordinal, version id and sanitised title so that no two versions of
// any document can collide inside a grouping directory.
func (v ContentVersion) Filename() string {
	return fmt.Sprintf("%s_%d_%s_%s.%s",
		v.DocumentID,
		v.VersionNumber,
		v.VersionID,
		SanitizeFilename(v.Title),
		v.Extension,
	)
}

// VersionList is an in-memory index of content versions keyed by
// version id, with a document id lookup for task resolution.
type VersionList struct {
	order []string
	data  map[string]ContentVersion
	byDoc map[string][]string
}

// NewVersionList returns an empty version list.
func NewVersionList() *VersionList {
	return &VersionList{
		data:  make(map[string]ContentVersion),
		byDoc: make(map[string][]string),
	}
}

// Add inserts a version, replacing any previous row with the same id.
func (vl *VersionList) Add(v ContentVersion) {
	if _, ok := vl.data[v.VersionID]; !ok {
		vl.order = append(vl.order, v.VersionID)
		vl.byDoc[v.DocumentID] = append(vl.byDoc[v.DocumentID], v.VersionID)
	}
	vl.data[v.VersionID] = v
}

// Get returns the version with the given id.
func (vl *VersionList) Get(versionID string) (ContentVersion, bool) {
	v, ok := vl.data[versionID]
	return v, ok
}

// ForDocument returns all versions of a document in insertion order.
func (vl *VersionList) ForDocument(documentID string) []ContentVersion {
	ids := vl.byDoc[documentID]
	out := make([]ContentVersion, 0, len(ids))
	for _, id := range ids {
		out = append(out, vl.data[id])
	}
	return out
}

// Versions returns all versions in insertion order.
func (vl *VersionList) Versions() []ContentVersion {
	out := make([]ContentVersion, 0, len(vl.order))
	for _, id := range vl.order {
		out = append(out, vl.data[id])
	}
	return out
}

// Len returns the number of versions.
func (vl *VersionList) Len() int {
	return len(vl.data)
}
