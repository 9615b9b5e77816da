package domain

import "regexp"

// ArtifactKind discriminates the two downloadable file models.
type ArtifactKind string

const (
	// KindContentVersion is the modern, multi-version file model.
	KindContentVersion ArtifactKind = "content_version"

	// KindAttachment is the legacy single-version file model.
	KindAttachment ArtifactKind = "attachment"
)

// Artifact is a single downloadable unit: one content version or one
// legacy attachment. The id is the remote fetch identity; two tasks
// sharing it are satisfied by one remote fetch.
type Artifact interface {
	// Kind identifies the file model.
	Kind() ArtifactKind

	// ID is the remote fetch identity.
	ID() string

	// Filename is the deterministic on-disk file name.
	Filename() string

	// Checksum returns the expected content digest and true, or
	// ("", false) when only a byte size is available.
	Checksum() (string, bool)

	// Size is the expected content size in bytes.
	Size() int64
}

// filenames must survive every filesystem we archive onto
var unsafeFilenameChars = regexp.MustCompile(`[/\\?%*:|"<>]`)

// SanitizeFilename replaces characters that are unsafe in file names.
// Stable across runs: the ledger's path column depends on it.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "-")
}
