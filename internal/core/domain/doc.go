// Package domain defines the core business entities for forcearc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ArchiveObject: A configured record type to archive
//   - DocumentLink: A (record, document) link row
//   - ContentVersion: A downloadable version of a document
//   - Attachment: A legacy single-version file
//   - DownloadTask: A resolved, deduplicated unit of download work
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
