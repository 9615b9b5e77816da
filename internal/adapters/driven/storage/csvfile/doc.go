// Package csvfile persists metadata snapshots and progress ledgers as
// flat CSV files with a header row.
//
// Layout under the archive data directory:
//
//	<data_dir>/<ObjType>/document_links.csv
//	<data_dir>/<ObjType>/content_versions.csv
//	<data_dir>/<ObjType>/attachments.csv
//	<data_dir>/downloaded_versions.csv
//	<data_dir>/validated_versions.csv
//
// Snapshot presence on disk means "already fetched"; the ledgers are
// shared across all object types within a phase. Files are written to
// a temp path and renamed into place so a crash mid-flush never
// corrupts previously flushed state.
package csvfile
