package csvfile

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
)

// Snapshot file names, one set per object type.
const (
	linksFile       = "document_links.csv"
	versionsFile    = "content_versions.csv"
	attachmentsFile = "attachments.csv"
)

// Ensure MetadataStore implements the interface.
var _ driven.MetadataStore = (*MetadataStore)(nil)

// MetadataStore reads and writes per-object metadata snapshots.
type MetadataStore struct{}

// NewMetadataStore creates a CSV-backed metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{}
}

// LoadLinks implements driven.MetadataStore.
func (s *MetadataStore) LoadLinks(obj domain.ArchiveObject) (*domain.LinkList, bool, error) {
	rows, ok, err := readRows(filepath.Join(obj.ObjDir(), linksFile))
	if err != nil || !ok {
		return nil, false, err
	}
	links := domain.NewLinkList()
	for _, row := range rows {
		if len(row) < 2 {
			return nil, false, fmt.Errorf("%s: malformed link row", linksFile)
		}
		link := domain.DocumentLink{
			LinkedEntityID:    row[0],
			ContentDocumentID: row[1],
		}
		if len(row) > 2 {
			link.DirName = row[2]
		}
		links.Add(link)
	}
	return links, true, nil
}

// SaveLinks implements driven.MetadataStore.
func (s *MetadataStore) SaveLinks(obj domain.ArchiveObject, links *domain.LinkList) error {
	header := []string{"LinkedEntityId", "ContentDocumentId"}
	if obj.DirNameField != "" {
		header = append(header, obj.DirNameField)
	}
	var rows [][]string
	for _, link := range links.Links() {
		row := []string{link.LinkedEntityID, link.ContentDocumentID}
		if obj.DirNameField != "" {
			row = append(row, link.DirName)
		}
		rows = append(rows, row)
	}
	return writeRows(filepath.Join(obj.ObjDir(), linksFile), header, rows)
}

// LoadVersions implements driven.MetadataStore.
func (s *MetadataStore) LoadVersions(obj domain.ArchiveObject) (*domain.VersionList, bool, error) {
	rows, ok, err := readRows(filepath.Join(obj.ObjDir(), versionsFile))
	if err != nil || !ok {
		return nil, false, err
	}
	versions := domain.NewVersionList()
	for _, row := range rows {
		if len(row) < 7 {
			return nil, false, fmt.Errorf("%s: malformed version row", versionsFile)
		}
		number, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, false, fmt.Errorf("%s: version number: %w", versionsFile, err)
		}
		size, err := strconv.ParseInt(row[6], 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("%s: content size: %w", versionsFile, err)
		}
		versions.Add(domain.ContentVersion{
			VersionID:       row[0],
			DocumentID:      row[1],
			VersionChecksum: row[2],
			Title:           row[3],
			Extension:       row[4],
			VersionNumber:   number,
			ContentSize:     size,
		})
	}
	return versions, true, nil
}

// SaveVersions implements driven.MetadataStore.
func (s *MetadataStore) SaveVersions(obj domain.ArchiveObject, versions *domain.VersionList) error {
	header := []string{"Id", "ContentDocumentId", "Checksum", "Title", "FileExtension", "VersionNumber", "ContentSize"}
	var rows [][]string
	for _, v := range versions.Versions() {
		rows = append(rows, []string{
			v.VersionID,
			v.DocumentID,
			v.VersionChecksum,
			v.Title,
			v.Extension,
			strconv.Itoa(v.VersionNumber),
			strconv.FormatInt(v.ContentSize, 10),
		})
	}
	return writeRows(filepath.Join(obj.ObjDir(), versionsFile), header, rows)
}

// LoadAttachments implements driven.MetadataStore.
func (s *MetadataStore) LoadAttachments(obj domain.ArchiveObject) (*domain.AttachmentList, bool, error) {
	rows, ok, err := readRows(filepath.Join(obj.ObjDir(), attachmentsFile))
	if err != nil || !ok {
		return nil, false, err
	}
	attachments := domain.NewAttachmentList()
	for _, row := range rows {
		if len(row) < 4 {
			return nil, false, fmt.Errorf("%s: malformed attachment row", attachmentsFile)
		}
		size, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("%s: content size: %w", attachmentsFile, err)
		}
		attachments.Add(domain.Attachment{
			AttachmentID: row[0],
			ParentID:     row[1],
			ContentSize:  size,
			Name:         row[3],
		})
	}
	return attachments, true, nil
}

// SaveAttachments implements driven.MetadataStore.
func (s *MetadataStore) SaveAttachments(obj domain.ArchiveObject, attachments *domain.AttachmentList) error {
	header := []string{"Id", "ParentId", "ContentSize", "Name"}
	var rows [][]string
	for _, a := range attachments.Attachments() {
		rows = append(rows, []string{
			a.AttachmentID,
			a.ParentID,
			strconv.FormatInt(a.ContentSize, 10),
			a.Name,
		})
	}
	return writeRows(filepath.Join(obj.ObjDir(), attachmentsFile), header, rows)
}
