package salesforce

import (
	"fmt"
	"slices"
	"strings"

	"github.com/forcearc/forcearc/internal/core/domain"
)

// soqlTime is the timestamp layout SOQL date literals use.
const soqlTime = "2006-01-02T15:04:05Z"

// linkQuery builds the ContentDocumentLink listing query for an
// object type, selecting the grouping field when one is configured.
// A grouping field already in the select list is not added again;
// SOQL rejects duplicate selected columns.
func linkQuery(obj domain.ArchiveObject) string {
	selects := []string{"LinkedEntityId", "ContentDocumentId"}
	if obj.DirNameField != "" && !slices.Contains(selects, obj.DirNameField) {
		selects = append(selects, obj.DirNameField)
	}

	wheres := []string{fmt.Sprintf("LinkedEntity.Type = '%s'", obj.ObjType)}
	if obj.ModifiedDateLt != nil {
		wheres = append(wheres, fmt.Sprintf("ContentDocument.ContentModifiedDate < %s",
			obj.ModifiedDateLt.UTC().Format(soqlTime)))
	}
	if obj.ModifiedDateGt != nil {
		wheres = append(wheres, fmt.Sprintf("ContentDocument.ContentModifiedDate > %s",
			obj.ModifiedDateGt.UTC().Format(soqlTime)))
	}
	if obj.ExtraFilter != "" {
		wheres = append(wheres, obj.ExtraFilter)
	}

	return fmt.Sprintf("SELECT %s FROM ContentDocumentLink WHERE %s",
		strings.Join(selects, ", "), strings.Join(wheres, " AND "))
}

// versionQuery builds the ContentVersion listing query for a batch of
// document ids. Zero-byte placeholder versions are excluded.
func versionQuery(documentIDs []string) string {
	quoted := make([]string, len(documentIDs))
	for i, id := range documentIDs {
		quoted[i] = "'" + id + "'"
	}
	return fmt.Sprintf(
		"SELECT Id, ContentDocumentId, Checksum, Title, FileExtension, VersionNumber, ContentSize "+
			"FROM ContentVersion WHERE ContentDocumentId IN (%s) AND ContentSize > 1",
		strings.Join(quoted, ","))
}

// attachmentQuery builds the legacy Attachment listing query for an
// object type.
func attachmentQuery(obj domain.ArchiveObject) string {
	wheres := []string{fmt.Sprintf("Parent.Type = '%s'", obj.ObjType)}
	if obj.ModifiedDateLt != nil {
		wheres = append(wheres, fmt.Sprintf("LastModifiedDate < %s",
			obj.ModifiedDateLt.UTC().Format(soqlTime)))
	}
	if obj.ModifiedDateGt != nil {
		wheres = append(wheres, fmt.Sprintf("LastModifiedDate > %s",
			obj.ModifiedDateGt.UTC().Format(soqlTime)))
	}
	if obj.ExtraFilter != "" {
		wheres = append(wheres, obj.ExtraFilter)
	}
	return fmt.Sprintf("SELECT Id, ParentId, Name, BodyLength FROM Attachment WHERE %s",
		strings.Join(wheres, " AND "))
}
