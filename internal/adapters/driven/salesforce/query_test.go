package salesforce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/forcearc/forcearc/internal/core/domain"
)

func date(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestLinkQuery(t *testing.T) {
	tests := []struct {
		name string
		obj  domain.ArchiveObject
		want string
	}{
		{
			name: "plain",
			obj:  domain.ArchiveObject{ObjType: "Account"},
			want: "SELECT LinkedEntityId, ContentDocumentId FROM ContentDocumentLink " +
				"WHERE LinkedEntity.Type = 'Account'",
		},
		{
			name: "grouping field",
			obj:  domain.ArchiveObject{ObjType: "Account", DirNameField: "LinkedEntity.Name"},
			want: "SELECT LinkedEntityId, ContentDocumentId, LinkedEntity.Name FROM ContentDocumentLink " +
				"WHERE LinkedEntity.Type = 'Account'",
		},
		{
			name: "grouping on the record id column selects nothing extra",
			obj:  domain.ArchiveObject{ObjType: "Account", DirNameField: "LinkedEntityId"},
			want: "SELECT LinkedEntityId, ContentDocumentId FROM ContentDocumentLink " +
				"WHERE LinkedEntity.Type = 'Account'",
		},
		{
			name: "grouping on the document id column selects nothing extra",
			obj:  domain.ArchiveObject{ObjType: "Account", DirNameField: "ContentDocumentId"},
			want: "SELECT LinkedEntityId, ContentDocumentId FROM ContentDocumentLink " +
				"WHERE LinkedEntity.Type = 'Account'",
		},
		{
			name: "date bounds",
			obj: domain.ArchiveObject{
				ObjType:        "Case",
				ModifiedDateGt: date("2017-01-01T00:00:00Z"),
				ModifiedDateLt: date("2024-01-01T00:00:00Z"),
			},
			want: "SELECT LinkedEntityId, ContentDocumentId FROM ContentDocumentLink " +
				"WHERE LinkedEntity.Type = 'Case'" +
				" AND ContentDocument.ContentModifiedDate < 2024-01-01T00:00:00Z" +
				" AND ContentDocument.ContentModifiedDate > 2017-01-01T00:00:00Z",
		},
		{
			name: "extra condition",
			obj:  domain.ArchiveObject{ObjType: "Account", ExtraFilter: "LinkedEntity.Name != NULL"},
			want: "SELECT LinkedEntityId, ContentDocumentId FROM ContentDocumentLink " +
				"WHERE LinkedEntity.Type = 'Account' AND LinkedEntity.Name != NULL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, linkQuery(tt.obj))
		})
	}
}

func TestVersionQuery(t *testing.T) {
	got := versionQuery([]string{"D1", "D2"})
	assert.Equal(t,
		"SELECT Id, ContentDocumentId, Checksum, Title, FileExtension, VersionNumber, ContentSize "+
			"FROM ContentVersion WHERE ContentDocumentId IN ('D1','D2') AND ContentSize > 1",
		got)
}

func TestAttachmentQuery(t *testing.T) {
	obj := domain.ArchiveObject{
		ObjType:        "Case",
		ModifiedDateGt: date("2017-01-01T00:00:00Z"),
	}
	assert.Equal(t,
		"SELECT Id, ParentId, Name, BodyLength FROM Attachment "+
			"WHERE Parent.Type = 'Case' AND LastModifiedDate > 2017-01-01T00:00:00Z",
		attachmentQuery(obj))
}

func TestFieldExtraction(t *testing.T) {
	record := map[string]any{
		"Id":            "V1",
		"VersionNumber": float64(3),
		"ContentSize":   float64(4096),
		"LinkedEntity": map[string]any{
			"Name": "Acme Corp",
		},
	}

	assert.Equal(t, "V1", stringField(record, "Id"))
	assert.Equal(t, "Acme Corp", stringField(record, "LinkedEntity.Name"))
	assert.Equal(t, 3, intField(record, "VersionNumber"))
	assert.Equal(t, int64(4096), int64Field(record, "ContentSize"))

	assert.Empty(t, stringField(record, "Missing"))
	assert.Empty(t, stringField(record, "LinkedEntity.Missing"))
	assert.Empty(t, stringField(record, "Id.Nested"), "traversing through a scalar yields nothing")
	assert.Zero(t, intField(record, "Missing"))
}
