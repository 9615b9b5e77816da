package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forcearc/forcearc/internal/adapters/driven/storage/memory"
	"github.com/forcearc/forcearc/internal/core/domain"
)

func TestMetadataIndex_LinksFetchThenSnapshot(t *testing.T) {
	obj := domain.ArchiveObject{DataDir: t.TempDir(), ObjType: "Account"}
	client := newMockSalesforce()
	client.links["Account"] = []domain.DocumentLink{
		{LinkedEntityID: "L1", ContentDocumentID: "D1"},
	}
	store := memory.NewMetadataStore()
	index := NewMetadataIndex(client, store)
	ctx := context.Background()

	links, err := index.Links(ctx, obj)
	require.NoError(t, err)
	assert.Equal(t, 1, links.Len())
	assert.Equal(t, 1, client.linkCalls)

	// Snapshot persisted before returning.
	_, ok, err := store.LoadLinks(obj)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second call never touches the remote.
	again, err := index.Links(ctx, obj)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len())
	assert.Equal(t, 1, client.linkCalls)
}

func TestMetadataIndex_LinksQueryError(t *testing.T) {
	obj := domain.ArchiveObject{DataDir: t.TempDir(), ObjType: "Account"}
	client := newMockSalesforce()
	client.linksErr = errors.New("refused")
	index := NewMetadataIndex(client, memory.NewMetadataStore())

	_, err := index.Links(context.Background(), obj)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMetadataFetch)
}

func TestMetadataIndex_VersionsJoinLinkDocuments(t *testing.T) {
	obj := domain.ArchiveObject{DataDir: t.TempDir(), ObjType: "Account"}
	client := newMockSalesforce()
	client.versions = []domain.ContentVersion{
		{VersionID: "V1", DocumentID: "D1", VersionNumber: 1},
		{VersionID: "V9", DocumentID: "D9", VersionNumber: 1},
	}
	index := NewMetadataIndex(client, memory.NewMetadataStore())

	links := domain.NewLinkList()
	links.Add(domain.DocumentLink{LinkedEntityID: "L1", ContentDocumentID: "D1"})

	versions, err := index.Versions(context.Background(), obj, links)
	require.NoError(t, err)
	assert.Equal(t, 1, versions.Len(), "versions of unlinked documents must not be indexed")
	_, ok := versions.Get("V1")
	assert.True(t, ok)
}

func TestMetadataIndex_VersionsFromSnapshot(t *testing.T) {
	obj := domain.ArchiveObject{DataDir: t.TempDir(), ObjType: "Account"}
	client := newMockSalesforce()
	store := memory.NewMetadataStore()

	snapshot := domain.NewVersionList()
	snapshot.Add(domain.ContentVersion{VersionID: "V1", DocumentID: "D1", VersionNumber: 1})
	require.NoError(t, store.SaveVersions(obj, snapshot))

	index := NewMetadataIndex(client, store)
	versions, err := index.Versions(context.Background(), obj, domain.NewLinkList())
	require.NoError(t, err)
	assert.Equal(t, 1, versions.Len())
	assert.Zero(t, client.versionCalls)
}

func TestMetadataIndex_Attachments(t *testing.T) {
	obj := domain.ArchiveObject{DataDir: t.TempDir(), ObjType: "Case", IncludeAttachments: true}
	client := newMockSalesforce()
	client.attachments["Case"] = []domain.Attachment{
		{AttachmentID: "A1", ParentID: "P1", Name: "note.txt", ContentSize: 10},
	}
	store := memory.NewMetadataStore()
	index := NewMetadataIndex(client, store)

	attachments, err := index.Attachments(context.Background(), obj)
	require.NoError(t, err)
	assert.Equal(t, 1, attachments.Len())

	_, ok, err := store.LoadAttachments(obj)
	require.NoError(t, err)
	assert.True(t, ok)
}
