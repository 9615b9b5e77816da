package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forcearc/forcearc/internal/adapters/driven/storage/memory"
	"github.com/forcearc/forcearc/internal/core/domain"
)

func versionFixture() domain.ContentVersion {
	return domain.ContentVersion{
		VersionID:     "V1",
		DocumentID:    "D1",
		Title:         "report",
		Extension:     "txt",
		VersionNumber: 1,
		ContentSize:   11,
	}
}

func TestDownloader_FetchesOnceCopiesRest(t *testing.T) {
	dir := t.TempDir()
	client := newMockSalesforce()
	client.bodies["V1"] = []byte("hello world")
	ledger := memory.NewLedger()

	task := domain.DownloadTask{
		Artifact: versionFixture(),
		Targets: []string{
			filepath.Join(dir, "L1", "f.txt"),
			filepath.Join(dir, "L2", "f.txt"),
		},
	}

	d := NewDownloader(client, ledger, nil)
	total, processed, skipped, downloaded, copied, errs, size := d.Run(context.Background(), []domain.DownloadTask{task}, 2)

	assert.Equal(t, 2, total)
	assert.Equal(t, 2, processed)
	assert.Zero(t, skipped)
	assert.Equal(t, 1, downloaded)
	assert.Equal(t, 1, copied)
	assert.Zero(t, errs)
	assert.Equal(t, int64(22), size)

	assert.Equal(t, 1, client.fetchCount(), "duplicates must be served from the local copy")
	for _, target := range task.Targets {
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(data))
	}

	entry, ok := ledger.Get("V1")
	require.True(t, ok)
	assert.Equal(t, task.Targets[0], entry.Path)
	assert.Equal(t, "D1", entry.DocumentID)
}

func TestDownloader_SecondRunSkipsEverything(t *testing.T) {
	dir := t.TempDir()
	client := newMockSalesforce()
	client.bodies["V1"] = []byte("hello world")
	ledger := memory.NewLedger()

	task := domain.DownloadTask{
		Artifact: versionFixture(),
		Targets:  []string{filepath.Join(dir, "L1", "f.txt"), filepath.Join(dir, "L2", "f.txt")},
	}
	d := NewDownloader(client, ledger, nil)

	d.Run(context.Background(), []domain.DownloadTask{task}, 1)
	_, _, skipped, downloaded, copied, errs, _ := d.Run(context.Background(), []domain.DownloadTask{task}, 1)

	assert.Equal(t, 2, skipped)
	assert.Zero(t, downloaded)
	assert.Zero(t, copied)
	assert.Zero(t, errs)
	assert.Equal(t, 1, client.fetchCount(), "second run must not refetch")
}

func TestDownloader_CopiesFromLedgerPath(t *testing.T) {
	dir := t.TempDir()
	client := newMockSalesforce()
	ledger := memory.NewLedger()

	// A prior run left the file at another target; the ledger knows.
	prior := filepath.Join(dir, "old", "f.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(prior), 0o755))
	require.NoError(t, os.WriteFile(prior, []byte("cached"), 0o644))
	ledger.Record(domain.LedgerEntry{Key: "V1", DocumentID: "D1", Path: prior})

	task := domain.DownloadTask{
		Artifact: versionFixture(),
		Targets:  []string{filepath.Join(dir, "new", "f.txt")},
	}
	d := NewDownloader(client, ledger, nil)
	_, _, _, downloaded, copied, errs, _ := d.Run(context.Background(), []domain.DownloadTask{task}, 1)

	assert.Zero(t, downloaded)
	assert.Equal(t, 1, copied)
	assert.Zero(t, errs)
	assert.Zero(t, client.fetchCount())

	data, err := os.ReadFile(task.Targets[0])
	require.NoError(t, err)
	assert.Equal(t, "cached", string(data))
}

func TestDownloader_RefetchesWhenLedgerPathGone(t *testing.T) {
	dir := t.TempDir()
	client := newMockSalesforce()
	client.bodies["V1"] = []byte("hello world")
	ledger := memory.NewLedger()
	ledger.Record(domain.LedgerEntry{Key: "V1", DocumentID: "D1", Path: filepath.Join(dir, "gone", "f.txt")})

	task := domain.DownloadTask{
		Artifact: versionFixture(),
		Targets:  []string{filepath.Join(dir, "new", "f.txt")},
	}
	d := NewDownloader(client, ledger, nil)
	_, _, _, downloaded, _, errs, _ := d.Run(context.Background(), []domain.DownloadTask{task}, 1)

	assert.Equal(t, 1, downloaded)
	assert.Zero(t, errs)
	assert.Equal(t, 1, client.fetchCount())
}

func TestDownloader_AdoptsExistingFileIntoLedger(t *testing.T) {
	dir := t.TempDir()
	client := newMockSalesforce()
	ledger := memory.NewLedger()

	target := filepath.Join(dir, "L1", "f.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("already here"), 0o644))

	task := domain.DownloadTask{Artifact: versionFixture(), Targets: []string{target}}
	d := NewDownloader(client, ledger, nil)
	_, _, skipped, _, _, _, _ := d.Run(context.Background(), []domain.DownloadTask{task}, 1)

	assert.Equal(t, 1, skipped)
	assert.Zero(t, client.fetchCount())

	entry, ok := ledger.Get("V1")
	require.True(t, ok)
	assert.Equal(t, target, entry.Path)
}

func TestDownloader_FetchErrorIsIsolated(t *testing.T) {
	dir := t.TempDir()
	client := newMockSalesforce()
	client.bodies["V2"] = []byte("ok")
	client.fetchErr["V1"] = errors.New("boom")
	ledger := memory.NewLedger()

	tasks := []domain.DownloadTask{
		{Artifact: versionFixture(), Targets: []string{filepath.Join(dir, "a")}},
		{
			Artifact: domain.ContentVersion{VersionID: "V2", DocumentID: "D2", Title: "b", Extension: "txt", VersionNumber: 1, ContentSize: 2},
			Targets:  []string{filepath.Join(dir, "b")},
		},
	}
	d := NewDownloader(client, ledger, nil)
	_, processed, _, downloaded, _, errs, _ := d.Run(context.Background(), tasks, 1)

	assert.Equal(t, 2, processed)
	assert.Equal(t, 1, downloaded)
	assert.Equal(t, 1, errs)

	// The failed artifact must stay out of the ledger so a later run
	// retries it.
	assert.False(t, ledger.Has("V1"))
	assert.True(t, ledger.Has("V2"))
}

func TestDownloader_NoPartialFileAfterFetchError(t *testing.T) {
	dir := t.TempDir()
	client := newMockSalesforce()
	client.fetchErr["V1"] = errors.New("boom")
	ledger := memory.NewLedger()

	target := filepath.Join(dir, "L1", "f.txt")
	task := domain.DownloadTask{Artifact: versionFixture(), Targets: []string{target}}
	NewDownloader(client, ledger, nil).Run(context.Background(), []domain.DownloadTask{task}, 1)

	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}
