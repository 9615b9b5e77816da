package services

import (
	"path/filepath"

	"github.com/forcearc/forcearc/internal/core/domain"
)

// BuildDownloadTasks joins link and version (and attachment) metadata
// into consolidated download tasks. Exactly one task is produced per
// artifact id, carrying every target path that artifact must end up
// at; this is what guarantees at most one remote fetch per artifact
// and race-free duplicate handling.
//
// Target paths are a pure function of the inputs:
//
//	<objDir>/files/<grouping dir>/<artifact filename>
//
// so a path resolved today matches the path recorded in the ledger by
// any earlier run.
func BuildDownloadTasks(
	obj domain.ArchiveObject,
	links *domain.LinkList,
	versions *domain.VersionList,
	attachments *domain.AttachmentList,
) []domain.DownloadTask {
	var order []string
	byID := make(map[string]*domain.DownloadTask)

	add := func(artifact domain.Artifact, target string) {
		task, ok := byID[artifact.ID()]
		if !ok {
			task = &domain.DownloadTask{Artifact: artifact}
			byID[artifact.ID()] = task
			order = append(order, artifact.ID())
		}
		for _, t := range task.Targets {
			if t == target {
				return
			}
		}
		task.Targets = append(task.Targets, target)
	}

	if links != nil && versions != nil {
		for _, link := range links.Links() {
			for _, version := range versions.ForDocument(link.ContentDocumentID) {
				add(version, filepath.Join(obj.FilesDir(), link.GroupDir(), version.Filename()))
			}
		}
	}
	if attachments != nil {
		for _, att := range attachments.Attachments() {
			add(att, filepath.Join(obj.FilesDir(), att.ParentID, att.Filename()))
		}
	}

	tasks := make([]domain.DownloadTask, 0, len(order))
	for _, id := range order {
		tasks = append(tasks, *byID[id])
	}
	return tasks
}

// CountTargets sums the target paths across tasks.
func CountTargets(tasks []domain.DownloadTask) int {
	n := 0
	for _, t := range tasks {
		n += len(t.Targets)
	}
	return n
}
