package memory

import (
	"sync"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
)

// Ensure MetadataStore implements the interface.
var _ driven.MetadataStore = (*MetadataStore)(nil)

// MetadataStore is an in-memory snapshot store keyed by object type.
type MetadataStore struct {
	mu          sync.Mutex
	links       map[string]*domain.LinkList
	versions    map[string]*domain.VersionList
	attachments map[string]*domain.AttachmentList
}

// NewMetadataStore creates an empty in-memory metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{
		links:       make(map[string]*domain.LinkList),
		versions:    make(map[string]*domain.VersionList),
		attachments: make(map[string]*domain.AttachmentList),
	}
}

// LoadLinks implements driven.MetadataStore.
func (s *MetadataStore) LoadLinks(obj domain.ArchiveObject) (*domain.LinkList, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ll, ok := s.links[obj.ObjType]
	return ll, ok, nil
}

// SaveLinks implements driven.MetadataStore.
func (s *MetadataStore) SaveLinks(obj domain.ArchiveObject, links *domain.LinkList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[obj.ObjType] = links
	return nil
}

// LoadVersions implements driven.MetadataStore.
func (s *MetadataStore) LoadVersions(obj domain.ArchiveObject) (*domain.VersionList, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vl, ok := s.versions[obj.ObjType]
	return vl, ok, nil
}

// SaveVersions implements driven.MetadataStore.
func (s *MetadataStore) SaveVersions(obj domain.ArchiveObject, versions *domain.VersionList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[obj.ObjType] = versions
	return nil
}

// LoadAttachments implements driven.MetadataStore.
func (s *MetadataStore) LoadAttachments(obj domain.ArchiveObject) (*domain.AttachmentList, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	al, ok := s.attachments[obj.ObjType]
	return al, ok, nil
}

// SaveAttachments implements driven.MetadataStore.
func (s *MetadataStore) SaveAttachments(obj domain.ArchiveObject, attachments *domain.AttachmentList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments[obj.ObjType] = attachments
	return nil
}
