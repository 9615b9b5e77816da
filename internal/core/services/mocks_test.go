package services

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
)

// Ensure the mock satisfies the port.
var _ driven.SalesforceClient = (*mockSalesforce)(nil)

// mockSalesforce is a scriptable in-memory Salesforce.
type mockSalesforce struct {
	mu sync.Mutex

	links       map[string][]domain.DocumentLink
	versions    []domain.ContentVersion
	attachments map[string][]domain.Attachment
	bodies      map[string][]byte

	linksErr    error
	versionsErr error
	fetchErr    map[string]error

	usage    domain.APIUsage
	usageErr error

	fetchCalls   int
	usageCalls   int
	linkCalls    int
	versionCalls int
}

func newMockSalesforce() *mockSalesforce {
	return &mockSalesforce{
		links:       make(map[string][]domain.DocumentLink),
		attachments: make(map[string][]domain.Attachment),
		bodies:      make(map[string][]byte),
		fetchErr:    make(map[string]error),
		usage:       domain.APIUsage{Used: 0, Total: 100},
	}
}

func (m *mockSalesforce) QueryLinks(_ context.Context, obj domain.ArchiveObject) ([]domain.DocumentLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.linkCalls++
	if m.linksErr != nil {
		return nil, m.linksErr
	}
	return m.links[obj.ObjType], nil
}

func (m *mockSalesforce) QueryVersions(_ context.Context, documentIDs []string) ([]domain.ContentVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versionCalls++
	if m.versionsErr != nil {
		return nil, m.versionsErr
	}
	wanted := make(map[string]bool, len(documentIDs))
	for _, id := range documentIDs {
		wanted[id] = true
	}
	var out []domain.ContentVersion
	for _, v := range m.versions {
		if wanted[v.DocumentID] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockSalesforce) QueryAttachments(_ context.Context, obj domain.ArchiveObject) ([]domain.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attachments[obj.ObjType], nil
}

func (m *mockSalesforce) FetchFile(_ context.Context, artifact domain.Artifact) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if err := m.fetchErr[artifact.ID()]; err != nil {
		return nil, err
	}
	body, ok := m.bodies[artifact.ID()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (m *mockSalesforce) APIUsage(_ context.Context) (domain.APIUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usageCalls++
	if m.usageErr != nil {
		return domain.APIUsage{}, m.usageErr
	}
	return m.usage, nil
}

func (m *mockSalesforce) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

func (m *mockSalesforce) setUsage(used, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usage = domain.APIUsage{Used: used, Total: total}
}

// mockUsageSource serves a scripted sequence of usage readings.
type mockUsageSource struct {
	mu       sync.Mutex
	readings []domain.APIUsage
	calls    int
}

func (m *mockUsageSource) APIUsage(_ context.Context) (domain.APIUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.readings) == 0 {
		return domain.APIUsage{}, nil
	}
	reading := m.readings[0]
	if len(m.readings) > 1 {
		m.readings = m.readings[1:]
	}
	return reading, nil
}

func (m *mockUsageSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
