package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "report 2024.pdf", "report 2024.pdf"},
		{"path separators", `a/b\c`, "a-b-c"},
		{"windows reserved", `q?u%e*s:t|i"o<n>s`, "q-u-e-s-t-i-o-n-s"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestContentVersionFilename(t *testing.T) {
	v := ContentVersion{
		VersionID:     "068A",
		DocumentID:    "069A",
		Title:         "Q1/Q2 Report",
		Extension:     "pdf",
		VersionNumber: 3,
	}
	assert.Equal(t, "069A_3_068A_Q1-Q2 Report.pdf", v.Filename())

	// Stable: the ledger path column depends on it.
	assert.Equal(t, v.Filename(), v.Filename())
}

func TestContentVersionArtifact(t *testing.T) {
	v := ContentVersion{VersionID: "068A", VersionChecksum: "abc123", ContentSize: 42}
	assert.Equal(t, KindContentVersion, v.Kind())
	assert.Equal(t, "068A", v.ID())
	assert.Equal(t, int64(42), v.Size())

	sum, ok := v.Checksum()
	assert.True(t, ok)
	assert.Equal(t, "abc123", sum)
}

func TestAttachmentArtifact(t *testing.T) {
	a := Attachment{AttachmentID: "00PA", ParentID: "001A", Name: "scan: front.tiff", ContentSize: 7}
	assert.Equal(t, KindAttachment, a.Kind())
	assert.Equal(t, "00PA", a.ID())
	assert.Equal(t, "00PA_scan- front.tiff", a.Filename())
	assert.Equal(t, int64(7), a.Size())

	_, ok := a.Checksum()
	assert.False(t, ok, "attachments carry no checksum")
}

func TestAPIUsagePercent(t *testing.T) {
	assert.Equal(t, 0.0, APIUsage{}.Percent())
	assert.Equal(t, 0.0, APIUsage{Used: 5, Total: 0}.Percent())
	assert.Equal(t, 50.0, APIUsage{Used: 50, Total: 100}.Percent())
	assert.Equal(t, 33.33, APIUsage{Used: 1, Total: 3}.Percent())
	assert.Equal(t, 100.0, APIUsage{Used: 100, Total: 100}.Percent())
}
