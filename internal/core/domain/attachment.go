package domain

import "fmt"

// Attachment is a legacy single-version file attached to a parent
// record. Attachments carry no checksum; integrity checks compare
// byte sizes instead.
type Attachment struct {
	// AttachmentID is the id of the attachment.
	AttachmentID string

	// ParentID is the id of the record the attachment belongs to.
	ParentID string

	// Name is the display file name.
	Name string

	// ContentSize is the body size in bytes.
	ContentSize int64
}

// Kind implements Artifact.
func (a Attachment) Kind() ArtifactKind { return KindAttachment }

// ID implements Artifact.
func (a Attachment) ID() string { return a.AttachmentID }

// Checksum implements Artifact. Attachments never have one.
func (a Attachment) Checksum() (string, bool) { return "", false }

// Size implements Artifact.
func (a Attachment) Size() int64 { return a.ContentSize }

// Filename implements Artifact.
func (a Attachment) Filename() string {
	return fmt.Sprintf("%s_%s", a.AttachmentID, SanitizeFilename(a.Name))
}

// AttachmentList is an in-memory index of attachments keyed by id,
// with a parent id lookup for task resolution.
type AttachmentList struct {
	order    []string
	data     map[string]Attachment
	byParent map[string][]string
}

// NewAttachmentList returns an empty attachment list.
func NewAttachmentList() *AttachmentList {
	return &AttachmentList{
		data:     make(map[string]Attachment),
		byParent: make(map[string][]string),
	}
}

// Add inserts an attachment, replacing any previous row with the same id.
func (al *AttachmentList) Add(a Attachment) {
	if _, ok := al.data[a.AttachmentID]; !ok {
		al.order = append(al.order, a.AttachmentID)
		al.byParent[a.ParentID] = append(al.byParent[a.ParentID], a.AttachmentID)
	}
	al.data[a.AttachmentID] = a
}

// ForParent returns all attachments of a parent record in insertion order.
func (al *AttachmentList) ForParent(parentID string) []Attachment {
	ids := al.byParent[parentID]
	out := make([]Attachment, 0, len(ids))
	for _, id := range ids {
		out = append(out, al.data[id])
	}
	return out
}

// Attachments returns all attachments in insertion order.
func (al *AttachmentList) Attachments() []Attachment {
	out := make([]Attachment, 0, len(al.order))
	for _, id := range al.order {
		out = append(out, al.data[id])
	}
	return out
}

// Len returns the number of attachments.
func (al *AttachmentList) Len() int {
	return len(al.data)
}
