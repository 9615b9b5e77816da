package domain

// DocumentLink is one (record, document) link row.
// A single document may be linked to many records; every link gets
// its own on-disk copy under its own grouping directory.
type DocumentLink struct {
	// LinkedEntityID is the id of the record the document is attached to.
	LinkedEntityID string

	// ContentDocumentID is the id of the linked document.
	ContentDocumentID string

	// DirName is the grouping directory value resolved at fetch time
	// from the configured dir name field. Empty means "use the
	// linked record id".
	DirName string
}

// GroupDir returns the grouping directory for this link.
func (l DocumentLink) GroupDir() string {
	if l.DirName != "" {
		return l.DirName
	}
	return l.LinkedEntityID
}

// key dedupes links on the (record, document) pair.
func (l DocumentLink) key() string {
	return l.LinkedEntityID + "_" + l.ContentDocumentID
}

// LinkList is an in-memory set of document links, deduplicated on the
// (record, document) pair. Immutable once metadata indexing completes.
type LinkList struct {
	order []string
	data  map[string]DocumentLink
}

// NewLinkList returns an empty link list.
func NewLinkList() *LinkList {
	return &LinkList{data: make(map[string]DocumentLink)}
}

// Add inserts a link, replacing any previous row for the same pair.
func (ll *LinkList) Add(link DocumentLink) {
	k := link.key()
	if _, ok := ll.data[k]; !ok {
		ll.order = append(ll.order, k)
	}
	ll.data[k] = link
}

// Links returns the links in insertion order.
func (ll *LinkList) Links() []DocumentLink {
	out := make([]DocumentLink, 0, len(ll.order))
	for _, k := range ll.order {
		out = append(out, ll.data[k])
	}
	return out
}

// DocumentIDs returns the distinct document ids across all links,
// in first-seen order.
func (ll *LinkList) DocumentIDs() []string {
	seen := make(map[string]struct{}, len(ll.order))
	out := make([]string, 0, len(ll.order))
	for _, k := range ll.order {
		id := ll.data[k].ContentDocumentID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Len returns the number of links.
func (ll *LinkList) Len() int {
	return len(ll.data)
}
