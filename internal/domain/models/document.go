package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// DocumentKind discriminates the origin of an aggregated document.
type DocumentKind string

const (
	DocumentKindTask       DocumentKind = "task"
	DocumentKindAttachment DocumentKind = "attachment"
)

// FolderUncategorized is the bucket label used when no category can be
// resolved for a document. Always non-empty by construction.
const FolderUncategorized = "uncategorized"

// AttachmentsCategory is the fixed sentinel category that the category
// listing always includes for project attachments.
const AttachmentsCategory = "attachments"

// CategoryAll is the filter sentinel that bypasses category filtering.
const CategoryAll = "all"

// Document is the uniform listing representation of a task or a project
// attachment. Exactly one Kind applies; fields for the other kind are
// left zero and omitted from JSON. Documents are built fresh per request
// and never persisted.
type Document struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Kind        DocumentKind `json:"kind"`
	ProjectID   string       `json:"projectId"`
	ProjectName string       `json:"projectName"`
	Category    string       `json:"category,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`

	// Task-only fields
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status,omitempty"`
	Priority    string       `json:"priority,omitempty"`
	Creator     *UserSummary `json:"creator,omitempty"`
	Assignee    *UserSummary `json:"assignee,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Tags        []string     `json:"tags,omitempty"`

	// Attachment-only fields
	UploadedBy string     `json:"uploadedBy,omitempty"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
	URL        string     `json:"url,omitempty"`

	// Folder is the derived grouping key: Category when present,
	// FolderUncategorized otherwise.
	Folder string `json:"folder"`
}

// FolderSet is an insertion-order-preserving mapping from folder name to
// the documents grouped under it. Folder names appear in first-occurrence
// order of the source scan; documents inside a bucket keep their relative
// input order until explicitly sorted.
type FolderSet struct {
	names   []string
	buckets map[string][]Document
}

// NewFolderSet returns an empty folder set.
func NewFolderSet() *FolderSet {
	return &FolderSet{buckets: make(map[string][]Document)}
}

// Add appends doc to the bucket named by its Folder field, creating the
// bucket on first occurrence.
func (fs *FolderSet) Add(doc Document) {
	name := doc.Folder
	if _, ok := fs.buckets[name]; !ok {
		fs.names = append(fs.names, name)
	}
	fs.buckets[name] = append(fs.buckets[name], doc)
}

// Names returns the folder names in first-occurrence order.
func (fs *FolderSet) Names() []string {
	return fs.names
}

// Get returns the documents in the named folder (nil if absent).
func (fs *FolderSet) Get(name string) []Document {
	return fs.buckets[name]
}

// Len returns the number of folders.
func (fs *FolderSet) Len() int {
	return len(fs.names)
}

// MarshalJSON renders the set as a JSON object with keys in
// first-occurrence order.
func (fs *FolderSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range fs.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(fs.buckets[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TypeCounts splits the document total by kind.
type TypeCounts struct {
	Tasks       int `json:"tasks"`
	Attachments int `json:"attachments"`
}

// StatusCounts counts task documents per recognized status. Tasks with
// an unrecognized status increment no bucket.
type StatusCounts struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in-progress"`
	Review     int `json:"review"`
	Done       int `json:"done"`
	Blocked    int `json:"blocked"`
}

// Stats is a read-only snapshot of aggregate counts over a filtered
// document set. Total and the kind/status splits cover the flat filtered
// set; ByCategory is read off the grouped folders.
type Stats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"byCategory"`
	ByType     TypeCounts     `json:"byType"`
	ByStatus   StatusCounts   `json:"byStatus"`
}
