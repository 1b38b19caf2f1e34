package citedoc

import (
	"context"
	"time"
)

// Document is the extracted plain text of one ingested source.
type Document struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentHash string `json:"contentHash"`

	// Uncertain is set when extraction flagged the content as possibly
	// incomplete or garbled. Reason says why.
	Uncertain       bool              `json:"uncertain"`
	UncertainReason UncertaintyReason `json:"uncertainReason"`

	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ProjectID == "" {
		return Errorf(EINVALID, "document project ID required")
	}
	if d.Source == "" {
		return Errorf(EINVALID, "document source required")
	}
	if d.UncertainReason != "" && !d.UncertainReason.Valid() {
		return Errorf(EINVALID, "invalid uncertainty reason %q", d.UncertainReason)
	}
	return nil
}

// DisplayName returns the title, falling back to the source.
func (d *Document) DisplayName() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Source
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// UpdateDocument updates an existing document.
	// Returns ENOTFOUND if document does not exist.
	UpdateDocument(ctx context.Context, id string, upd DocumentUpdate) (*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteDocumentsByProject removes all documents for a project.
	DeleteDocumentsByProject(ctx context.Context, projectID string) error
}

// SortOrder represents the sort order for document queries.
type SortOrder string

// SortOrder constants for DocumentFilter.
const (
	SortByCreatedAt SortOrder = "created_at"
	SortByPosition  SortOrder = "position"
)

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	ProjectID *string `json:"projectId"`
	Source    *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// DocumentUpdate represents fields that can be updated on a document.
type DocumentUpdate struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Position *int    `json:"position"`
}
