package mock

import (
	"context"

	"github.com/fwojciec/citedoc"
)

var _ citedoc.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of citedoc.DocumentService.
type DocumentService struct {
	CreateDocumentFn           func(ctx context.Context, doc *citedoc.Document) error
	FindDocumentByIDFn         func(ctx context.Context, id string) (*citedoc.Document, error)
	FindDocumentsFn            func(ctx context.Context, filter citedoc.DocumentFilter) ([]*citedoc.Document, error)
	UpdateDocumentFn           func(ctx context.Context, id string, upd citedoc.DocumentUpdate) (*citedoc.Document, error)
	DeleteDocumentFn           func(ctx context.Context, id string) error
	DeleteDocumentsByProjectFn func(ctx context.Context, projectID string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *citedoc.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*citedoc.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter citedoc.DocumentFilter) ([]*citedoc.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd citedoc.DocumentUpdate) (*citedoc.Document, error) {
	return s.UpdateDocumentFn(ctx, id, upd)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	return s.DeleteDocumentsByProjectFn(ctx, projectID)
}
