package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/citedoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ citedoc.DocumentService = (*DocumentService)(nil)

// DocumentService implements citedoc.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

const documentColumns = "id, project_id, source, title, content, content_hash, uncertain, uncertain_reason, position, created_at"

// CreateDocument creates a new document. The content hash is computed here
// and the uncertainty flag is derived from the reason.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *citedoc.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = s.db.now()
	doc.ContentHash = HashContent(doc.Content)
	if doc.UncertainReason == "" {
		doc.UncertainReason = citedoc.ReasonNone
	}
	doc.Uncertain = doc.UncertainReason.Uncertain()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.ProjectID, doc.Source, doc.Title, doc.Content, doc.ContentHash,
		doc.Uncertain, string(doc.UncertainReason), doc.Position, doc.CreatedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*citedoc.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, notFound(err, "document")
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter citedoc.DocumentFilter) ([]*citedoc.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ProjectID != nil {
		query.WriteString(" AND project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	switch filter.SortBy {
	case citedoc.SortByPosition:
		query.WriteString(" ORDER BY position ASC, created_at ASC")
	default:
		query.WriteString(" ORDER BY created_at DESC, position ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*citedoc.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// UpdateDocument updates an existing document.
func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd citedoc.DocumentUpdate) (*citedoc.Document, error) {
	doc, err := s.FindDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		doc.Title = *upd.Title
	}
	if upd.Content != nil {
		doc.Content = *upd.Content
		doc.ContentHash = HashContent(doc.Content)
	}
	if upd.Position != nil {
		doc.Position = *upd.Position
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE documents
		SET title = ?, content = ?, content_hash = ?, position = ?
		WHERE id = ?
	`, doc.Title, doc.Content, doc.ContentHash, doc.Position, id)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return citedoc.Errorf(citedoc.ENOTFOUND, "document not found")
	}

	return nil
}

// DeleteDocumentsByProject removes all documents for a project.
func (s *DocumentService) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE project_id = ?", projectID)
	return err
}

func scanDocument(row scanner) (*citedoc.Document, error) {
	var doc citedoc.Document
	var reason, createdAt string

	if err := row.Scan(&doc.ID, &doc.ProjectID, &doc.Source, &doc.Title, &doc.Content,
		&doc.ContentHash, &doc.Uncertain, &reason, &doc.Position, &createdAt); err != nil {
		return nil, err
	}
	doc.UncertainReason = citedoc.UncertaintyReason(reason)

	var err error
	if doc.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}
