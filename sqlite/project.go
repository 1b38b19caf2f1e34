package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/citedoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ citedoc.ProjectService = (*ProjectService)(nil)

// ProjectService implements citedoc.ProjectService using SQLite.
type ProjectService struct {
	db *DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *DB) *ProjectService {
	return &ProjectService{db: db}
}

const projectColumns = "id, name, created_at, updated_at"

// CreateProject creates a new project.
func (s *ProjectService) CreateProject(ctx context.Context, project *citedoc.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	project.ID = uuid.New().String()
	now := s.db.now()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, project.ID, project.Name, project.CreatedAt.Format(time.RFC3339), project.UpdatedAt.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return citedoc.Errorf(citedoc.ECONFLICT, "project %q already exists", project.Name)
	}
	return err
}

// FindProjectByID retrieves a project by ID.
func (s *ProjectService) FindProjectByID(ctx context.Context, id string) (*citedoc.Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	project, err := scanProject(row)
	if err != nil {
		return nil, notFound(err, "project")
	}
	return project, nil
}

// FindProjects retrieves projects matching the filter.
func (s *ProjectService) FindProjects(ctx context.Context, filter citedoc.ProjectFilter) ([]*citedoc.Project, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + projectColumns + " FROM projects WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC, name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*citedoc.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// UpdateProject updates an existing project.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, upd citedoc.ProjectUpdate) (*citedoc.Project, error) {
	project, err := s.FindProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		project.Name = *upd.Name
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	project.UpdatedAt = s.db.now()

	_, err = s.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, updated_at = ?
		WHERE id = ?
	`, project.Name, project.UpdatedAt.Format(time.RFC3339), id)
	if isUniqueViolation(err) {
		return nil, citedoc.Errorf(citedoc.ECONFLICT, "project %q already exists", project.Name)
	}
	if err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject permanently removes a project and, through the foreign key
// cascade, all of its documents.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return citedoc.Errorf(citedoc.ENOTFOUND, "project not found")
	}

	return nil
}

func scanProject(row scanner) (*citedoc.Project, error) {
	var project citedoc.Project
	var createdAt, updatedAt string

	if err := row.Scan(&project.ID, &project.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if project.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &project, nil
}
