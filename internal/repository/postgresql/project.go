package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/database"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `
	p.id, p.title, p.description, p.deadline, p.assignee_id, p.created_by,
	p.status, p.comment, p.created_at, p.updated_at,
	u.name AS assignee_name
`

func scanProject(row pgx.Row) (project.Project, error) {
	var p project.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Deadline, &p.AssigneeID, &p.CreatedBy,
		&p.Status, &p.Comment, &p.CreatedAt, &p.UpdatedAt,
		&p.AssigneeName,
	)
	return p, err
}

// Create implements project.ProjectRepository.
func (r *projectRepository) Create(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO projects (title, description, deadline, assignee_id, created_by, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.Title, p.Description, p.Deadline, p.AssigneeID, p.CreatedBy, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return project.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return p, nil
}

// GetByID implements project.ProjectRepository.
func (r *projectRepository) GetByID(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		LEFT JOIN users u ON u.id = p.assignee_id
		WHERE p.id = $1
	`

	p, err := scanProject(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}

	return p, nil
}

// ListByAssignee implements project.ProjectRepository.
func (r *projectRepository) ListByAssignee(ctx context.Context, assigneeID string) ([]project.Project, error) {
	return r.list(ctx, `p.assignee_id = $1`, assigneeID)
}

// ListByCreator implements project.ProjectRepository.
func (r *projectRepository) ListByCreator(ctx context.Context, creatorID string) ([]project.Project, error) {
	return r.list(ctx, `p.created_by = $1`, creatorID)
}

func (r *projectRepository) list(ctx context.Context, cond string, arg interface{}) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM projects p
		LEFT JOIN users u ON u.id = p.assignee_id
		WHERE %s
		ORDER BY p.created_at DESC
	`, projectColumns, cond)

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// UpdateStatus implements project.ProjectRepository.
func (r *projectRepository) UpdateStatus(ctx context.Context, id string, status project.Status, comment *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE projects
		SET status = $2, comment = COALESCE($3, comment), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, comment)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}

	return nil
}
