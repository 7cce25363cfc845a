package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) project.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `
	t.id, t.project_id, t.title, t.content, t.assignee_id, t.created_by,
	t.status, t.created_at, t.updated_at,
	u.name AS assignee_name
`

func scanTask(row pgx.Row) (project.Task, error) {
	var t project.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Content, &t.AssigneeID, &t.CreatedBy,
		&t.Status, &t.CreatedAt, &t.UpdatedAt,
		&t.AssigneeName,
	)
	return t, err
}

// Create implements project.TaskRepository.
func (r *taskRepository) Create(ctx context.Context, t project.Task) (project.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (project_id, title, content, assignee_id, created_by, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ProjectID, t.Title, t.Content, t.AssigneeID, t.CreatedBy, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return project.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return t, nil
}

// GetByID implements project.TaskRepository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (project.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee_id
		WHERE t.id = $1
	`

	t, err := scanTask(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Task{}, project.ErrTaskNotFound
		}
		return project.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// ListByAssignee implements project.TaskRepository.
func (r *taskRepository) ListByAssignee(ctx context.Context, assigneeID string) ([]project.Task, error) {
	return r.list(ctx, `t.assignee_id = $1`, assigneeID)
}

// ListByProject implements project.TaskRepository.
func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]project.Task, error) {
	return r.list(ctx, `t.project_id = $1`, projectID)
}

func (r *taskRepository) list(ctx context.Context, cond string, arg interface{}) ([]project.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee_id
		WHERE %s
		ORDER BY t.created_at DESC
	`, taskColumns, cond)

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []project.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// UpdateStatus implements project.TaskRepository.
func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status project.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrTaskNotFound
	}

	return nil
}

// AddComment implements project.TaskRepository. Comments are append-only;
// there is no update or delete statement for them.
func (r *taskRepository) AddComment(ctx context.Context, c project.TaskComment) (project.TaskComment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO task_comments (task_id, author_id, text, attachment_urls)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, c.TaskID, c.AuthorID, c.Text, c.AttachmentURLs).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return project.TaskComment{}, fmt.Errorf("failed to add task comment: %w", err)
	}

	return c, nil
}

// ListComments implements project.TaskRepository.
func (r *taskRepository) ListComments(ctx context.Context, taskID string) ([]project.TaskComment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.task_id, c.author_id, c.text, c.attachment_urls, c.created_at,
			   u.name AS author_name
		FROM task_comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.task_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := q.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task comments: %w", err)
	}
	defer rows.Close()

	var comments []project.TaskComment
	for rows.Next() {
		var c project.TaskComment
		if err := rows.Scan(
			&c.ID, &c.TaskID, &c.AuthorID, &c.Text, &c.AttachmentURLs, &c.CreatedAt,
			&c.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task comments: %w", err)
	}

	return comments, nil
}
