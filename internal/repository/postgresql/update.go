package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/update"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/database"
)

type updateRepository struct {
	db *database.DB
}

func NewUpdateRepository(db *database.DB) update.UpdateRepository {
	return &updateRepository{db: db}
}

const updateColumns = `
	du.id, du.user_id, du.project_id, du.title, du.status, du.narrative,
	du.image_url, du.hours_spent, du.target_date,
	du.approval_status, du.reviewed_by, du.review_feedback, du.reviewed_at,
	du.created_at, du.updated_at,
	u.name AS user_name, p.title AS project_title
`

const updateJoins = `
	LEFT JOIN users u ON u.id = du.user_id
	LEFT JOIN projects p ON p.id = du.project_id
`

func scanUpdate(row pgx.Row) (update.DailyUpdate, error) {
	var u update.DailyUpdate
	err := row.Scan(
		&u.ID, &u.UserID, &u.ProjectID, &u.Title, &u.Status, &u.Narrative,
		&u.ImageURL, &u.HoursSpent, &u.TargetDate,
		&u.ApprovalStatus, &u.ReviewedBy, &u.ReviewFeedback, &u.ReviewedAt,
		&u.CreatedAt, &u.UpdatedAt,
		&u.UserName, &u.ProjectTitle,
	)
	return u, err
}

// Create implements update.UpdateRepository.
func (r *updateRepository) Create(ctx context.Context, u update.DailyUpdate) (update.DailyUpdate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_updates
			(user_id, project_id, title, status, narrative, image_url, hours_spent, target_date, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.UserID, u.ProjectID, u.Title, u.Status, u.Narrative,
		u.ImageURL, u.HoursSpent, u.TargetDate, u.ApprovalStatus,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return update.DailyUpdate{}, fmt.Errorf("failed to create daily update: %w", err)
	}

	return u, nil
}

// GetByID implements update.UpdateRepository.
func (r *updateRepository) GetByID(ctx context.Context, id string) (update.DailyUpdate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + updateColumns + ` FROM daily_updates du ` + updateJoins + ` WHERE du.id = $1`

	u, err := scanUpdate(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return update.DailyUpdate{}, update.ErrUpdateNotFound
		}
		return update.DailyUpdate{}, fmt.Errorf("failed to get daily update: %w", err)
	}

	return u, nil
}

// List implements update.UpdateRepository.
func (r *updateRepository) List(ctx context.Context, filter update.ListFilter) ([]update.DailyUpdate, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE 1=1`
	var args []interface{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where += fmt.Sprintf(" AND du.user_id = $%d", len(args))
	}
	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		where += fmt.Sprintf(" AND du.created_at::date >= $%d", len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		where += fmt.Sprintf(" AND du.created_at::date <= $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND du.approval_status = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM daily_updates du ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily updates: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM daily_updates du %s
		%s
		ORDER BY du.created_at DESC
		LIMIT $%d OFFSET $%d
	`, updateColumns, updateJoins, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily updates: %w", err)
	}
	defer rows.Close()

	updates, err := collectUpdates(rows)
	if err != nil {
		return nil, 0, err
	}

	return updates, total, nil
}

// ListForSummary implements update.UpdateRepository.
func (r *updateRepository) ListForSummary(ctx context.Context, userID string, startDate, endDate string) ([]update.DailyUpdate, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE du.user_id = $1`
	args := []interface{}{userID}

	if startDate != "" {
		args = append(args, startDate)
		where += fmt.Sprintf(" AND du.created_at::date >= $%d", len(args))
	}
	if endDate != "" {
		args = append(args, endDate)
		where += fmt.Sprintf(" AND du.created_at::date <= $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM daily_updates du %s
		%s
		ORDER BY du.created_at ASC
	`, updateColumns, updateJoins, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily updates for summary: %w", err)
	}
	defer rows.Close()

	return collectUpdates(rows)
}

// Review implements update.UpdateRepository. The UPDATE only matches a
// pending row, so a second decision on the same update falls through to
// the existence check and comes back as ErrUpdateAlreadyReviewed.
func (r *updateRepository) Review(ctx context.Context, id string, status update.ApprovalStatus, reviewerID string, feedback string) (update.DailyUpdate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE daily_updates
		SET approval_status = $2, reviewed_by = $3, review_feedback = $4,
			reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND approval_status = 'pending'
		RETURNING id
	`

	var reviewedID string
	err := q.QueryRow(ctx, query, id, status, reviewerID, feedback).Scan(&reviewedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			checkErr := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM daily_updates WHERE id = $1)`, id).Scan(&exists)
			if checkErr != nil {
				return update.DailyUpdate{}, fmt.Errorf("failed to check daily update existence: %w", checkErr)
			}
			if exists {
				return update.DailyUpdate{}, update.ErrUpdateAlreadyReviewed
			}
			return update.DailyUpdate{}, update.ErrUpdateNotFound
		}
		return update.DailyUpdate{}, fmt.Errorf("failed to review daily update: %w", err)
	}

	return r.GetByID(ctx, reviewedID)
}

func collectUpdates(rows pgx.Rows) ([]update.DailyUpdate, error) {
	var updates []update.DailyUpdate
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily update: %w", err)
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily updates: %w", err)
	}
	return updates, nil
}
