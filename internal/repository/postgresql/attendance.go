package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// PunchIn implements attendance.AttendanceRepository.
//
// The INSERT carries its own guard: the SELECT source row only exists
// when no open record is present for the employee on the work date, so
// two concurrent punch-ins cannot both insert. A partial unique index
// on (user_id, work_date) WHERE punch_out IS NULL backs this up at the
// schema level.
func (a *attendanceRepository) PunchIn(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (user_id, work_date, punch_in, status)
		SELECT $1, $2, $3, $4
		WHERE NOT EXISTS (
			SELECT 1 FROM attendances
			WHERE user_id = $1 AND work_date = $2 AND punch_out IS NULL
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.UserID,
		record.WorkDate,
		record.PunchIn,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to punch in: %w", err)
	}

	return record, nil
}

// PunchOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) PunchOut(ctx context.Context, userID string, workDate time.Time, punchOut time.Time, workedMinutes int) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET punch_out = $3, worked_minutes = $4, updated_at = NOW()
		WHERE user_id = $1 AND work_date = $2 AND punch_out IS NULL
		RETURNING id, user_id, work_date, punch_in, punch_out, worked_minutes, status, created_at, updated_at
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, userID, workDate, punchOut, workedMinutes).Scan(
		&att.ID, &att.UserID, &att.WorkDate, &att.PunchIn, &att.PunchOut,
		&att.WorkedMinutes, &att.Status, &att.CreatedAt, &att.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoOpenSession
		}
		return attendance.Attendance{}, fmt.Errorf("failed to punch out: %w", err)
	}

	return att, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, userID string, workDate time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, work_date, punch_in, punch_out, worked_minutes, status, created_at, updated_at
		FROM attendances
		WHERE user_id = $1 AND work_date = $2 AND punch_out IS NULL
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, userID, workDate).Scan(
		&att.ID, &att.UserID, &att.WorkDate, &att.PunchIn, &att.PunchOut,
		&att.WorkedMinutes, &att.Status, &att.CreatedAt, &att.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &att, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := `WHERE a.user_id = $1`
	args := []interface{}{userID}

	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		where += fmt.Sprintf(" AND a.work_date >= $%d", len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		where += fmt.Sprintf(" AND a.work_date <= $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.work_date, a.punch_in, a.punch_out,
			   a.worked_minutes, a.status, a.created_at, a.updated_at,
			   u.name AS user_name
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		%s
		ORDER BY a.work_date DESC, a.punch_in DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.UserID, &att.WorkDate, &att.PunchIn, &att.PunchOut,
			&att.WorkedMinutes, &att.Status, &att.CreatedAt, &att.UpdatedAt,
			&att.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}

// ListByUserBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, work_date, punch_in, punch_out, worked_minutes, status, created_at, updated_at
		FROM attendances
		WHERE user_id = $1 AND work_date >= $2 AND work_date <= $3
		ORDER BY work_date ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances between dates: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.UserID, &att.WorkDate, &att.PunchIn, &att.PunchOut,
			&att.WorkedMinutes, &att.Status, &att.CreatedAt, &att.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}
