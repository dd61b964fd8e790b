package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"liveagenda/internal/domain"
)

type liveRepository struct {
	DB *sql.DB
}

func NewLiveRepository(db *sql.DB) domain.LiveRepository {
	return &liveRepository{
		DB: db,
	}
}

func (r *liveRepository) Create(ctx context.Context, l *domain.Live) error {
	query := `
		INSERT INTO lives (title, description, date, time, reminder_in, creator, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		l.Title, l.Description, l.Date, l.Time, l.ReminderIn, l.Creator, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
}

func (r *liveRepository) GetByID(ctx context.Context, id string) (*domain.Live, error) {
	query := `
		SELECT id, title, description, date, time, reminder_in, creator, active, created_at, updated_at
		FROM lives
		WHERE id = $1
	`
	l := &domain.Live{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.Title, &l.Description, &l.Date, &l.Time, &l.ReminderIn, &l.Creator, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// Search returns one page of active lives matching the filter plus the total
// match count across all pages. Rows are ordered by creation time (id as
// tiebreak) so paging is stable.
func (r *liveRepository) Search(ctx context.Context, filter domain.LiveFilter, params domain.PaginationParams) ([]*domain.Live, int, error) {
	where := []string{"active = TRUE"}
	args := []interface{}{}
	n := 1
	if filter.Query != "" {
		where = append(where, fmt.Sprintf("(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", n, n))
		args = append(args, filter.Query)
		n++
	}
	if filter.CreatorID != "" {
		where = append(where, fmt.Sprintf("creator = $%d", n))
		args = append(args, filter.CreatorID)
		n++
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM lives WHERE %s`, whereClause)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, date, time, reminder_in, creator, active, created_at, updated_at
		FROM lives
		WHERE %s
		ORDER BY created_at, id
		LIMIT $%d OFFSET $%d
	`, whereClause, n, n+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	lives := make([]*domain.Live, 0)
	for rows.Next() {
		l := &domain.Live{}
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Date, &l.Time, &l.ReminderIn, &l.Creator, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, err
		}
		lives = append(lives, l)
	}
	return lives, total, rows.Err()
}

// Deactivate soft-deletes the live. The update is conditional on the active
// flag, so two concurrent deletes of the same live cannot both succeed: the
// loser observes zero affected rows and gets ErrConflict.
func (r *liveRepository) Deactivate(ctx context.Context, id string) error {
	query := `
		UPDATE lives SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND active = TRUE
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM lives WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}
