package postgres

import (
	"context"
	"database/sql"
	"errors"

	"liveagenda/internal/domain"
)

type savedLiveRepository struct {
	DB *sql.DB
}

func NewSavedLiveRepository(db *sql.DB) domain.SavedLiveRepository {
	return &savedLiveRepository{
		DB: db,
	}
}

func (r *savedLiveRepository) GetByUserAndLive(ctx context.Context, userID, liveID string) (*domain.SavedLive, error) {
	query := `
		SELECT id, user_id, live_id, active, created_at, updated_at
		FROM saved_lives
		WHERE user_id = $1 AND live_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	e := &domain.SavedLive{}
	err := r.DB.QueryRowContext(ctx, query, userID, liveID).Scan(
		&e.ID, &e.UserID, &e.LiveID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *savedLiveRepository) Create(ctx context.Context, e *domain.SavedLive) error {
	query := `
		INSERT INTO saved_lives (user_id, live_id, active, created_at, updated_at)
		VALUES ($1, $2, TRUE, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.UserID, e.LiveID, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *savedLiveRepository) Reactivate(ctx context.Context, id string) error {
	query := `
		UPDATE saved_lives SET active = TRUE, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate is conditional on the active flag, mirroring the live
// repository: the second of two racing unsaves gets ErrConflict.
func (r *savedLiveRepository) Deactivate(ctx context.Context, id string) error {
	query := `
		UPDATE saved_lives SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND active = TRUE
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM saved_lives WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}
