package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"liveagenda/internal/domain"
)

type liveService struct {
	liveRepo       domain.LiveRepository
	savedLiveRepo  domain.SavedLiveRepository
	contextTimeout time.Duration
}

func NewLiveService(liveRepo domain.LiveRepository, savedLiveRepo domain.SavedLiveRepository, timeout time.Duration) domain.LiveService {
	return &liveService{
		liveRepo:       liveRepo,
		savedLiveRepo:  savedLiveRepo,
		contextTimeout: timeout,
	}
}

func (s *liveService) CreateLive(ctx context.Context, callerID string, live *domain.Live) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return fmt.Errorf("live creator is required")
	}

	now := time.Now()
	live.Creator = callerID
	live.Active = true
	live.CreatedAt = now
	live.UpdatedAt = now

	return s.liveRepo.Create(ctx, live)
}

func (s *liveService) ListLives(ctx context.Context, query string, params domain.PaginationParams) ([]*domain.Live, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	lives, total, err := s.liveRepo.Search(ctx, domain.LiveFilter{Query: query}, params)
	if err != nil {
		return nil, 0, fmt.Errorf("search lives: %w", err)
	}
	if lives == nil {
		lives = []*domain.Live{}
	}
	return lives, total, nil
}

// ListUserLives scopes the listing to one creator. A creator with no lives
// yields an empty page, not an error.
func (s *liveService) ListUserLives(ctx context.Context, userID, query string, params domain.PaginationParams) ([]*domain.Live, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	lives, total, err := s.liveRepo.Search(ctx, domain.LiveFilter{Query: query, CreatorID: userID}, params)
	if err != nil {
		return nil, 0, fmt.Errorf("search user lives: %w", err)
	}
	if lives == nil {
		lives = []*domain.Live{}
	}
	return lives, total, nil
}

// DeleteLive soft-deletes a live. Deletion is deliberately not idempotent:
// deleting an already-deleted live is ErrConflict so callers can detect the
// double delete. Any authenticated caller may delete any live.
func (s *liveService) DeleteLive(ctx context.Context, callerID, liveID string) (*domain.Live, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	live, err := s.liveRepo.GetByID(ctx, liveID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get live: %w", err)
	}
	if !live.Active {
		return nil, domain.ErrConflict
	}
	if err := s.liveRepo.Deactivate(ctx, liveID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("deactivate live: %w", err)
	}
	live.Active = false
	return live, nil
}

// SaveLive bookmarks a live for the caller. Saving is idempotent: a missing
// edge is created, an inactive edge is reactivated, and an active edge is
// returned as is. At most one active edge ever exists per (user, live).
func (s *liveService) SaveLive(ctx context.Context, callerID, liveID string) (*domain.SavedLive, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.liveRepo.GetByID(ctx, liveID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get live: %w", err)
	}

	edge, err := s.savedLiveRepo.GetByUserAndLive(ctx, callerID, liveID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get saved live: %w", err)
		}
		now := time.Now()
		edge = domain.NewSavedLive(callerID, liveID, now, now)
		if err := s.savedLiveRepo.Create(ctx, edge); err != nil {
			return nil, fmt.Errorf("create saved live: %w", err)
		}
		return edge, nil
	}
	if edge.Active {
		return edge, nil
	}
	if err := s.savedLiveRepo.Reactivate(ctx, edge.ID); err != nil {
		return nil, fmt.Errorf("reactivate saved live: %w", err)
	}
	edge.Active = true
	return edge, nil
}

// UnsaveLive removes the caller's bookmark. An edge that is absent or
// already inactive reads as "not saved" and fails with ErrNotFound; that is
// the only failure mode of this operation.
func (s *liveService) UnsaveLive(ctx context.Context, callerID, liveID string) (*domain.SavedLive, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	edge, err := s.savedLiveRepo.GetByUserAndLive(ctx, callerID, liveID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get saved live: %w", err)
	}
	if !edge.Active {
		return nil, domain.ErrNotFound
	}
	if err := s.savedLiveRepo.Deactivate(ctx, edge.ID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race with a concurrent unsave; the edge is gone either way.
			return nil, domain.ErrNotFound
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("deactivate saved live: %w", err)
	}
	edge.Active = false
	return edge, nil
}
