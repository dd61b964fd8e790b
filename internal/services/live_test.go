package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liveagenda/internal/domain"
)

// fakeLiveRepo is an in-memory LiveRepository for tests.
type fakeLiveRepo struct {
	byID   map[string]*domain.Live
	nextID int
	err    error // if set, every method returns this error
}

func newFakeLiveRepo() *fakeLiveRepo {
	return &fakeLiveRepo{
		byID:   make(map[string]*domain.Live),
		nextID: 1,
	}
}

func (f *fakeLiveRepo) Create(ctx context.Context, l *domain.Live) error {
	if f.err != nil {
		return f.err
	}
	l.ID = fmt.Sprintf("live-%d", f.nextID)
	f.nextID++
	f.byID[l.ID] = l
	return nil
}

func (f *fakeLiveRepo) GetByID(ctx context.Context, id string) (*domain.Live, error) {
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func (f *fakeLiveRepo) Search(ctx context.Context, filter domain.LiveFilter, params domain.PaginationParams) ([]*domain.Live, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var matches []*domain.Live
	for i := 1; i < f.nextID; i++ {
		l, ok := f.byID[fmt.Sprintf("live-%d", i)]
		if !ok || !l.Active {
			continue
		}
		if filter.CreatorID != "" && l.Creator != filter.CreatorID {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(l.Title), q) && !strings.Contains(strings.ToLower(l.Description), q) {
				continue
			}
		}
		matches = append(matches, l)
	}
	total := len(matches)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

func (f *fakeLiveRepo) Deactivate(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	l, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !l.Active {
		return domain.ErrConflict
	}
	l.Active = false
	return nil
}

// fakeSavedLiveRepo is an in-memory SavedLiveRepository for tests.
type fakeSavedLiveRepo struct {
	byID    map[string]*domain.SavedLive
	nextID  int
	err     error
	creates int
}

func newFakeSavedLiveRepo() *fakeSavedLiveRepo {
	return &fakeSavedLiveRepo{
		byID:   make(map[string]*domain.SavedLive),
		nextID: 1,
	}
}

func (f *fakeSavedLiveRepo) GetByUserAndLive(ctx context.Context, userID, liveID string) (*domain.SavedLive, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.UserID == userID && e.LiveID == liveID {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSavedLiveRepo) Create(ctx context.Context, e *domain.SavedLive) error {
	if f.err != nil {
		return f.err
	}
	f.creates++
	e.ID = fmt.Sprintf("edge-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeSavedLiveRepo) Reactivate(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Active = true
	return nil
}

func (f *fakeSavedLiveRepo) Deactivate(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !e.Active {
		return domain.ErrConflict
	}
	e.Active = false
	return nil
}

func newTestLiveService(liveRepo domain.LiveRepository, savedRepo domain.SavedLiveRepository) domain.LiveService {
	return NewLiveService(liveRepo, savedRepo, 2*time.Second)
}

func seedLive(t *testing.T, repo *fakeLiveRepo, title, description, creator string) *domain.Live {
	t.Helper()
	now := time.Now()
	l := domain.NewLive(title, description, now.AddDate(0, 1, 0), "19:00:00", 30, creator, now, now)
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}

func TestLiveService_CreateLive(t *testing.T) {
	ctx := context.Background()

	t.Run("success assigns creator and id", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		now := time.Now()
		live := domain.NewLive("Go release party", "Live stream", now.AddDate(0, 1, 0), "19:00:00", 30, "", now, now)
		err := svc.CreateLive(ctx, "user-1", live)
		require.NoError(t, err)
		assert.NotEmpty(t, live.ID)
		assert.Equal(t, "user-1", live.Creator)
		assert.True(t, live.Active)
	})

	t.Run("missing caller fails", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		now := time.Now()
		live := domain.NewLive("Go release party", "Live stream", now, "19:00:00", 0, "", now, now)
		err := svc.CreateLive(ctx, "", live)
		require.Error(t, err)
		assert.Empty(t, liveRepo.byID)
	})

	t.Run("repo error propagates", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		liveRepo.err = errors.New("db down")
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		now := time.Now()
		live := domain.NewLive("Go release party", "Live stream", now, "19:00:00", 0, "", now, now)
		err := svc.CreateLive(ctx, "user-1", live)
		require.Error(t, err)
	})
}

func TestLiveService_ListLives(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page and total", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		for i := 0; i < 5; i++ {
			seedLive(t, liveRepo, fmt.Sprintf("Live %d", i), "desc", "user-1")
		}
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		lives, total, err := svc.ListLives(ctx, "", domain.PaginationParams{Page: 0, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, lives, 2)
		assert.Equal(t, 5, total)

		lives, total, err = svc.ListLives(ctx, "", domain.PaginationParams{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, lives, 1)
		assert.Equal(t, 5, total)
	})

	t.Run("total counts all matches, not just the page", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		for i := 0; i < 7; i++ {
			seedLive(t, liveRepo, "Go meetup", "desc", "user-1")
		}
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		lives, total, err := svc.ListLives(ctx, "go", domain.PaginationParams{Page: 0, PageSize: 3})
		require.NoError(t, err)
		assert.Len(t, lives, 3)
		assert.Equal(t, 7, total)
	})

	t.Run("search matches title or description", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		seedLive(t, liveRepo, "Go release party", "live stream", "user-1")
		seedLive(t, liveRepo, "Cooking show", "learn Go recipes", "user-2")
		seedLive(t, liveRepo, "Jazz night", "music", "user-2")
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		lives, total, err := svc.ListLives(ctx, "go", domain.PaginationParams{Page: 0, PageSize: 20})
		require.NoError(t, err)
		assert.Len(t, lives, 2)
		assert.Equal(t, 2, total)
	})

	t.Run("deleted lives are excluded", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		l := seedLive(t, liveRepo, "Go release party", "live stream", "user-1")
		seedLive(t, liveRepo, "Jazz night", "music", "user-2")
		require.NoError(t, liveRepo.Deactivate(ctx, l.ID))
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		lives, total, err := svc.ListLives(ctx, "", domain.PaginationParams{Page: 0, PageSize: 20})
		require.NoError(t, err)
		assert.Len(t, lives, 1)
		assert.Equal(t, 1, total)
	})

	t.Run("no matches yields empty slice, not nil", func(t *testing.T) {
		svc := newTestLiveService(newFakeLiveRepo(), newFakeSavedLiveRepo())

		lives, total, err := svc.ListLives(ctx, "nothing", domain.PaginationParams{Page: 0, PageSize: 20})
		require.NoError(t, err)
		assert.NotNil(t, lives)
		assert.Empty(t, lives)
		assert.Zero(t, total)
	})

	t.Run("repo error propagates", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		liveRepo.err = errors.New("db down")
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		_, _, err := svc.ListLives(ctx, "", domain.PaginationParams{Page: 0, PageSize: 20})
		require.Error(t, err)
	})
}

func TestLiveService_ListUserLives(t *testing.T) {
	ctx := context.Background()

	t.Run("scoped to creator", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		seedLive(t, liveRepo, "A", "a", "user-1")
		seedLive(t, liveRepo, "B", "b", "user-2")
		seedLive(t, liveRepo, "C", "c", "user-1")
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		lives, total, err := svc.ListUserLives(ctx, "user-1", "", domain.PaginationParams{Page: 0, PageSize: 20})
		require.NoError(t, err)
		assert.Len(t, lives, 2)
		assert.Equal(t, 2, total)
		for _, l := range lives {
			assert.Equal(t, "user-1", l.Creator)
		}
	})

	t.Run("user with no lives gets empty page, not an error", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		lives, total, err := svc.ListUserLives(ctx, "user-9", "", domain.PaginationParams{Page: 0, PageSize: 20})
		require.NoError(t, err)
		assert.NotNil(t, lives)
		assert.Empty(t, lives)
		assert.Zero(t, total)
	})
}

func TestLiveService_DeleteLive(t *testing.T) {
	ctx := context.Background()

	t.Run("success marks the live inactive", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		l := seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		got, err := svc.DeleteLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		assert.Equal(t, l.ID, got.ID)
		assert.False(t, got.Active)
		assert.False(t, liveRepo.byID[l.ID].Active)
	})

	t.Run("missing live returns ErrNotFound", func(t *testing.T) {
		svc := newTestLiveService(newFakeLiveRepo(), newFakeSavedLiveRepo())

		_, err := svc.DeleteLive(ctx, "user-1", "live-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("second delete returns ErrConflict", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		l := seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		_, err := svc.DeleteLive(ctx, "user-1", l.ID)
		require.NoError(t, err)
		_, err = svc.DeleteLive(ctx, "user-1", l.ID)
		require.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("repo error propagates", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		liveRepo.err = errors.New("db down")
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		_, err := svc.DeleteLive(ctx, "user-1", "live-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLiveService_SaveLive(t *testing.T) {
	ctx := context.Background()

	t.Run("first save creates an active edge", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		savedRepo := newFakeSavedLiveRepo()
		l := seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, savedRepo)

		edge, err := svc.SaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, edge.ID)
		assert.Equal(t, "user-2", edge.UserID)
		assert.Equal(t, l.ID, edge.LiveID)
		assert.True(t, edge.Active)
		assert.Equal(t, 1, savedRepo.creates)
	})

	t.Run("saving a missing live returns ErrNotFound", func(t *testing.T) {
		svc := newTestLiveService(newFakeLiveRepo(), newFakeSavedLiveRepo())

		_, err := svc.SaveLive(ctx, "user-1", "live-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("double save is idempotent and never duplicates the edge", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		savedRepo := newFakeSavedLiveRepo()
		l := seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, savedRepo)

		first, err := svc.SaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		second, err := svc.SaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.Active)
		assert.Equal(t, 1, savedRepo.creates)
		assert.Len(t, savedRepo.byID, 1)
	})

	t.Run("save after unsave reactivates the same edge", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		savedRepo := newFakeSavedLiveRepo()
		l := seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, savedRepo)

		first, err := svc.SaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		_, err = svc.UnsaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)

		again, err := svc.SaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.True(t, again.Active)
		assert.Equal(t, 1, savedRepo.creates)
	})

	t.Run("saves are per user", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		savedRepo := newFakeSavedLiveRepo()
		l := seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, savedRepo)

		e1, err := svc.SaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		e2, err := svc.SaveLive(ctx, "user-3", l.ID)
		require.NoError(t, err)
		assert.NotEqual(t, e1.ID, e2.ID)
		assert.Equal(t, 2, savedRepo.creates)
	})
}

func TestLiveService_UnsaveLive(t *testing.T) {
	ctx := context.Background()

	t.Run("success deactivates the edge", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		savedRepo := newFakeSavedLiveRepo()
		l := seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, savedRepo)

		saved, err := svc.SaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)

		edge, err := svc.UnsaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, edge.ID)
		assert.False(t, edge.Active)
	})

	t.Run("never saved returns ErrNotFound", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		l := seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, newFakeSavedLiveRepo())

		_, err := svc.UnsaveLive(ctx, "user-2", l.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("second unsave returns ErrNotFound", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		savedRepo := newFakeSavedLiveRepo()
		l := seedLive(t, liveRepo, "A", "a", "user-1")
		svc := newTestLiveService(liveRepo, savedRepo)

		_, err := svc.SaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		_, err = svc.UnsaveLive(ctx, "user-2", l.ID)
		require.NoError(t, err)
		_, err = svc.UnsaveLive(ctx, "user-2", l.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("repo error propagates", func(t *testing.T) {
		liveRepo := newFakeLiveRepo()
		savedRepo := newFakeSavedLiveRepo()
		savedRepo.err = errors.New("db down")
		svc := newTestLiveService(liveRepo, savedRepo)

		_, err := svc.UnsaveLive(ctx, "user-2", "live-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}
