package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by the live and saved-live flows.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Live represents a schedulable live event created by a user.
// swagger:model Live
type Live struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	ReminderIn  int       `json:"reminder_in"`
	Creator     string    `json:"creator"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewLive returns a new active Live. ID is typically set by the repository on create.
func NewLive(title, description string, date time.Time, timeOfDay string, reminderIn int, creator string, createdAt, updatedAt time.Time) *Live {
	return &Live{
		Title:       title,
		Description: description,
		Date:        date,
		Time:        timeOfDay,
		ReminderIn:  reminderIn,
		Creator:     creator,
		Active:      true,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// LiveFilter narrows a live search. Query matches title or description
// case-insensitively; CreatorID, when set, scopes results to one creator.
type LiveFilter struct {
	Query     string
	CreatorID string
}

// LiveRepository defines the interface for live storage.
// Deactivate is a conditional update on the active flag: only one of two
// concurrent calls for the same id can succeed, the other gets ErrConflict.
type LiveRepository interface {
	Create(ctx context.Context, live *Live) error
	GetByID(ctx context.Context, id string) (*Live, error)
	Search(ctx context.Context, filter LiveFilter, params PaginationParams) ([]*Live, int, error)
	Deactivate(ctx context.Context, id string) error
}

// LiveService defines the business logic for the live lifecycle and bookmarks.
type LiveService interface {
	CreateLive(ctx context.Context, callerID string, live *Live) error
	ListLives(ctx context.Context, query string, params PaginationParams) ([]*Live, int, error)
	ListUserLives(ctx context.Context, userID, query string, params PaginationParams) ([]*Live, int, error)
	DeleteLive(ctx context.Context, callerID, liveID string) (*Live, error)
	SaveLive(ctx context.Context, callerID, liveID string) (*SavedLive, error)
	UnsaveLive(ctx context.Context, callerID, liveID string) (*SavedLive, error)
}
