package domain

import (
	"context"
	"time"
)

// SavedLive is a bookmark edge between a user and a live. The edge is never
// hard-deleted: unsave flips active to false and a later save reactivates
// the same row instead of inserting a duplicate.
// swagger:model SavedLive
type SavedLive struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LiveID    string    `json:"live_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSavedLive returns a new active SavedLive edge. ID is typically set by the repository on create.
func NewSavedLive(userID, liveID string, createdAt, updatedAt time.Time) *SavedLive {
	return &SavedLive{
		UserID:    userID,
		LiveID:    liveID,
		Active:    true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SavedLiveRepository defines the interface for bookmark edge storage.
// GetByUserAndLive returns the most recent edge for the pair, active or not.
type SavedLiveRepository interface {
	GetByUserAndLive(ctx context.Context, userID, liveID string) (*SavedLive, error)
	Create(ctx context.Context, edge *SavedLive) error
	Reactivate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}
