package session

import (
	"context"

	"github.com/google/uuid"
)

// Store keeps one Log per session id. Logs live until their session expires
// or is deleted; a Store never truncates or reorders a Log.
type Store interface {
	// GetOrCreate returns the log for id, starting an empty one if needed.
	GetOrCreate(ctx context.Context, id string) *Log

	// Delete ends a session and drops its log. The next GetOrCreate for the
	// same id starts an empty log.
	Delete(ctx context.Context, id string)

	// Len returns the number of live sessions.
	Len() int
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like a value produced by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
