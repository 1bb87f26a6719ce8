package room

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrRoomNotFound is returned when a room id resolves to nothing,
	// either because it never existed or because its TTL fired.
	ErrRoomNotFound = errors.New("room not found")

	// ErrSchemaVersion is returned when a loaded room document was written
	// by an incompatible build.
	ErrSchemaVersion = errors.New("room document schema version mismatch")
)

// Repository provides the atomic primitives over the external store. Every
// per-room key carries a bounded TTL so an abandoned room self-cleans.
type Repository interface {
	// Aggregate document, saved and loaded as a whole.
	SaveRoom(ctx context.Context, r *Room) error
	LoadRoom(ctx context.Context, id string) (*Room, error)
	DeleteRoom(ctx context.Context, id string) error

	// Roster (set semantics, membership only).
	AddPlayer(ctx context.Context, roomID, userID string) error
	RemovePlayer(ctx context.Context, roomID, userID string) error
	Players(ctx context.Context, roomID string) ([]string, error)
	PlayerCount(ctx context.Context, roomID string) (int, error)

	// Per-room selection map. SubmitMove is an idempotent single write.
	SubmitMove(ctx context.Context, roomID, userID string, moveID int) error
	Selections(ctx context.Context, roomID string) (map[string]int, error)
	ClearSelections(ctx context.Context, roomID string) error

	// AcquireTurnLock succeeds only when no lock exists for the room
	// (atomic set-if-absent with expiry). This is the sole mutual
	// exclusion primitive serializing turn resolution.
	AcquireTurnLock(ctx context.Context, roomID string, ttl time.Duration) (bool, error)
	ReleaseTurnLock(ctx context.Context, roomID string) error

	// User -> room index so a connection can find its active battle.
	SetUserRoom(ctx context.Context, userID, roomID string) error
	UserRoom(ctx context.Context, userID string) (string, error)
	ClearUserRoom(ctx context.Context, userID string) error
}
