package room

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/y122132/pet-trainer-sub000/internal/constants"
)

// RedisRepository stores the room aggregate, roster, selections, turn lock
// and user index in redis. All keys expire with the configured room TTL
// except the lock, whose TTL is passed per acquisition.
type RedisRepository struct {
	rdb     *redis.Client
	roomTTL time.Duration
}

func NewRedisRepository(rdb *redis.Client, roomTTL time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, roomTTL: roomTTL}
}

func roomKey(id string) string       { return constants.RedisKeyRoom + id }
func playersKey(id string) string    { return constants.RedisKeyPlayers + id }
func selectionsKey(id string) string { return constants.RedisKeySelections + id }
func lockKey(id string) string       { return constants.RedisKeyTurnLock + id }
func userRoomKey(id string) string   { return constants.RedisKeyUserRoom + id }

func (r *RedisRepository) SaveRoom(ctx context.Context, rm *Room) error {
	rm.SchemaVersion = SchemaVersion
	raw, err := json.Marshal(rm)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", rm.ID, err)
	}
	if err := r.rdb.Set(ctx, roomKey(rm.ID), raw, r.roomTTL).Err(); err != nil {
		return fmt.Errorf("save room %s: %w", rm.ID, err)
	}
	// Keep the side keys on the same clock as the document.
	r.rdb.Expire(ctx, playersKey(rm.ID), r.roomTTL)
	r.rdb.Expire(ctx, selectionsKey(rm.ID), r.roomTTL)
	return nil
}

func (r *RedisRepository) LoadRoom(ctx context.Context, id string) (*Room, error) {
	raw, err := r.rdb.Get(ctx, roomKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", id, err)
	}
	var rm Room
	if err := json.Unmarshal(raw, &rm); err != nil {
		return nil, fmt.Errorf("decode room %s: %w", id, err)
	}
	if rm.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: room %s has version %d, want %d", ErrSchemaVersion, id, rm.SchemaVersion, SchemaVersion)
	}
	return &rm, nil
}

func (r *RedisRepository) DeleteRoom(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, roomKey(id), playersKey(id), selectionsKey(id), lockKey(id)).Err(); err != nil {
		return fmt.Errorf("delete room %s: %w", id, err)
	}
	return nil
}

func (r *RedisRepository) AddPlayer(ctx context.Context, roomID, userID string) error {
	if err := r.rdb.SAdd(ctx, playersKey(roomID), userID).Err(); err != nil {
		return fmt.Errorf("add player to room %s: %w", roomID, err)
	}
	return r.rdb.Expire(ctx, playersKey(roomID), r.roomTTL).Err()
}

func (r *RedisRepository) RemovePlayer(ctx context.Context, roomID, userID string) error {
	return r.rdb.SRem(ctx, playersKey(roomID), userID).Err()
}

func (r *RedisRepository) Players(ctx context.Context, roomID string) ([]string, error) {
	return r.rdb.SMembers(ctx, playersKey(roomID)).Result()
}

func (r *RedisRepository) PlayerCount(ctx context.Context, roomID string) (int, error) {
	n, err := r.rdb.SCard(ctx, playersKey(roomID)).Result()
	return int(n), err
}

func (r *RedisRepository) SubmitMove(ctx context.Context, roomID, userID string, moveID int) error {
	if err := r.rdb.HSet(ctx, selectionsKey(roomID), userID, moveID).Err(); err != nil {
		return fmt.Errorf("submit move in room %s: %w", roomID, err)
	}
	return r.rdb.Expire(ctx, selectionsKey(roomID), r.roomTTL).Err()
}

func (r *RedisRepository) Selections(ctx context.Context, roomID string) (map[string]int, error) {
	raw, err := r.rdb.HGetAll(ctx, selectionsKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read selections in room %s: %w", roomID, err)
	}
	out := make(map[string]int, len(raw))
	for user, v := range raw {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("corrupt selection %q in room %s: %w", v, roomID, err)
		}
		out[user] = id
	}
	return out, nil
}

func (r *RedisRepository) ClearSelections(ctx context.Context, roomID string) error {
	return r.rdb.Del(ctx, selectionsKey(roomID)).Err()
}

// AcquireTurnLock is a single SETNX-with-expiry call. The TTL bounds
// recovery time if the holder crashes mid-resolution; it is not tied to
// any particular resolution duration.
func (r *RedisRepository) AcquireTurnLock(ctx context.Context, roomID string, ttl time.Duration) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, lockKey(roomID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire turn lock for room %s: %w", roomID, err)
	}
	return ok, nil
}

func (r *RedisRepository) ReleaseTurnLock(ctx context.Context, roomID string) error {
	return r.rdb.Del(ctx, lockKey(roomID)).Err()
}

func (r *RedisRepository) SetUserRoom(ctx context.Context, userID, roomID string) error {
	return r.rdb.Set(ctx, userRoomKey(userID), roomID, r.roomTTL).Err()
}

func (r *RedisRepository) UserRoom(ctx context.Context, userID string) (string, error) {
	v, err := r.rdb.Get(ctx, userRoomKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

func (r *RedisRepository) ClearUserRoom(ctx context.Context, userID string) error {
	return r.rdb.Del(ctx, userRoomKey(userID)).Err()
}
