package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultStateTTL = 24 * time.Hour

	fieldView     = "view"
	fieldSelected = "selected_service_id"
	fieldEditing  = "editing_order_id"
	fieldContact  = "draft_contact"
	fieldDeadline = "draft_deadline"
	fieldNotes    = "draft_notes"
)

// RedisStore keeps view state in a hash per user and locks as SETNX keys.
type RedisStore struct {
	client   *redis.Client
	prefix   string
	stateTTL time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "tfh:", stateTTL: defaultStateTTL}
}

func (s *RedisStore) stateKey(userID string) string { return s.prefix + "session:" + userID }
func (s *RedisStore) lockKey(key string) string     { return s.prefix + "lock:" + key }

func (s *RedisStore) Get(ctx context.Context, userID string) (ViewState, error) {
	vals, err := s.client.HGetAll(ctx, s.stateKey(userID)).Result()
	if err != nil {
		return ViewState{}, fmt.Errorf("session get: %w", err)
	}
	return ViewState{
		View:              vals[fieldView],
		SelectedServiceID: vals[fieldSelected],
		EditingOrderID:    vals[fieldEditing],
		DraftContact:      vals[fieldContact],
		DraftDeadline:     vals[fieldDeadline],
		DraftNotes:        vals[fieldNotes],
	}, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, st ViewState) error {
	key := s.stateKey(userID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key,
			fieldView, st.View,
			fieldSelected, st.SelectedServiceID,
			fieldEditing, st.EditingOrderID,
			fieldContact, st.DraftContact,
			fieldDeadline, st.DraftDeadline,
			fieldNotes, st.DraftNotes,
		)
		p.Expire(ctx, key, s.stateTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Acquire returns true if the key was free and is now held for ttl.
func (s *RedisStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.lockKey(key), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("session lock: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.lockKey(key)).Err(); err != nil {
		return fmt.Errorf("session unlock: %w", err)
	}
	return nil
}

func (s *RedisStore) Held(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.lockKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("session lock check: %w", err)
	}
	return n > 0, nil
}
