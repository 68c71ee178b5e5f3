// Package session keeps per-user mini-app state between requests.
package session

import (
	"context"
	"sync"
	"time"
)

// ViewState is the per-user workflow state of the mini-app.
type ViewState struct {
	View              string `json:"view"`
	SelectedServiceID string `json:"selected_service_id,omitempty"`
	EditingOrderID    string `json:"editing_order_id,omitempty"`

	// order form draft
	DraftContact  string `json:"draft_contact,omitempty"`
	DraftDeadline string `json:"draft_deadline,omitempty"`
	DraftNotes    string `json:"draft_notes,omitempty"`
}

// SubmitLockKey is the lock held while a user's order submission is in flight.
func SubmitLockKey(userID string) string {
	return "submit:" + userID
}

type Store interface {
	Get(ctx context.Context, userID string) (ViewState, error)
	Save(ctx context.Context, userID string, st ViewState) error
}

// Locker guards single-flight actions such as order submission.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
	Held(ctx context.Context, key string) (bool, error)
}

// MemoryStore is the in-process Store/Locker used outside Redis deployments and in tests.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]ViewState
	locks  map[string]time.Time
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: map[string]ViewState{},
		locks:  map[string]time.Time{},
		now:    time.Now,
	}
}

func (m *MemoryStore) Get(ctx context.Context, userID string) (ViewState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[userID], nil
}

func (m *MemoryStore) Save(ctx context.Context, userID string, st ViewState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = st
	return nil
}

func (m *MemoryStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if until, ok := m.locks[key]; ok && m.now().Before(until) {
		return false, nil
	}
	m.locks[key] = m.now().Add(ttl)
	return true, nil
}

func (m *MemoryStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

func (m *MemoryStore) Held(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.locks[key]
	return ok && m.now().Before(until), nil
}
