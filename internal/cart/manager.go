package cart

import (
	"context"
	"sync"
	"time"
)

// keyPrefix scopes blob keys per session while keeping the blob version tag
// of the persisted format.
const keyPrefix = "cartData_v3:"

// Key returns the blob key for a session's cart.
func Key(sessionID string) string {
	return keyPrefix + sessionID
}

// Manager hands out one Store per session and runs the shared reconcile
// poll across all of them.
type Manager struct {
	blobs BlobStore

	mu     sync.Mutex
	stores map[string]*Store

	onChange func(sessionID string)
}

// NewManager creates a Manager over the given blob store.
func NewManager(blobs BlobStore) *Manager {
	return &Manager{
		blobs:  blobs,
		stores: make(map[string]*Store),
	}
}

// SetOnChange registers a listener invoked with the session id whenever
// that session's cart mutates. Must be called before the first Cart call.
func (m *Manager) SetOnChange(fn func(sessionID string)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Cart returns the session's store, creating and syncing it on first use.
func (m *Manager) Cart(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	store, ok := m.stores[sessionID]
	if !ok {
		store = New(m.blobs, Key(sessionID))
		if fn := m.onChange; fn != nil {
			store.SetOnChange(func() { fn(sessionID) })
		}
		m.stores[sessionID] = store
	}
	m.mu.Unlock()

	if !ok {
		store.Sync(ctx)
	}
	return store
}

// StartSync reconciles every known store against persisted storage on the
// given interval until ctx is cancelled. Another view of the same cart key
// may have written between ticks; the stale-read window this opens is
// bounded by the interval and accepted.
func (m *Manager) StartSync(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.mu.Lock()
				stores := make([]*Store, 0, len(m.stores))
				for _, s := range m.stores {
					stores = append(stores, s)
				}
				m.mu.Unlock()

				for _, s := range stores {
					s.Sync(ctx)
				}
			}
		}
	}()
}
