// Package cart implements the bag: an in-memory entry list persisted as a
// single JSON blob under one key, reconciled against storage on a fixed poll.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MaxEntries is the hard cap on distinct bag entries.
const MaxEntries = 30

// ErrCartFull is returned when an add would push the bag past MaxEntries.
var ErrCartFull = errors.New("cart is full")

// Entry is one line in the bag. Entries are immutable; changing a quantity
// means removing the entry and adding a new one. The JSON tags are the
// persisted blob shape, so external writers of the key must match them.
type Entry struct {
	ID          string          `json:"bagId"`
	ItemID      string          `json:"id"`
	DisplayName string          `json:"displayName"`
	Quantity    int             `json:"amount"`
	PriceDelta  decimal.Decimal `json:"priceIncrease"`
}

// Store holds one session's bag. It is the sole writer of its blob; every
// mutation persists the whole entry list and signals the change listener.
// Persistence failures degrade to logging; no operation returns a storage
// error to its caller.
type Store struct {
	key   string
	blobs BlobStore

	mu      sync.Mutex
	entries []Entry

	onChange func()

	now     func() time.Time
	randInt func(n int) int
}

// New creates a Store persisting under the given blob key. The caller is
// expected to Sync once before first use.
func New(blobs BlobStore, key string) *Store {
	return &Store{
		key:     key,
		blobs:   blobs,
		now:     time.Now,
		randInt: rand.Intn,
	}
}

// SetOnChange registers a listener invoked after every mutation, once the
// new state has been persisted. Used to refresh the checkout summary.
func (s *Store) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Add appends a new entry with a freshly generated id and persists the bag.
// Quantity and delta bounds are the customization flow's responsibility;
// only the entry cap is enforced here.
func (s *Store) Add(ctx context.Context, itemID, displayName string, quantity int, priceDelta decimal.Decimal) (Entry, error) {
	s.mu.Lock()
	if len(s.entries) >= MaxEntries {
		s.mu.Unlock()
		return Entry{}, ErrCartFull
	}

	entry := Entry{
		ID:          s.newEntryID(),
		ItemID:      itemID,
		DisplayName: displayName,
		Quantity:    quantity,
		PriceDelta:  priceDelta,
	}
	s.entries = append(s.entries, entry)
	notify := s.saveLocked(ctx)
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return entry, nil
}

// Remove drops the entry with the matching id. A miss is a no-op, but the
// bag is persisted either way.
func (s *Store) Remove(ctx context.Context, entryID string) {
	s.mu.Lock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	notify := s.saveLocked(ctx)
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Clear empties the bag, persisting the empty list.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.entries = nil
	notify := s.saveLocked(ctx)
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Sync reloads the bag from the blob store. A missing blob, a parse
// failure, or a non-array payload all reset the bag to empty; a storage
// read error leaves the current state in place. Sync never notifies the
// change listener.
func (s *Store) Sync(ctx context.Context) {
	data, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		log.Printf("ERROR: sync cart %s: %v", s.key, err)
		return
	}

	var entries []Entry
	if data != nil {
		if err := json.Unmarshal(data, &entries); err != nil {
			entries = nil
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// Entries returns a copy of the current bag in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the current number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// saveLocked persists the full bag as one blob. Callers must hold s.mu.
// It returns the change listener to invoke after the lock is released.
func (s *Store) saveLocked(ctx context.Context) func() {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("ERROR: marshal cart %s: %v", s.key, err)
		return s.onChange
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		log.Printf("ERROR: persist cart %s: %v", s.key, err)
	}
	return s.onChange
}

// newEntryID builds an id from the current unix-millisecond timestamp and a
// random component, matching the persisted id format of existing carts.
func (s *Store) newEntryID() string {
	return strconv.FormatInt(s.now().UnixMilli(), 10) + strconv.Itoa(s.randInt(100000))
}
