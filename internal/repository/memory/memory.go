// Package memory keeps the identity store, social graph and notification ledger in process
// memory. WithinTx serialises transactions and restores a snapshot when fn fails, which is
// enough to exercise the orchestrator's atomicity without a database.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"devlink/backend/internal/models"
)

type Store struct {
	// txMu is held for the whole of a transaction, mu only around single reads and writes.
	txMu sync.Mutex
	mu   sync.Mutex

	users         map[uint]models.User
	follows       map[pair]models.Follow
	notifications map[uint]models.Notification

	nextUserID   uint
	nextFollowID uint
	nextNotifyID uint

	now func() time.Time
}

type pair struct {
	follower, following uint
}

type txKey struct{}

func NewStore() *Store {
	return &Store{
		users:         map[uint]models.User{},
		follows:       map[pair]models.Follow{},
		notifications: map[uint]models.Notification{},
		now:           time.Now,
	}
}

// SetClock replaces the time source, used by tests that need equal timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

type snapshot struct {
	users         map[uint]models.User
	follows       map[pair]models.Follow
	notifications map[uint]models.Notification
	ids           [3]uint
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot{
		users:         maps.Clone(s.users),
		follows:       maps.Clone(s.follows),
		notifications: maps.Clone(s.notifications),
		ids:           [3]uint{s.nextUserID, s.nextFollowID, s.nextNotifyID},
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.follows = snap.follows
	s.notifications = snap.notifications
	s.nextUserID, s.nextFollowID, s.nextNotifyID = snap.ids[0], snap.ids[1], snap.ids[2]
}

// WithinTx implements repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}
