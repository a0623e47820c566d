package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"cv-builder/resume/form"
)

var (
	// ErrNotFound indicates the session does not exist or has expired.
	ErrNotFound = errors.New("session not found")

	// ErrFull indicates the store holds MaxSessions live sessions.
	ErrFull = errors.New("session store is full")
)

// DefaultTTL applies when the store is built with a non-positive TTL.
const DefaultTTL = 30 * time.Minute

// Session is one in-memory editing session.
type Session struct {
	ID        string
	Form      *form.Form
	CreatedAt time.Time
	lastSeen  time.Time
}

// Store holds sessions in memory. Sessions idle longer than the TTL are discarded.
type Store struct {
	// MaxSessions caps live sessions. Zero means no cap.
	MaxSessions int
	// OnExpire, when set, is called with the ID of every session dropped for
	// idleness, outside the store lock.
	OnExpire func(id string)

	mu    sync.RWMutex
	items map[string]*Session
	ttl   time.Duration
	now   func() time.Time
}

// NewStore constructs a Store. A nil clock uses time.Now.
func NewStore(ttl time.Duration, now func() time.Time) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Store{
		items: make(map[string]*Session),
		ttl:   ttl,
		now:   now,
	}
}

// Create registers a form under a fresh ID.
func (s *Store) Create(ctx context.Context, f *form.Form) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("nil form")
	}
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Form:      f,
		CreatedAt: now,
		lastSeen:  now,
	}
	s.mu.Lock()
	var expired []string
	if s.MaxSessions > 0 && len(s.items) >= s.MaxSessions {
		expired = s.dropExpiredLocked(now)
	}
	if s.MaxSessions > 0 && len(s.items) >= s.MaxSessions {
		s.mu.Unlock()
		s.notifyExpired(expired)
		return nil, ErrFull
	}
	s.items[sess.ID] = sess
	s.mu.Unlock()
	s.notifyExpired(expired)
	return sess, nil
}

// Get returns a live session and refreshes its idle timer.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.now()
	s.mu.Lock()
	sess, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if s.expired(sess, now) {
		delete(s.items, id)
		s.mu.Unlock()
		s.notifyExpired([]string{id})
		return nil, ErrNotFound
	}
	sess.lastSeen = now
	s.mu.Unlock()
	return sess, nil
}

// Delete discards a session. Unknown IDs are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

// Len reports the number of sessions currently held, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	expired := s.dropExpiredLocked(s.now())
	s.mu.Unlock()
	s.notifyExpired(expired)
	return len(expired)
}

// Run sweeps on every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) dropExpiredLocked(now time.Time) []string {
	var ids []string
	for id, sess := range s.items {
		if s.expired(sess, now) {
			delete(s.items, id)
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Store) notifyExpired(ids []string) {
	if s.OnExpire == nil {
		return
	}
	for _, id := range ids {
		s.OnExpire(id)
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.lastSeen) > s.ttl
}
