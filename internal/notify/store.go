package notify

import (
	"context"
	"sync"
	"time"
)

// Entry is a client-local notification derived from an observed
// notice. It is not authoritative: the server never sees it, and a
// notice deleted server-side does not remove the entry that was
// synthesized for it. At most one Entry exists per NoticeID in a
// persisted list.
type Entry struct {
	NoticeID uint64 `json:"notice_id" db:"notice_id"`
	Title    string `json:"title" db:"title"`
	Date     string `json:"date" db:"date"`
	Category string `json:"category" db:"category"`
	Urgent   bool   `json:"urgent" db:"urgent"`
	IsRead   bool   `json:"is_read" db:"is_read"`
}

// Store is the persistence capability the reconciliation engine
// depends on. Implementations own the notification list, the
// last-visit watermark and a handful of client preference keys; the
// engine never touches a concrete storage mechanism directly.
type Store interface {
	// LoadNotifications returns the persisted list newest first, or an
	// empty list when nothing has been saved yet.
	LoadNotifications(ctx context.Context) ([]Entry, error)
	// SaveNotifications replaces the persisted list.
	SaveNotifications(ctx context.Context, list []Entry) error
	// ClearNotifications erases the persisted list.
	ClearNotifications(ctx context.Context) error
	// LastVisit returns the watermark separating seen from new
	// notices; the zero time when never set.
	LastVisit(ctx context.Context) (time.Time, error)
	// SetLastVisit advances the watermark.
	SetLastVisit(ctx context.Context, t time.Time) error
}

// MemoryStore is an in-memory Store used by tests and by callers that
// do not want persistence across restarts.
type MemoryStore struct {
	mu        sync.Mutex
	list      []Entry
	lastVisit time.Time
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) LoadNotifications(context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.list))
	copy(out, s.list)
	return out, nil
}

func (s *MemoryStore) SaveNotifications(_ context.Context, list []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = make([]Entry, len(list))
	copy(s.list, list)
	return nil
}

func (s *MemoryStore) ClearNotifications(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
	return nil
}

func (s *MemoryStore) LastVisit(context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastVisit, nil
}

func (s *MemoryStore) SetLastVisit(_ context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastVisit = t
	return nil
}
