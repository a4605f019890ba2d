// Package notify implements the client-side notification
// reconciliation engine. It periodically fetches the notice
// collection, derives which notices are new since the last observed
// watermark, merges them into a persisted notification list without
// duplication, tracks read state, and rotates the urgent subset
// through a display cycle.
package notify

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iliyamo/digital-notice-board/internal/model"
)

// Default timer intervals. Polling is deliberately slow; rotation is
// fast enough to cycle a banner.
const (
	DefaultPollInterval   = 60 * time.Second
	DefaultRotateInterval = 5 * time.Second
)

// Fetcher retrieves the full current notice collection. Implementations
// return ErrUnauthenticated when the surrounding call path detects an
// authentication failure; any other error is treated as transient.
type Fetcher interface {
	FetchNotices(ctx context.Context) ([]model.Notice, error)
}

// Options tunes an Engine. Zero values fall back to defaults.
type Options struct {
	PollInterval   time.Duration
	RotateInterval time.Duration
	// OnNew is invoked after a fetch cycle that synthesized new
	// entries, with the new entries newest first.
	OnNew func([]Entry)
	// OnAuthError is invoked once when a fetch reports
	// ErrUnauthenticated, after the engine has shut down its timers.
	// The surrounding application redirects to login.
	OnAuthError func(error)
	Logger      *log.Logger
}

// urgentRotation is the display state for urgent notices. The fetch
// cycle swaps the whole value by pointer so the rotation timer always
// sees either the old or the new complete set, never a partial one.
// The index lives inside the snapshot: replacing the snapshot resets
// it, reusing the snapshot keeps the position, so an unchanged urgent
// set does not flick the banner back to the first item.
type urgentRotation struct {
	items []model.Notice
	index atomic.Int64
}

// Engine is the reconciliation engine for one client session.
type Engine struct {
	fetcher Fetcher
	store   Store
	opts    Options
	logger  *log.Logger

	now func() time.Time

	urgent atomic.Pointer[urgentRotation]

	mu      sync.Mutex
	notices []model.Notice // last fetched collection
	entries []Entry        // notification list, newest first
	unread  int

	runMu   sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// New creates an Engine over the given fetcher and store. The engine
// does nothing until Start is called.
func New(f Fetcher, s Store, opts Options) *Engine {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.RotateInterval <= 0 {
		opts.RotateInterval = DefaultRotateInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		fetcher: f,
		store:   s,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Start loads the persisted notification state, runs one fetch cycle
// synchronously, then launches the poll and rotation timers. It
// returns an error only when the first fetch reports an
// authentication failure or the engine is already running; a transient
// first fetch failure is logged and retried on the next poll tick like
// any other.
func (e *Engine) Start(ctx context.Context) error {
	e.runMu.Lock()
	if e.started {
		e.runMu.Unlock()
		return errors.New("notify: engine already started")
	}
	e.started = true
	ctx, e.cancel = context.WithCancel(ctx)
	e.done = make(chan struct{})
	e.runMu.Unlock()

	// Initializing: restore the persisted list before the first fetch
	// so unread counts survive a restart.
	if list, err := e.store.LoadNotifications(ctx); err == nil {
		e.mu.Lock()
		e.entries = list
		e.unread = countUnread(list)
		e.mu.Unlock()
	} else {
		e.logf("load notifications: %v", err)
	}

	if err := e.runCycle(ctx); err != nil {
		e.runMu.Lock()
		e.started = false
		e.cancel()
		close(e.done) // run loop never started
		e.runMu.Unlock()
		if e.opts.OnAuthError != nil {
			e.opts.OnAuthError(err)
		}
		return err
	}

	go e.run(ctx)
	return nil
}

// Stop cancels both timers and waits for the run loop to exit. It is
// safe to call more than once and after an auth-triggered shutdown.
func (e *Engine) Stop() {
	e.runMu.Lock()
	cancel, done := e.cancel, e.done
	e.started = false
	e.runMu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// run drives the two timers. They touch disjoint state: the poll tick
// writes the notification list and watermark and swaps the rotation
// snapshot; the rotation tick only advances the index inside the
// current snapshot.
func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	poll := time.NewTicker(e.opts.PollInterval)
	defer poll.Stop()
	rotate := time.NewTicker(e.opts.RotateInterval)
	defer rotate.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-rotate.C:
			e.rotateTick()
		case <-poll.C:
			if err := e.runCycle(ctx); err != nil {
				// Authentication failure: shut down and tell the
				// application to go back to login.
				e.runMu.Lock()
				e.started = false
				e.runMu.Unlock()
				if e.opts.OnAuthError != nil {
					e.opts.OnAuthError(err)
				}
				return
			}
		}
	}
}

// runCycle executes one fetch cycle. It returns a non-nil error only
// for authentication failures; transient fetch or storage errors are
// logged and leave all state exactly as it was, the next poll tick
// being the retry.
func (e *Engine) runCycle(ctx context.Context) error {
	notices, err := e.fetcher.FetchNotices(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return err
		}
		e.logf("fetch notices: %v (retrying next cycle)", err)
		return nil
	}

	// Urgent subset in collection order. Swap the snapshot only when
	// membership changed; an identical set keeps its rotation position.
	urgent := make([]model.Notice, 0)
	for _, n := range notices {
		if n.Urgent {
			urgent = append(urgent, n)
		}
	}
	if cur := e.urgent.Load(); cur == nil || !sameNoticeIDs(cur.items, urgent) {
		next := &urgentRotation{items: urgent}
		e.urgent.Store(next)
	}

	prev, err := e.store.LastVisit(ctx)
	if err != nil {
		e.logf("load watermark: %v (retrying next cycle)", err)
		return nil
	}
	list, err := e.store.LoadNotifications(ctx)
	if err != nil {
		e.logf("load notifications: %v (retrying next cycle)", err)
		return nil
	}

	// Partition the collection against the watermark and merge. Each
	// new entry is prepended as encountered, so the newest notice in
	// the collection ends up first.
	var added []Entry
	for _, n := range notices {
		if !observedAt(n).After(prev) {
			continue
		}
		if hasEntry(list, n.ID) || hasEntry(added, n.ID) {
			continue
		}
		added = append([]Entry{{
			NoticeID: n.ID,
			Title:    n.Title,
			Date:     n.Date,
			Category: n.Category,
			Urgent:   n.Urgent,
		}}, added...)
	}

	if len(added) > 0 {
		list = append(added, list...)
		if err := e.store.SaveNotifications(ctx, list); err != nil {
			e.logf("save notifications: %v", err)
		}
	}

	e.mu.Lock()
	e.notices = notices
	e.entries = list
	e.unread = countUnread(list)
	e.mu.Unlock()

	if len(added) > 0 && e.opts.OnNew != nil {
		e.opts.OnNew(added)
	}

	// The watermark advances whether or not anything was new, but
	// never moves backwards within a session.
	now := e.now()
	if now.After(prev) {
		if err := e.store.SetLastVisit(ctx, now); err != nil {
			e.logf("save watermark: %v", err)
		}
	}
	return nil
}

// observedAt returns the timestamp used to decide whether a notice is
// new: the server-assigned creation time, falling back to the
// operator-entered date string when the server did not supply one.
func observedAt(n model.Notice) time.Time {
	if !n.CreatedAt.IsZero() {
		return n.CreatedAt
	}
	if t, err := time.Parse("2006-01-02", n.Date); err == nil {
		return t
	}
	return time.Time{}
}

// rotateTick advances the urgent display index circularly. A single
// urgent notice (or none) never rotates.
func (e *Engine) rotateTick() {
	st := e.urgent.Load()
	if st == nil || len(st.items) <= 1 {
		return
	}
	if next := st.index.Add(1); int(next) >= len(st.items) {
		st.index.Store(0)
	}
}

// MarkRead marks the entry for noticeID as read and decrements the
// unread count, floored at zero. No-op when no such entry exists.
func (e *Engine) MarkRead(noticeID uint64) {
	e.mu.Lock()
	found := false
	for i := range e.entries {
		if e.entries[i].NoticeID == noticeID {
			e.entries[i].IsRead = true
			found = true
			break
		}
	}
	if found && e.unread > 0 {
		e.unread--
	}
	list := snapshotEntries(e.entries)
	e.mu.Unlock()

	if found {
		e.persist(list)
	}
}

// MarkAllRead marks every entry read and zeroes the unread count.
// Calling it twice in a row is harmless.
func (e *Engine) MarkAllRead() {
	e.mu.Lock()
	for i := range e.entries {
		e.entries[i].IsRead = true
	}
	e.unread = 0
	list := snapshotEntries(e.entries)
	e.mu.Unlock()

	e.persist(list)
}

// ClearAll empties the notification list and erases its persisted
// storage.
func (e *Engine) ClearAll() {
	e.mu.Lock()
	e.entries = nil
	e.unread = 0
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.store.ClearNotifications(ctx); err != nil {
		e.logf("clear notifications: %v", err)
	}
}

// ViewDetails marks the entry read and returns the matching notice
// from the last fetched collection for display. The second return is
// false when the notice is no longer present server-side; the read
// state still updates.
func (e *Engine) ViewDetails(noticeID uint64) (model.Notice, bool) {
	e.MarkRead(noticeID)

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, n := range e.notices {
		if n.ID == noticeID {
			return n, true
		}
	}
	return model.Notice{}, false
}

// Notices returns the last fetched collection.
func (e *Engine) Notices() []model.Notice {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Notice, len(e.notices))
	copy(out, e.notices)
	return out
}

// Notifications returns the notification list newest first.
func (e *Engine) Notifications() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshotEntries(e.entries)
}

// UnreadCount returns the current unread counter.
func (e *Engine) UnreadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unread
}

// Urgent returns the urgent notices in collection order together with
// the index currently on display. The index is always valid for the
// returned slice; both are empty when no urgent notices exist.
func (e *Engine) Urgent() ([]model.Notice, int) {
	st := e.urgent.Load()
	if st == nil || len(st.items) == 0 {
		return nil, 0
	}
	idx := int(st.index.Load())
	if idx < 0 || idx >= len(st.items) {
		idx = 0
	}
	return st.items, idx
}

func (e *Engine) persist(list []Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.store.SaveNotifications(ctx, list); err != nil {
		e.logf("save notifications: %v", err)
	}
}

func (e *Engine) logf(format string, args ...any) {
	e.logger.Printf("notify: "+format, args...)
}

func countUnread(list []Entry) int {
	n := 0
	for _, en := range list {
		if !en.IsRead {
			n++
		}
	}
	return n
}

func hasEntry(list []Entry, noticeID uint64) bool {
	for _, en := range list {
		if en.NoticeID == noticeID {
			return true
		}
	}
	return false
}

func snapshotEntries(list []Entry) []Entry {
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}

// sameNoticeIDs reports whether two notice slices contain the same ids
// in the same order.
func sameNoticeIDs(a, b []model.Notice) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
