package notify

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreNotificationsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.LoadNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	list := []Entry{
		{NoticeID: 3, Title: "newest", Date: "2026-03-01", Category: "exam", Urgent: true},
		{NoticeID: 1, Title: "oldest", Date: "2026-02-01", Category: "general", IsRead: true},
	}
	require.NoError(t, s.SaveNotifications(ctx, list))

	got, err = s.LoadNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, got, "order and flags survive the round trip")

	// Saving replaces wholesale, it does not append.
	require.NoError(t, s.SaveNotifications(ctx, list[:1]))
	got, err = s.LoadNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, list[:1], got)

	require.NoError(t, s.ClearNotifications(ctx))
	got, err = s.LoadNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteStoreLastVisit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.LastVisit(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "no watermark before the first cycle")

	mark := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	require.NoError(t, s.SetLastVisit(ctx, mark))

	got, err = s.LastVisit(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(mark))
}

func TestSQLiteStorePreferenceKeys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	v, err := s.Get(ctx, KeyDarkMode)
	require.NoError(t, err)
	assert.Empty(t, v, "missing keys read as empty")

	require.NoError(t, s.Set(ctx, KeyDarkMode, "on"))
	require.NoError(t, s.Set(ctx, KeyDarkMode, "off")) // upsert

	v, err = s.Get(ctx, KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, "off", v)

	require.NoError(t, s.Delete(ctx, KeyDarkMode))
	v, err = s.Get(ctx, KeyDarkMode)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveNotifications(ctx, []Entry{{NoticeID: 7, Title: "kept"}}))
	require.NoError(t, s.Set(ctx, KeyToken, "abc123"))
	require.NoError(t, s.Close())

	s, err = OpenSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	list, err := s.LoadNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kept", list[0].Title)

	tok, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)
}
