package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := openTestStore(t)

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	id, err := s.BeginSession(start)
	require.NoError(t, err)
	require.NotZero(t, id)

	stop := start.Add(3 * time.Minute)
	require.NoError(t, s.EndSession(id, stop, 42))

	sessions, err := s.Sessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)
	assert.Equal(t, 42, sessions[0].Events)
	assert.True(t, sessions[0].Started.Equal(start))
	assert.True(t, sessions[0].Stopped.Equal(stop))
}

func TestEndSessionUnknownID(t *testing.T) {
	s := openTestStore(t)
	err := s.EndSession(999, time.Now(), 0)
	require.Error(t, err)
}

func TestSessionsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := s.BeginSession(base.Add(time.Duration(i) * time.Hour))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	sessions, err := s.Sessions(2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, ids[2], sessions[0].ID)
	assert.Equal(t, ids[1], sessions[1].ID)
}

func TestRecordExport(t *testing.T) {
	s := openTestStore(t)

	id, err := s.BeginSession(time.Now())
	require.NoError(t, err)

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordExport(id, at, 5, "/tmp/out.txt"))

	exports, err := s.Exports(id)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, 5, exports[0].Events)
	assert.Equal(t, "/tmp/out.txt", exports[0].Path)
	assert.True(t, exports[0].At.Equal(at))
}

func TestRecordExportWithoutSession(t *testing.T) {
	s := openTestStore(t)
	// Exports after the session stopped (id 0) are still archived.
	require.NoError(t, s.RecordExport(0, time.Now(), 3, "/tmp/late.txt"))
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
