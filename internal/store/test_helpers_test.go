package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/forge/internal/testutil"
)

var testEpoch = time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)

// createTestStore creates a new temp-dir store driven by a fake clock and
// sequential IDs.
func createTestStore(t *testing.T) (*Store, *testutil.FakeClock) {
	t.Helper()
	clk := testutil.NewFakeClock(testEpoch)
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithClock(clk), WithIDGenerator(testutil.NewSequentialIDs("rec")))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, clk
}
