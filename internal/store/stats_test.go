package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forge/internal/model"
)

func TestCreateStat_Idempotent(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	_, err := s.FindStatByDate(ctx, "2026-06-10")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := s.CreateStat(ctx, "2026-06-10")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Score)
	assert.Equal(t, 0, first.FocusMinutes)

	second, err := s.CreateStat(ctx, "2026-06-10")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM daily_stats`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCreateStat_Concurrent(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	const n = 20
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := s.CreateStat(ctx, "2026-06-10")
			assert.NoError(t, err)
			ids[i] = st.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestCreateStat_RejectsBadDate(t *testing.T) {
	s, _ := createTestStore(t)

	_, err := s.CreateStat(context.Background(), "06/10/2026")
	assert.ErrorIs(t, err, model.ErrInvalidDateKey)
}

func TestUpdateStatScore(t *testing.T) {
	s, clk := createTestStore(t)
	ctx := context.Background()

	st, err := s.CreateStat(ctx, "2026-06-10")
	require.NoError(t, err)

	clk.Advance(time.Minute)
	require.NoError(t, s.UpdateStatScore(ctx, st.ID, 85))

	got, err := s.FindStatByDate(ctx, "2026-06-10")
	require.NoError(t, err)
	assert.Equal(t, 85, got.Score)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	assert.Error(t, s.UpdateStatScore(ctx, st.ID, 101))
	assert.Error(t, s.UpdateStatScore(ctx, st.ID, -1))
	assert.ErrorIs(t, s.UpdateStatScore(ctx, "missing", 50), ErrNotFound)
}

func TestAddFocusMinutes_Accumulates(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	st, err := s.CreateStat(ctx, "2026-06-10")
	require.NoError(t, err)

	require.NoError(t, s.AddFocusMinutes(ctx, st.ID, 25))
	require.NoError(t, s.AddFocusMinutes(ctx, st.ID, 50))
	assert.Error(t, s.AddFocusMinutes(ctx, st.ID, 0))
	assert.Error(t, s.AddFocusMinutes(ctx, st.ID, -10))

	got, err := s.FindStatByDate(ctx, "2026-06-10")
	require.NoError(t, err)
	assert.Equal(t, 75, got.FocusMinutes)
}

func TestListRecentStats_OrderedByDate(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	// Insert out of date order.
	for _, d := range []string{"2026-06-08", "2026-06-10", "2026-06-07", "2026-06-09"} {
		_, err := s.CreateStat(ctx, d)
		require.NoError(t, err)
	}

	recent, err := s.ListRecentStats(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "2026-06-10", recent[0].Date)
	assert.Equal(t, "2026-06-09", recent[1].Date)
	assert.Equal(t, "2026-06-08", recent[2].Date)

	all, err := s.ListRecentStats(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := s.ListRecentStats(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	asc, err := s.ListStats(ctx)
	require.NoError(t, err)
	require.Len(t, asc, 4)
	assert.Equal(t, "2026-06-07", asc[0].Date)
}
