package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/exlog/exercisetracker/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func descriptions(entries []model.Exercise) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Description
	}
	return out
}

// seedLog appends entries for u1 out of date order so insertion order and
// date order differ.
func seedLog() *ExerciseLog {
	log := NewExerciseLog()
	log.Append("u1", "march", 30, day(2024, 3, 1))
	log.Append("u1", "january", 45, day(2024, 1, 15))
	log.Append("u2", "other user", 10, day(2024, 2, 1))
	log.Append("u1", "february", 60, day(2024, 2, 10))
	log.Append("u1", "april", 20, day(2024, 4, 30))
	return log
}

func TestExerciseLog_Append(t *testing.T) {
	t.Parallel()

	log := NewExerciseLog()
	entry := log.Append("u1", "test", 60, day(1990, 1, 1))

	assert.Equal(t, model.Exercise{
		UserID:      "u1",
		Description: "test",
		Duration:    60,
		Date:        day(1990, 1, 1),
	}, entry)
	assert.Equal(t, 1, log.Len())

	// No deduplication.
	log.Append("u1", "test", 60, day(1990, 1, 1))
	assert.Equal(t, 2, log.Len())
}

func TestExerciseLog_QueryNoFilter(t *testing.T) {
	t.Parallel()

	log := seedLog()

	got := log.Query("u1", LogFilter{})
	assert.Equal(t, []string{"march", "january", "february", "april"}, descriptions(got))

	got = log.Query("u2", LogFilter{})
	assert.Equal(t, []string{"other user"}, descriptions(got))
}

func TestExerciseLog_QueryUnknownUser(t *testing.T) {
	t.Parallel()

	got := seedLog().Query("nobody", LogFilter{})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExerciseLog_QueryFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter LogFilter
		want   []string
	}{
		{
			name:   "from inclusive",
			filter: LogFilter{From: ptr(day(2024, 2, 10))},
			want:   []string{"march", "february", "april"},
		},
		{
			name:   "to inclusive",
			filter: LogFilter{To: ptr(day(2024, 2, 10))},
			want:   []string{"january", "february"},
		},
		{
			name:   "from and to",
			filter: LogFilter{From: ptr(day(2024, 2, 1)), To: ptr(day(2024, 3, 31))},
			want:   []string{"march", "february"},
		},
		{
			name:   "exact day",
			filter: LogFilter{From: ptr(day(2024, 1, 15)), To: ptr(day(2024, 1, 15))},
			want:   []string{"january"},
		},
		{
			name:   "empty range",
			filter: LogFilter{From: ptr(day(2025, 1, 1)), To: ptr(day(2024, 1, 1))},
			want:   []string{},
		},
		{
			name:   "limit is a head cut",
			filter: LogFilter{Limit: ptr(2)},
			want:   []string{"march", "january"},
		},
		{
			name:   "limit larger than matches",
			filter: LogFilter{Limit: ptr(10)},
			want:   []string{"march", "january", "february", "april"},
		},
		{
			name:   "limit applied after date filter",
			filter: LogFilter{From: ptr(day(2024, 2, 1)), Limit: ptr(2)},
			want:   []string{"march", "february"},
		},
		{
			name:   "zero limit",
			filter: LogFilter{Limit: ptr(0)},
			want:   []string{},
		},
		{
			name:   "negative limit",
			filter: LogFilter{Limit: ptr(-1)},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := seedLog().Query("u1", tt.filter)
			assert.Equal(t, tt.want, descriptions(got))
		})
	}
}

func TestExerciseLog_QueryLimitNeverExceedsN(t *testing.T) {
	t.Parallel()

	log := seedLog()
	all := log.Query("u1", LogFilter{})

	for n := 0; n <= len(all)+2; n++ {
		got := log.Query("u1", LogFilter{Limit: ptr(n)})
		assert.Len(t, got, min(n, len(all)), "limit %d", n)
		assert.Equal(t, all[:len(got)], got, "limit %d", n)
	}
}

func TestExerciseLog_QueryIsReadOnly(t *testing.T) {
	t.Parallel()

	log := seedLog()
	filter := LogFilter{From: ptr(day(2024, 1, 1)), Limit: ptr(3)}

	first := log.Query("u1", filter)
	first[0].Description = "mutated"

	second := log.Query("u1", filter)
	assert.Equal(t, "march", second[0].Description)
	assert.Equal(t, 5, log.Len())

	third := log.Query("u1", filter)
	assert.Equal(t, second, third)
}

func TestExerciseLog_ConcurrentAppendAndQuery(t *testing.T) {
	t.Parallel()

	log := NewExerciseLog()
	const workers, perWorker = 8, 50

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		userID := fmt.Sprintf("u%d", w)
		eg.Go(func() error {
			for i := 0; i < perWorker; i++ {
				log.Append(userID, fmt.Sprintf("e%d", i), i, day(2024, 1, 1).AddDate(0, 0, i))
				_ = log.Query(userID, LogFilter{})
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	assert.Equal(t, workers*perWorker, log.Len())
	for w := 0; w < workers; w++ {
		got := log.Query(fmt.Sprintf("u%d", w), LogFilter{})
		require.Len(t, got, perWorker)
		// Per-user insertion order survives interleaving.
		for i, e := range got {
			assert.Equal(t, fmt.Sprintf("e%d", i), e.Description)
		}
	}
}
