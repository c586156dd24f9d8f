package window

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rank-pooler/internal/logger"
)

func newBuffer(t *testing.T, capacity int, opts ...Option[int]) *Buffer[int] {
	t.Helper()
	b, err := New[int](capacity, logger.NewNop(), opts...)
	require.NoError(t, err)
	return b
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	_, err := New[int](0, nil)
	assert.Error(t, err)
	_, err = New[int](-1, nil)
	assert.Error(t, err)
}

func TestCapacityQueries(t *testing.T) {
	b := newBuffer(t, 2)
	assert.True(t, b.IsEmpty())
	assert.False(t, b.IsFull())

	b.Push(1)
	assert.False(t, b.IsEmpty())
	assert.False(t, b.IsFull())

	b.Push(2)
	assert.True(t, b.IsFull())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 2, b.Cap())
}

func TestPushOnFullBufferDropsItem(t *testing.T) {
	var released []int
	var logs bytes.Buffer
	log, err := logger.NewWithWriter(&logs, logger.DebugLevel, "json")
	require.NoError(t, err)

	b, err := New[int](2, log, WithRelease(func(v int) { released = append(released, v) }))
	require.NoError(t, err)

	assert.True(t, b.Push(1))
	assert.True(t, b.Push(2))
	assert.False(t, b.Push(3))

	assert.Equal(t, []int{1, 2}, b.Snapshot())
	assert.Equal(t, []int{3}, released)
	assert.Contains(t, logs.String(), "buffer full")
}

func TestPopOldestOnEmptyBufferIsNonFatal(t *testing.T) {
	var logs bytes.Buffer
	log, err := logger.NewWithWriter(&logs, logger.DebugLevel, "json")
	require.NoError(t, err)

	b, err := New[int](3, log)
	require.NoError(t, err)

	assert.False(t, b.PopOldest())
	assert.True(t, b.IsEmpty())
	assert.Contains(t, logs.String(), "buffer empty")

	b.Push(7)
	assert.Equal(t, []int{7}, b.Snapshot())
}

func TestPopOldestRemovesFirstInserted(t *testing.T) {
	var released []int
	b := newBuffer(t, 3, WithRelease(func(v int) { released = append(released, v) }))
	b.Push(1)
	b.Push(2)
	b.Push(3)

	require.True(t, b.PopOldest())
	assert.Equal(t, []int{2, 3}, b.Snapshot())
	assert.Equal(t, []int{1}, released)
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	b := newBuffer(t, 3)
	b.Push(1)
	b.Push(2)

	snap := b.Snapshot()
	snap[0] = 99

	assert.Equal(t, []int{1, 2}, b.Snapshot())
	assert.Equal(t, 2, b.Len())
}

func TestDriverProtocolKeepsLastNItems(t *testing.T) {
	const n = 10
	for k := 1; k <= 50; k++ {
		b := newBuffer(t, n)
		total := n + k
		for i := 0; i < total; i++ {
			if b.IsFull() {
				b.PopOldest()
				b.Push(i)
			} else {
				b.Push(i)
			}
		}

		want := make([]int, 0, n)
		for i := total - n; i < total; i++ {
			want = append(want, i)
		}
		assert.Equal(t, want, b.Snapshot(), "k=%d", k)
	}
}

func TestSlideMatchesDriverProtocol(t *testing.T) {
	var released []int
	b := newBuffer(t, 3, WithRelease(func(v int) { released = append(released, v) }))
	for i := 0; i < 8; i++ {
		b.Slide(i)
		assert.LessOrEqual(t, b.Len(), 3)
	}

	assert.Equal(t, []int{5, 6, 7}, b.Snapshot())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, released)
}

func TestDrainReleasesEverything(t *testing.T) {
	var released []int
	b := newBuffer(t, 4, WithRelease(func(v int) { released = append(released, v) }))
	b.Push(1)
	b.Push(2)
	b.Push(3)

	b.Drain()

	assert.True(t, b.IsEmpty())
	assert.Equal(t, []int{1, 2, 3}, released)

	b.Push(4)
	assert.Equal(t, []int{4}, b.Snapshot())
}
