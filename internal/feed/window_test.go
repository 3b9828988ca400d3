package feed

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// TestWindowKeepsNewest pushes 25 events into a 20 slot window
func TestWindowKeepsNewest(t *testing.T) {
	w := NewWindow[int](20)
	dropped := 0
	for i := 1; i <= 25; i++ {
		if w.Push(i) {
			dropped++
		}
	}

	want := make([]int, 0, 20)
	for i := 25; i >= 6; i-- {
		want = append(want, i)
	}
	if diff := cmp.Diff(want, w.Snapshot()); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, dropped)
	assert.Equal(t, 20, w.Len())

	newest, ok := w.Newest()
	assert.True(t, ok)
	assert.Equal(t, 25, newest)
}

func TestWindowPartial(t *testing.T) {
	tests := []struct {
		name   string
		cap    int
		pushes int
		want   []int
	}{
		{name: "empty", cap: 3, pushes: 0, want: []int{}},
		{name: "one", cap: 3, pushes: 1, want: []int{1}},
		{name: "exactly full", cap: 3, pushes: 3, want: []int{3, 2, 1}},
		{name: "wraps", cap: 3, pushes: 7, want: []int{7, 6, 5}},
		{name: "capacity one", cap: 1, pushes: 4, want: []int{4}},
		{name: "capacity raised", cap: 0, pushes: 2, want: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow[int](tt.cap)
			for i := 1; i <= tt.pushes; i++ {
				w.Push(i)
			}
			got := w.Snapshot()
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindowReset(t *testing.T) {
	w := NewWindow[string](2)
	w.Push("a")
	w.Push("b")
	w.Reset()

	assert.Equal(t, 0, w.Len())
	_, ok := w.Newest()
	assert.False(t, ok)

	w.Push("c")
	assert.Equal(t, []string{"c"}, w.Snapshot())
}

func TestWindowSnapshotIsCopy(t *testing.T) {
	w := NewWindow[int](2)
	w.Push(1)
	snap := w.Snapshot()
	snap[0] = 99
	assert.Equal(t, []int{1}, w.Snapshot())
}

func TestWindowConcurrent(t *testing.T) {
	w := NewWindow[int](20)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				w.Push(i)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				assert.LessOrEqual(t, len(w.Snapshot()), 20)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, w.Len())
}
