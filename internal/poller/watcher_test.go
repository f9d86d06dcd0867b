package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/pkg/logger"
)

// scriptedFetcher replays a fixed status sequence, then repeats the last one.
type scriptedFetcher struct {
	mu       sync.Mutex
	statuses []dto.AnalysisStatus
	calls    int
}

func (f *scriptedFetcher) fetch(_ context.Context) (*dto.TaskStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.calls++
	return &dto.TaskStatus{TaskID: "t-1", AnalysisStatus: f.statuses[i]}, nil
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestWatchStopsAtTerminalStatus(t *testing.T) {
	m := NewManager(5*time.Millisecond, logger.NewNop())
	fetcher := &scriptedFetcher{statuses: []dto.AnalysisStatus{
		dto.StatusQueued, dto.StatusRunning, dto.StatusCompleted,
	}}

	var mu sync.Mutex
	var seen []dto.AnalysisStatus
	done := make(chan *dto.TaskStatus, 1)

	ok := m.Watch(context.Background(), "t-1", fetcher.fetch, Hooks{
		OnUpdate: func(s *dto.TaskStatus) {
			mu.Lock()
			seen = append(seen, s.AnalysisStatus)
			mu.Unlock()
		},
		OnTerminal: func(s *dto.TaskStatus) { done <- s },
	})
	require.True(t, ok)

	select {
	case s := <-done:
		assert.Equal(t, dto.StatusCompleted, s.AnalysisStatus)
	case <-time.After(2 * time.Second):
		t.Fatal("watch never reached terminal status")
	}

	m.Shutdown()
	callsAtTerminal := fetcher.callCount()
	assert.Equal(t, 3, callsAtTerminal, "no polls after terminal status")

	mu.Lock()
	assert.Equal(t, []dto.AnalysisStatus{
		dto.StatusQueued, dto.StatusRunning, dto.StatusCompleted,
	}, seen)
	mu.Unlock()

	assert.False(t, m.Watching("t-1"))
}

func TestDuplicateWatchRejected(t *testing.T) {
	m := NewManager(time.Hour, logger.NewNop())
	fetcher := &scriptedFetcher{statuses: []dto.AnalysisStatus{dto.StatusRunning}}

	require.True(t, m.Watch(context.Background(), "t-2", fetcher.fetch, Hooks{}))
	assert.False(t, m.Watch(context.Background(), "t-2", fetcher.fetch, Hooks{}))

	m.Stop("t-2")
	m.Shutdown()
}

func TestContextCancelStopsWatch(t *testing.T) {
	m := NewManager(5*time.Millisecond, logger.NewNop())
	fetcher := &scriptedFetcher{statuses: []dto.AnalysisStatus{dto.StatusRunning}}

	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, m.Watch(ctx, "t-3", fetcher.fetch, Hooks{}))

	cancel()
	m.Shutdown()

	calls := fetcher.callCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, fetcher.callCount(), "no polls after cancellation")
}
