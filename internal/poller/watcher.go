// FILE: internal/poller/watcher.go
//
// Task status polling. A watch fetches immediately, then ticks on a fixed
// interval until the task reaches a terminal status or its context is
// cancelled. One watch per task: re-watching an already watched task is a
// no-op.
package poller

import (
	"context"
	"sync"
	"time"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/pkg/logger"
)

// Fetcher retrieves the current status of one task.
type Fetcher func(ctx context.Context) (*dto.TaskStatus, error)

// Hooks receive every successful fetch; OnTerminal fires once, after the
// final OnUpdate.
type Hooks struct {
	OnUpdate   func(status *dto.TaskStatus)
	OnTerminal func(status *dto.TaskStatus)
}

type Manager struct {
	interval time.Duration
	log      logger.ILogger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

func NewManager(interval time.Duration, log logger.ILogger) *Manager {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Manager{
		interval: interval,
		log:      log,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Watch starts polling taskID. Returns false if a watch for the task is
// already running.
func (m *Manager) Watch(ctx context.Context, taskID string, fetch Fetcher, hooks Hooks) bool {
	m.mu.Lock()
	if _, running := m.cancels[taskID]; running {
		m.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancels[taskID] = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(ctx, taskID, fetch, hooks)
	return true
}

func (m *Manager) run(ctx context.Context, taskID string, fetch Fetcher, hooks Hooks) {
	defer m.wg.Done()
	defer m.release(taskID)

	// First fetch happens immediately, not a full interval later.
	if m.poll(ctx, taskID, fetch, hooks) {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.poll(ctx, taskID, fetch, hooks) {
				return
			}
		}
	}
}

// poll returns true when the watch should stop.
func (m *Manager) poll(ctx context.Context, taskID string, fetch Fetcher, hooks Hooks) bool {
	if ctx.Err() != nil {
		return true
	}

	status, err := fetch(ctx)
	if err != nil {
		// Transient backend errors do not kill the watch.
		m.log.Warn("poller", "status fetch failed", map[string]interface{}{
			"task_id": taskID,
			"error":   err.Error(),
		})
		return false
	}

	if hooks.OnUpdate != nil {
		hooks.OnUpdate(status)
	}

	if !status.AnalysisStatus.Terminal() {
		return false
	}

	m.log.Info("poller", "task reached terminal status", map[string]interface{}{
		"task_id": taskID,
		"status":  string(status.AnalysisStatus),
	})
	if hooks.OnTerminal != nil {
		hooks.OnTerminal(status)
	}
	return true
}

func (m *Manager) release(taskID string) {
	m.mu.Lock()
	if cancel, ok := m.cancels[taskID]; ok {
		cancel()
		delete(m.cancels, taskID)
	}
	m.mu.Unlock()
}

// Stop cancels one watch.
func (m *Manager) Stop(taskID string) {
	m.release(taskID)
}

// Watching reports whether a watch for the task is running.
func (m *Manager) Watching(taskID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.cancels[taskID]
	return ok
}

// Shutdown cancels every watch and waits for the loops to exit.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	for id, cancel := range m.cancels {
		cancel()
		delete(m.cancels, id)
	}
	m.mu.Unlock()
	m.wg.Wait()
}
