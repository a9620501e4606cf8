// Package status tracks whether the backend is reachable.
package status

import (
	"context"
	"sync"
	"time"

	"chuipos/pkg/logger"
)

// HealthChecker probes the backend.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// ChangeHandler is called when the online state flips.
type ChangeHandler func(online bool)

// Monitor polls a HealthChecker and remembers the last result.
type Monitor struct {
	checker  HealthChecker
	interval time.Duration
	onChange ChangeHandler
	log      *logger.Logger

	mu     sync.RWMutex
	online bool
}

// NewMonitor creates a monitor. The backend is assumed online until the
// first probe says otherwise.
func NewMonitor(checker HealthChecker, interval time.Duration, onChange ChangeHandler, log *logger.Logger) *Monitor {
	if log == nil {
		log = logger.Default()
	}
	return &Monitor{
		checker:  checker,
		interval: interval,
		onChange: onChange,
		log:      log.WithComponent("status"),
		online:   true,
	}
}

// Run probes immediately and then every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs a single probe and reports the resulting state.
func (m *Monitor) Check(ctx context.Context) bool {
	err := m.checker.CheckHealth(ctx)
	if ctx.Err() != nil {
		// Shutting down; keep the last known state.
		return m.Online()
	}
	online := err == nil

	m.mu.Lock()
	changed := m.online != online
	m.online = online
	m.mu.Unlock()

	if changed {
		if online {
			m.log.Infow("server is back online")
		} else {
			m.log.Warnw("server is offline", "error", err)
		}
		if m.onChange != nil {
			m.onChange(online)
		}
	}
	return online
}

// Online reports the last known state.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}
