// Package health periodically probes the coordinator's collaborators.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	StatusUnknown     = "unknown"
	StatusHealthy     = "healthy"
	StatusUnhealthy   = "unhealthy"
	StatusUnreachable = "unreachable"
)

type CollaboratorStatus struct {
	Status    string     `json:"status"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Monitor records the last observed health of each collaborator. Nothing on
// the request path consults it.
type Monitor struct {
	targets    map[string]string
	httpClient *http.Client
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc

	mu       sync.RWMutex
	statuses map[string]CollaboratorStatus
}

// NewMonitor takes collaborator name -> base URL.
func NewMonitor(targets map[string]string, timeout time.Duration) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	statuses := make(map[string]CollaboratorStatus, len(targets))
	for name := range targets {
		statuses[name] = CollaboratorStatus{Status: StatusUnknown}
	}

	return &Monitor{
		targets:    targets,
		httpClient: &http.Client{Timeout: timeout},
		cron:       cron.New(cron.WithLocation(time.UTC)),
		ctx:        ctx,
		cancel:     cancel,
		statuses:   statuses,
	}
}

// Start schedules the probes and runs a first round right away.
func (m *Monitor) Start(schedule string) error {
	_, err := m.cron.AddFunc(schedule, func() {
		m.CheckAll(m.ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule health checks: %w", err)
	}

	m.cron.Start()
	go m.CheckAll(m.ctx)
	slog.Info("Health monitor started", "schedule", schedule)
	return nil
}

func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	m.cancel()
	slog.Info("Health monitor stopped")
}

func (m *Monitor) CheckAll(ctx context.Context) {
	var wg sync.WaitGroup
	for name, baseURL := range m.targets {
		wg.Add(1)
		go func(name, baseURL string) {
			defer wg.Done()
			status := m.probe(ctx, baseURL)
			if status.Status != StatusHealthy {
				slog.WarnContext(ctx, "Collaborator is not healthy", "collaborator", name, "status", status.Status, "error", status.Error)
			}
			m.mu.Lock()
			m.statuses[name] = status
			m.mu.Unlock()
		}(name, baseURL)
	}
	wg.Wait()
}

func (m *Monitor) probe(ctx context.Context, baseURL string) CollaboratorStatus {
	checkedAt := time.Now().UTC()
	status := CollaboratorStatus{CheckedAt: &checkedAt}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/health", nil)
	if err != nil {
		status.Status = StatusUnreachable
		status.Error = err.Error()
		return status
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		status.Status = StatusUnreachable
		status.Error = err.Error()
		return status
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		status.Status = StatusUnhealthy
		status.Error = fmt.Sprintf("health endpoint returned %d", resp.StatusCode)
		return status
	}
	status.Status = StatusHealthy
	return status
}

// Snapshot returns a copy of the latest statuses.
func (m *Monitor) Snapshot() map[string]CollaboratorStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]CollaboratorStatus, len(m.statuses))
	for name, status := range m.statuses {
		snapshot[name] = status
	}
	return snapshot
}
