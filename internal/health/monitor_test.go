package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorCheckAll(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	gone := httptest.NewServer(http.NotFoundHandler())
	goneURL := gone.URL
	gone.Close()

	monitor := NewMonitor(map[string]string{
		"memory": healthy.URL + "/",
		"answer": failing.URL,
		"search": goneURL,
	}, time.Second)

	for _, status := range monitor.Snapshot() {
		assert.Equal(t, StatusUnknown, status.Status)
		assert.Nil(t, status.CheckedAt)
	}

	monitor.CheckAll(context.Background())
	snapshot := monitor.Snapshot()

	assert.Equal(t, StatusHealthy, snapshot["memory"].Status)
	require.NotNil(t, snapshot["memory"].CheckedAt)
	assert.Equal(t, StatusUnhealthy, snapshot["answer"].Status)
	assert.Contains(t, snapshot["answer"].Error, "503")
	assert.Equal(t, StatusUnreachable, snapshot["search"].Status)
	assert.NotEmpty(t, snapshot["search"].Error)
}

func TestMonitorStartRejectsBadSchedule(t *testing.T) {
	monitor := NewMonitor(map[string]string{}, time.Second)
	assert.Error(t, monitor.Start("every now and then"))
}

func TestMonitorStartRunsFirstRound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	monitor := NewMonitor(map[string]string{"memory": server.URL}, time.Second)
	require.NoError(t, monitor.Start("@every 1h"))
	defer monitor.Stop()

	assert.Eventually(t, func() bool {
		return monitor.Snapshot()["memory"].Status == StatusHealthy
	}, 2*time.Second, 10*time.Millisecond)
}
