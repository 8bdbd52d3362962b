package monitoring

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAlerts(s *Server) int {
	s.alertsMux.RLock()
	defer s.alertsMux.RUnlock()

	open := 0
	for _, a := range s.alerts {
		if !a.Resolved {
			open++
		}
	}
	return open
}

func TestRaiseAlertDeduplicatesOpenAlerts(t *testing.T) {
	s := NewServer(nil, 0)

	s.raiseAlert("critical", "database_down", "Database is unreachable")
	s.raiseAlert("critical", "database_down", "Database is unreachable")
	s.raiseAlert("critical", "database_down", "Database is unreachable")

	assert.Equal(t, 1, len(s.alerts))
	assert.Equal(t, 1, openAlerts(s))
}

func TestResolveAlertClosesAndAllowsReraise(t *testing.T) {
	s := NewServer(nil, 0)

	s.raiseAlert("warning", "high_latency", "Database response time: 1500ms")
	s.resolveAlert("high_latency")

	require.Equal(t, 1, len(s.alerts))
	assert.True(t, s.alerts[0].Resolved)
	assert.Equal(t, 0, openAlerts(s))

	// The condition coming back opens a fresh alert with a new id.
	s.raiseAlert("warning", "high_latency", "Database response time: 1200ms")
	require.Equal(t, 2, len(s.alerts))
	assert.False(t, s.alerts[1].Resolved)
	assert.NotEqual(t, s.alerts[0].ID, s.alerts[1].ID)
}

func TestAlertHistoryIsCapped(t *testing.T) {
	s := NewServer(nil, 0)

	for i := 0; i < alertHistoryLimit+50; i++ {
		s.raiseAlert("warning", fmt.Sprintf("type_%d", i), "synthetic")
	}

	assert.Equal(t, alertHistoryLimit, len(s.alerts))
	// Oldest entries were dropped, the newest survive.
	assert.Equal(t, fmt.Sprintf("type_%d", alertHistoryLimit+49), s.alerts[len(s.alerts)-1].Type)
}

func TestShutdownStopsHealthTicker(t *testing.T) {
	s := NewServer(nil, 0)

	require.NoError(t, s.Shutdown(context.Background()))

	select {
	case <-s.done:
	default:
		t.Fatal("done channel still open after Shutdown")
	}
}
