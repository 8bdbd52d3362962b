package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPServerEnforcesTimeouts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	srv := newHTTPServer(":8080", handler)

	require.NotNil(t, srv)
	assert.Equal(t, ":8080", srv.Addr)
	assert.NotNil(t, srv.Handler)

	// A stalled client must not be able to hold a connection open.
	assert.Greater(t, srv.ReadTimeout.Seconds(), 0.0)
	assert.Greater(t, srv.ReadHeaderTimeout.Seconds(), 0.0)
	assert.Greater(t, srv.WriteTimeout.Seconds(), 0.0)
	assert.Greater(t, srv.IdleTimeout.Seconds(), 0.0)
}
