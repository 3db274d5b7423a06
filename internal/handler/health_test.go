package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.err }

func TestHealth(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	h.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestReady(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		h := &Handler{health: &mockPinger{}}
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rr := httptest.NewRecorder()

		h.Ready(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("database down", func(t *testing.T) {
		h := &Handler{health: &mockPinger{err: errors.New("connection refused")}}
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rr := httptest.NewRecorder()

		h.Ready(rr, req)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
