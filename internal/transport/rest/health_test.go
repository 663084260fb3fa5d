package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(context.Context) error { return m.err }

func doHealth(t *testing.T, pingErr error) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()

	h := NewHealthHandler(&dbPingerMock{err: pingErr}, "v1.0.0")
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	return rec, resp
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	rec, resp := doHealth(t, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Version != "v1.0.0" {
		t.Errorf("version = %q, want v1.0.0", resp.Version)
	}
	db := resp.Components["database"]
	if db.Status != "ok" {
		t.Errorf("database status = %q, want ok", db.Status)
	}
	if db.Latency == "" {
		t.Error("database latency missing")
	}
}

func TestHealth_DBDown(t *testing.T) {
	t.Parallel()

	rec, resp := doHealth(t, errors.New("connection refused"))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d, want 503", rec.Code)
	}
	if resp.Status != "down" {
		t.Errorf("status = %q, want down", resp.Status)
	}
	if resp.Components["database"].Status != "down" {
		t.Errorf("database status = %q, want down", resp.Components["database"].Status)
	}
}
