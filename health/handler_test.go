package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/marketedge/bootkit/bootstrap"
	"github.com/marketedge/bootkit/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(orch *bootstrap.Orchestrator) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r, orch, "test-service", "1.2.3")
	return r
}

func newOrchestrator() *bootstrap.Orchestrator {
	return bootstrap.New(
		bootstrap.WithLogger(logger.Nop()),
		bootstrap.WithRetryDelay(0),
	)
}

func doRequest(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var resp Response
	if path == "/health/ready" {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
	return w, resp
}

func TestLive(t *testing.T) {
	r := newRouter(newOrchestrator())

	w, _ := doRequest(t, r, "/health/live")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestReadyUp(t *testing.T) {
	orch := newOrchestrator()
	orch.Register("db", func(ctx context.Context) error { return nil })
	orch.Ensure(context.Background(), "db")

	w, resp := doRequest(t, newRouter(orch), "/health/ready")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp.Status != StateUp {
		t.Errorf("expected status up, got %q", resp.Status)
	}
	if resp.Service != "test-service" || resp.Version != "1.2.3" {
		t.Errorf("expected service metadata, got %+v", resp)
	}
	if resp.Snapshot.Services["db"].Status != bootstrap.StatusInitialized {
		t.Errorf("expected db initialized in snapshot, got %s", resp.Snapshot.Services["db"].Status)
	}
}

func TestReadyPendingServicesAreUp(t *testing.T) {
	orch := newOrchestrator()
	orch.Register("db", func(ctx context.Context) error { return nil })

	w, resp := doRequest(t, newRouter(orch), "/health/ready")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for lazy services, got %d", w.Code)
	}
	if resp.Status != StateUp {
		t.Errorf("expected status up, got %q", resp.Status)
	}
}

func TestReadyDownOnFailure(t *testing.T) {
	orch := newOrchestrator()
	orch.Register("db", func(ctx context.Context) error {
		return errors.New("db down")
	}, bootstrap.WithMaxRetries(0))
	orch.Ensure(context.Background(), "db")

	w, resp := doRequest(t, newRouter(orch), "/health/ready")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
	if resp.Status != StateDown {
		t.Errorf("expected status down, got %q", resp.Status)
	}
}

func TestReadyDegraded(t *testing.T) {
	orch := newOrchestrator()
	orch.Register("db", func(ctx context.Context) error { return nil },
		bootstrap.WithHealthCheck(func(ctx context.Context) error {
			return errors.New("ping timeout")
		}))
	orch.Ensure(context.Background(), "db")
	orch.HealthCheck(context.Background(), "db")

	w, resp := doRequest(t, newRouter(orch), "/health/ready")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for degraded, got %d", w.Code)
	}
	if resp.Status != StateDegraded {
		t.Errorf("expected status degraded, got %q", resp.Status)
	}
}
