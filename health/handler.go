package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketedge/bootkit/bootstrap"
)

// Overall readiness values reported by the ready endpoint.
const (
	StateUp       = "up"
	StateDegraded = "degraded"
	StateDown     = "down"
)

// Response is the body of the ready endpoint.
type Response struct {
	Service  string             `json:"service"`
	Version  string             `json:"version,omitempty"`
	Status   string             `json:"status"`
	Snapshot bootstrap.Snapshot `json:"snapshot"`
}

// overall collapses a snapshot into a single readiness value. Failed or
// circuit-open services take the process down; degraded services only
// degrade it. Not-yet-requested services are treated as pending, not
// down, so lazy startup does not fail readiness.
func overall(snap bootstrap.Snapshot) string {
	if snap.StatusCounts[bootstrap.StatusFailed] > 0 ||
		snap.StatusCounts[bootstrap.StatusCircuitOpen] > 0 {
		return StateDown
	}
	if snap.StatusCounts[bootstrap.StatusDegraded] > 0 {
		return StateDegraded
	}
	return StateUp
}

// ReadyHandler returns a gin handler serving the orchestrator snapshot
// as a readiness response.
func ReadyHandler(orch *bootstrap.Orchestrator, service, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := orch.Snapshot()
		resp := Response{
			Service:  service,
			Version:  version,
			Status:   overall(snap),
			Snapshot: snap,
		}

		code := http.StatusOK
		if resp.Status == StateDown {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}

// LiveHandler returns a gin handler that reports process liveness.
func LiveHandler(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": service, "status": StateUp})
	}
}

// RegisterRoutes mounts the health endpoints on the router.
func RegisterRoutes(r gin.IRouter, orch *bootstrap.Orchestrator, service, version string) {
	grp := r.Group("/health")
	grp.GET("/live", LiveHandler(service))
	grp.GET("/ready", ReadyHandler(orch, service, version))
}
