// Package health exposes orchestrator state as HTTP readiness and
// liveness endpoints for gin applications.
//
//	r := gin.New()
//	health.RegisterRoutes(r, orch, "marketedge-api", version)
//
// GET /health/live always returns 200 while the process runs.
// GET /health/ready returns 200 when no service is failed or circuit
// open, 503 otherwise; degraded services are reported in the body.
package health
