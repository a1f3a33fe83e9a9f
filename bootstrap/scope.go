package bootstrap

import "context"

// WithService is the scoped-acquisition helper: it ensures the named
// service and then always runs fn, passing the readiness outcome. The
// caller branches on ready to run in degraded mode when the dependency
// is not usable. There is no cleanup on exit; the helper only guarantees
// fn executes exactly once.
//
//	err := orch.WithService(ctx, "cache", func(ready bool) error {
//	    if !ready {
//	        return serveFromOrigin(ctx)
//	    }
//	    return serveFromCache(ctx)
//	})
func (o *Orchestrator) WithService(ctx context.Context, name string, fn func(ready bool) error) error {
	ready := o.Ensure(ctx, name)
	return fn(ready)
}
