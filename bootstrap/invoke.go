package bootstrap

import (
	"context"
	"fmt"
)

// invoke runs a user-supplied callable, converting panics into errors so
// a misbehaving initializer or health checker can never take down the
// orchestrator. This is the single calling convention for all user code.
func invoke(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("callable panicked: %v", r)
		}
	}()
	return fn(ctx)
}
