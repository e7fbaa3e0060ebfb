package rp

import "context"

// Ensure attaches a guard. When cond holds the payload passes through unchanged; otherwise the
// chain short-circuits with message and status.
func Ensure[T any](p *Pipeline[T], cond func(ctx context.Context, app App, in T) bool, message string, status int) *Pipeline[T] {
	return stage(p, stepLabel("ensure", cond), func(ctx context.Context, app App, in T) Outcome[T] {
		if !cond(ctx, app, in) {
			return ShortCircuit[T](message, status)
		}
		return Continue(in)
	})
}
