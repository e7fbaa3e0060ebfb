package rp

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Join attaches a step that runs left and right concurrently on the same input and pairs their
// results. The first error cancels the other branch's context and becomes the Result's failure.
// Both branches must be safe to run in parallel.
func Join[In, A, B any](
	p *Pipeline[In],
	left func(ctx context.Context, app App, in In) (A, error),
	right func(ctx context.Context, app App, in In) (B, error),
) *Pipeline[Result[Pair[A, B], error]] {

	label := "  => " + FuncStr("join", funcName(left), funcName(right)) + " =>"

	return stage(p, label, func(ctx context.Context, app App, in In) Outcome[Result[Pair[A, B], error]] {
		var out Pair[A, B]

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			a, err := left(gctx, app, in)
			out.First = a
			return err
		})
		g.Go(func() error {
			b, err := right(gctx, app, in)
			out.Second = b
			return err
		})

		if err := g.Wait(); err != nil {
			return Continue(Err[Pair[A, B]](err))
		}
		return Continue(Ok[Pair[A, B], error](out))
	})
}
