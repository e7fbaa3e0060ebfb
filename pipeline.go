package rp

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrPipelineConsumed is the panic value raised when a Pipeline is chained or finished twice.
var ErrPipelineConsumed = errors.New("rp: pipeline already consumed")

// Pipeline is one request's chain of steps. It holds the App and a deferred computation that
// yields the current Outcome. Every operator consumes the Pipeline it is given and returns a new
// one, so a chain reads like:
//
//	p := rp.Receive(req, app)
//	id := rp.IfNone(rp.Then(p, rp.PathParam("id")), "No id provided", http.StatusBadRequest)
//	user := rp.IfNone(rp.Catch(rp.Try(id, findUser), dbError), "Not found", http.StatusNotFound)
//	res := rp.Finish(ctx, rp.Catch(rp.Then(user, rp.EncodeJSON[User]), rp.ErrorStatus))
//
// Building the chain does no work; Finish runs the steps in the order they were attached.
type Pipeline[T any] struct {
	app  App
	run  func(ctx context.Context) Outcome[T]
	used atomic.Bool
}

// Receive starts a pipeline whose current value is the request. Call it once per request.
func Receive(req *Request, app App) *Pipeline[*Request] {
	return &Pipeline[*Request]{
		app: app,
		run: func(context.Context) Outcome[*Request] {
			return Continue(req)
		},
	}
}

// take marks p as consumed and hands out its deferred computation.
func (p *Pipeline[T]) take() func(ctx context.Context) Outcome[T] {
	if !p.used.CompareAndSwap(false, true) {
		panic(ErrPipelineConsumed)
	}
	return p.run
}

// App returns the pipeline's shared dependencies.
func (p *Pipeline[T]) App() App {
	return p.app
}

// stage attaches f behind p. f only runs when the previous outcome is still continuing and the
// request context is alive; otherwise the short-circuit is passed on untouched.
func stage[In, Out any](p *Pipeline[In], label string, f func(ctx context.Context, app App, in In) Outcome[Out]) *Pipeline[Out] {
	prev := p.take()
	app := p.app

	return &Pipeline[Out]{
		app: app,
		run: func(ctx context.Context) Outcome[Out] {
			o := prev(ctx)
			if o.halted {
				return passOn[Out](o)
			}
			if ctx.Err() != nil {
				return ShortCircuit[Out]("request cancelled", StatusClientClosedRequest)
			}
			return runStage(ctx, app, label, o.value, func(ctx context.Context) Outcome[Out] {
				return f(ctx, app, o.value)
			})
		},
	}
}

// Then attaches a step. Whatever the step returns, including a Result or Option, becomes the
// next payload.
func Then[In, Out any](p *Pipeline[In], step func(ctx context.Context, app App, in In) Out) *Pipeline[Out] {
	return stage(p, stepLabel("then", step), func(ctx context.Context, app App, in In) Outcome[Out] {
		return Continue(step(ctx, app, in))
	})
}

// Try attaches a step written in the usual (value, error) form. The pipeline then carries a
// Result that must be resolved with Catch.
func Try[In, Out any](p *Pipeline[In], step func(ctx context.Context, app App, in In) (Out, error)) *Pipeline[Result[Out, error]] {
	return stage(p, stepLabel("try", step), func(ctx context.Context, app App, in In) Outcome[Result[Out, error]] {
		out, err := step(ctx, app, in)
		return Continue(FromError(out, err))
	})
}

// Catch resolves a Result payload. Ok values continue; a failure is handed to handler and the
// chain short-circuits with the returned message and status.
func Catch[A, E any](p *Pipeline[Result[A, E]], handler func(E) (string, int)) *Pipeline[A] {
	return stage(p, stepLabel("catch", handler), func(_ context.Context, _ App, in Result[A, E]) Outcome[A] {
		if !in.failed {
			return Continue(in.value)
		}
		msg, code := handler(in.err)
		return ShortCircuit[A](msg, code)
	})
}

// CatchAsync is Catch for handlers that block, for example to record the failure somewhere.
func CatchAsync[A, E any](p *Pipeline[Result[A, E]], handler func(ctx context.Context, app App, e E) (string, int)) *Pipeline[A] {
	return stage(p, stepLabel("catch", handler), func(ctx context.Context, app App, in Result[A, E]) Outcome[A] {
		if !in.failed {
			return Continue(in.value)
		}
		msg, code := handler(ctx, app, in.err)
		return ShortCircuit[A](msg, code)
	})
}

// IfNone resolves an Option payload, short-circuiting with message and status when it is empty.
func IfNone[A any](p *Pipeline[Option[A]], message string, status int) *Pipeline[A] {
	return stage(p, "  => ifNone =>", func(_ context.Context, _ App, in Option[A]) Outcome[A] {
		if !in.ok {
			return ShortCircuit[A](message, status)
		}
		return Continue(in.value)
	})
}

// Finish runs the chain and renders it: 200 with the final payload, or the status and body
// carried by the short-circuit. It never fails.
func Finish[T Body](ctx context.Context, p *Pipeline[T]) Response {
	run := p.take()
	if lgr := p.app.Logger(); lgr != nil {
		lgr.LogMessage("Starting execution chain...")
	}
	return Render(run(ctx))
}
