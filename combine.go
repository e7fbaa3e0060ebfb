package rp

// Adding pairs second onto a successful Result and leaves a failed one untouched. It lets a step
// carry an earlier value forward next to a new one without nesting wrappers:
//
//	rp.Then(p, func(ctx context.Context, app rp.App, req *rp.Request) rp.Result[rp.Pair[User, string], error] {
//	    return rp.Adding(authenticate(req), req.ClientIP())
//	})
func Adding[A, B, E any](r Result[A, E], second B) Result[Pair[A, B], E] {
	if r.failed {
		return Err[Pair[A, B]](r.err)
	}
	return Ok[Pair[A, B], E](Pair[A, B]{First: r.value, Second: second})
}
