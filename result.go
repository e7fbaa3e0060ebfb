package rp

// Result is a step output that either holds a value or a failure of type E.
// A pipeline carrying a Result must pass through Catch before its value can be used.
type Result[A, E any] struct {
	value  A
	err    E
	failed bool
}

func Ok[A, E any](a A) Result[A, E] {
	return Result[A, E]{value: a}
}

func Err[A, E any](e E) Result[A, E] {
	return Result[A, E]{err: e, failed: true}
}

// FromError converts a (value, error) pair. A nil err means success.
func FromError[A any](a A, err error) Result[A, error] {
	if err != nil {
		return Err[A](err)
	}
	return Ok[A, error](a)
}

func (r Result[A, E]) IsOk() bool {
	return !r.failed
}

// Get returns the value and true on success.
func (r Result[A, E]) Get() (A, bool) {
	return r.value, !r.failed
}

// Failure returns the failure and true when the Result is not Ok.
func (r Result[A, E]) Failure() (E, bool) {
	return r.err, r.failed
}

// Option is a step output that may be absent. A pipeline carrying an Option must pass through
// IfNone before its value can be used.
type Option[A any] struct {
	value A
	ok    bool
}

func Some[A any](a A) Option[A] {
	return Option[A]{value: a, ok: true}
}

func None[A any]() Option[A] {
	return Option[A]{}
}

// OptionOf adapts the comma-ok idiom.
func OptionOf[A any](a A, ok bool) Option[A] {
	if !ok {
		return None[A]()
	}
	return Some(a)
}

func (o Option[A]) IsSome() bool {
	return o.ok
}

func (o Option[A]) Get() (A, bool) {
	return o.value, o.ok
}

type Pair[A, B any] struct {
	First  A
	Second B
}
