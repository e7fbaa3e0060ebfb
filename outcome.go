package rp

// Outcome is the state threaded between steps: either the chain is still running with a value,
// or it has short-circuited with a fixed response. A short-circuited Outcome never changes.
type Outcome[T any] struct {
	value  T
	halted bool
	body   string
	status int
}

func Continue[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

func ShortCircuit[T any](body string, status int) Outcome[T] {
	return Outcome[T]{halted: true, body: body, status: status}
}

// Value returns the payload and true while the chain is still running.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, !o.halted
}

// Halted returns the carried body and status once the chain has short-circuited.
func (o Outcome[T]) Halted() (string, int, bool) {
	return o.body, o.status, o.halted
}

// passOn re-types a short-circuited outcome for the next stage.
func passOn[Out, In any](o Outcome[In]) Outcome[Out] {
	return ShortCircuit[Out](o.body, o.status)
}

// Body is the set of payload types that can be written as a response body.
type Body interface {
	~string | ~[]byte
}

// validStatus maps a code outside the HTTP status range to 500, so a short circuit can never
// reach the client as a success.
func validStatus(status int) int {
	if status < 100 || status > 599 {
		return ISR
	}
	return status
}

// Render converts an outcome into a response. It has no side effects.
func Render[T Body](o Outcome[T]) Response {
	if o.halted {
		return Response{
			Status:      validStatus(o.status),
			Body:        []byte(o.body),
			ContentType: contentTypeText,
		}
	}

	ct := contentTypeText
	if _, ok := any(o.value).(JSONBody); ok {
		ct = contentTypeJSON
	}
	return Response{
		Status:      200,
		Body:        []byte(o.value),
		ContentType: ct,
	}
}
