package rp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrNotFound = errors.New("not found")

// StorageError wraps a failure reported by a Store or while decoding one of its documents.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %q: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// EncodeError wraps a failure to serialize a response payload.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "encode: " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Respond maps a lookup result onto a Result that Catch can resolve: a storage failure and an
// absent document become distinct errors, a found document becomes its JSON encoding.
// It accepts the return values of RetrieveOne directly:
//
//	rp.Respond(rp.RetrieveOne[User](ctx, app.Database(), "users", bson.M{"id": id}))
func Respond[T any](found Option[T], err error) Result[JSONBody, error] {
	if err != nil {
		var se *StorageError
		if !errors.As(err, &se) {
			err = &StorageError{Op: "retrieve", Err: err}
		}
		return Err[JSONBody](err)
	}

	v, ok := found.Get()
	if !ok {
		return Err[JSONBody](ErrNotFound)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return Err[JSONBody](error(&EncodeError{Err: err}))
	}
	return Ok[JSONBody, error](b)
}

// ErrorStatus is a Catch handler following the usual conventions: 404 for ErrNotFound,
// 500 for everything else.
func ErrorStatus(err error) (string, int) {
	var ee *EncodeError
	switch {
	case errors.Is(err, ErrNotFound):
		return "Not found", http.StatusNotFound
	case errors.As(err, &ee):
		return "Encoding error", ISR
	default:
		return "Database error", ISR
	}
}
