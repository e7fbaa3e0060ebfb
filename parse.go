package rp

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
)

// PathParam returns a step that reads a path parameter. A missing or empty parameter is None.
func PathParam(key string) func(context.Context, App, *Request) Option[string] {
	return func(_ context.Context, _ App, req *Request) Option[string] {
		return OptionOf(req.Param(key))
	}
}

func QueryParam(key string) func(context.Context, App, *Request) Option[string] {
	return func(_ context.Context, _ App, req *Request) Option[string] {
		return OptionOf(req.Query(key))
	}
}

// HeaderValue returns a step that reads a header. An empty header is None.
func HeaderValue(key string) func(context.Context, App, *Request) Option[string] {
	return func(_ context.Context, _ App, req *Request) Option[string] {
		v := req.Header(key)
		return OptionOf(v, v != "")
	}
}

var errEmptyBody = errors.New("invalid request: empty body")

// BindJSON is a step that decodes the request body into T with gin's JSON binding and validates
// its struct tags with the app's validator. When T is a pointer the target is allocated up front,
// so a null body yields a zero value that still has to pass validation, never a nil pointer.
func BindJSON[T any](_ context.Context, app App, req *Request) Result[T, error] {
	var out T
	if req.HTTP == nil || req.HTTP.Body == nil {
		return Err[T](errEmptyBody)
	}

	target := any(&out)
	if t := reflect.TypeFor[T](); t.Kind() == reflect.Pointer {
		out = reflect.New(t.Elem()).Interface().(T)
		target = out
	}
	if err := binding.JSON.Bind(req.HTTP, target); err != nil {
		return Err[T](fmt.Errorf("invalid request: %w", err))
	}

	v := reflect.ValueOf(out)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return Err[T](errEmptyBody)
	}
	if reflect.Indirect(v).Kind() == reflect.Struct {
		if err := app.Validator().Struct(out); err != nil {
			return Err[T](fmt.Errorf("invalid request: %w", err))
		}
	}
	return Ok[T, error](out)
}
