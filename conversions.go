package rp

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToObjectID is a step that parses a hex ObjectID such as a path parameter.
func ToObjectID(_ context.Context, _ App, in string) Result[primitive.ObjectID, error] {
	return FromError(primitive.ObjectIDFromHex(in))
}

// ToTime returns a step that parses its input with layout in UTC.
func ToTime(layout string) func(context.Context, App, string) Result[time.Time, error] {
	return func(_ context.Context, _ App, in string) Result[time.Time, error] {
		return FromError(time.Parse(layout, in))
	}
}

// ToTimeInLocation is ToTime for a named IANA zone. An unknown zone falls back to UTC.
func ToTimeInLocation(zone string, layout string) func(context.Context, App, string) Result[time.Time, error] {
	return func(_ context.Context, _ App, in string) Result[time.Time, error] {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			// Default to UTC
			loc = time.UTC
		}
		return FromError(time.ParseInLocation(layout, in, loc))
	}
}

// EncodeJSON is a step that serializes its input. Resolve its Result with Catch.
func EncodeJSON[T any](_ context.Context, _ App, in T) Result[JSONBody, error] {
	b, err := json.Marshal(in)
	if err != nil {
		return Err[JSONBody](error(&EncodeError{Err: err}))
	}
	return Ok[JSONBody, error](b)
}
