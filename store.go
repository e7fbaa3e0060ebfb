package rp

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Store is the document storage the App hands to steps. Implementations live in
// modules/rpmongo and modules/rpmem.
type Store interface {
	// FindOne returns the first document matching filter, or nil when there is none.
	FindOne(ctx context.Context, collection string, filter any) (bson.Raw, error)
	// Find returns every document matching filter.
	Find(ctx context.Context, collection string, filter any) ([]bson.Raw, error)
	// InsertOne stores document and returns its _id.
	InsertOne(ctx context.Context, collection string, document any) (any, error)
}

var errNoStore = errors.New("no store configured")

// RetrieveOne looks up one document and decodes it into T. Lookup and decode failures are
// returned as *StorageError; a missing document is None.
func RetrieveOne[T any](ctx context.Context, db Store, collection string, filter any) (Option[T], error) {
	if db == nil {
		return None[T](), &StorageError{Op: "find one", Collection: collection, Err: errNoStore}
	}
	raw, err := db.FindOne(ctx, collection, filter)
	if err != nil {
		return None[T](), &StorageError{Op: "find one", Collection: collection, Err: err}
	}
	if raw == nil {
		return None[T](), nil
	}

	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return None[T](), &StorageError{Op: "decode", Collection: collection, Err: err}
	}
	return Some(out), nil
}

// RetrieveMany decodes every matching document into T.
func RetrieveMany[T any](ctx context.Context, db Store, collection string, filter any) ([]T, error) {
	if db == nil {
		return nil, &StorageError{Op: "find", Collection: collection, Err: errNoStore}
	}
	raws, err := db.Find(ctx, collection, filter)
	if err != nil {
		return nil, &StorageError{Op: "find", Collection: collection, Err: err}
	}

	results := make([]T, 0, len(raws))
	for _, raw := range raws {
		var out T
		if err := bson.Unmarshal(raw, &out); err != nil {
			return nil, &StorageError{Op: "decode", Collection: collection, Err: err}
		}
		results = append(results, out)
	}
	return results, nil
}

// InsertOne inserts document and returns its _id.
func InsertOne(ctx context.Context, db Store, collection string, document any) (any, error) {
	if db == nil {
		return nil, &StorageError{Op: "insert", Collection: collection, Err: errNoStore}
	}
	id, err := db.InsertOne(ctx, collection, document)
	if err != nil {
		return nil, &StorageError{Op: "insert", Collection: collection, Err: err}
	}
	return id, nil
}
