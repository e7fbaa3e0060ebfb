// Package rpmem provides an in-memory rp.Store for tests and local development.
//
// Filters are documents of equality conditions. Keys may be dotted paths into embedded documents.
// Values must have the same BSON type as the stored field to match, so an int filter value does
// not match a field stored as int64.
package rpmem

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]bson.Raw
}

func New() *Store {
	return &Store{collections: make(map[string][]bson.Raw)}
}

// FindOne returns a copy of the first document matching filter, or nil when none does.
func (s *Store) FindOne(ctx context.Context, collection string, filter any) (bson.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conds, err := conditions(filter)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.collections[collection] {
		if matches(doc, conds) {
			return bytes.Clone(doc), nil
		}
	}
	return nil, nil
}

func (s *Store) Find(ctx context.Context, collection string, filter any) ([]bson.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conds, err := conditions(filter)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]bson.Raw, 0)
	for _, doc := range s.collections[collection] {
		if matches(doc, conds) {
			results = append(results, bytes.Clone(doc))
		}
	}
	return results, nil
}

// InsertOne stores a copy of document. A missing _id is filled with a new ObjectID.
func (s *Store) InsertOne(ctx context.Context, collection string, document any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := bson.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var id any
	if v, err := bson.Raw(raw).LookupErr("_id"); err == nil {
		id = rawID(v)
	} else {
		oid := primitive.NewObjectID()
		var d bson.D
		if err := bson.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("unmarshal document: %w", err)
		}
		d = append(bson.D{{Key: "_id", Value: oid}}, d...)
		if raw, err = bson.Marshal(d); err != nil {
			return nil, fmt.Errorf("marshal document: %w", err)
		}
		id = oid
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], raw)
	s.mu.Unlock()
	return id, nil
}

// Len reports how many documents a collection holds.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func rawID(v bson.RawValue) any {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid
	}
	if str, ok := v.StringValueOK(); ok {
		return str
	}
	return v
}

type condition struct {
	path  []string
	value bson.RawValue
}

func conditions(filter any) ([]condition, error) {
	if filter == nil {
		return nil, nil
	}
	raw, err := bson.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}
	elems, err := bson.Raw(raw).Elements()
	if err != nil {
		return nil, fmt.Errorf("read filter: %w", err)
	}

	conds := make([]condition, 0, len(elems))
	for _, e := range elems {
		conds = append(conds, condition{
			path:  strings.Split(e.Key(), "."),
			value: e.Value(),
		})
	}
	return conds, nil
}

func matches(doc bson.Raw, conds []condition) bool {
	for _, c := range conds {
		v, err := doc.LookupErr(c.path...)
		if err != nil {
			return false
		}
		if v.Type != c.value.Type || !bytes.Equal(v.Value, c.value.Value) {
			return false
		}
	}
	return true
}
