// Package rpmongo provides an rp.Store backed by MongoDB.
package rpmongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Options struct {
	URI            string
	Database       string
	AppName        string
	ConnectTimeout time.Duration
}

// Store implements rp.Store on a single database.
type Store struct {
	db *mongo.Database
}

// New wraps an existing database handle.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Connect opens a client, pings the server and returns a Store for opts.Database.
// Close the store with Disconnect.
func Connect(ctx context.Context, opts Options) (*Store, error) {
	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.AppName != "" {
		clientOpts.SetAppName(opts.AppName)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", opts.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping %s: %w", opts.URI, err)
	}

	return New(client.Database(opts.Database)), nil
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) FindOne(ctx context.Context, collection string, filter any) (bson.Raw, error) {
	raw, err := s.db.Collection(collection).FindOne(ctx, orAll(filter)).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *Store) Find(ctx context.Context, collection string, filter any) ([]bson.Raw, error) {
	cur, err := s.db.Collection(collection).Find(ctx, orAll(filter))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := make([]bson.Raw, 0)
	for cur.Next(ctx) {
		// cur.Current is reused by the next call to Next.
		results = append(results, append(bson.Raw(nil), cur.Current...))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Store) InsertOne(ctx context.Context, collection string, document any) (any, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, document)
	if err != nil {
		return nil, err
	}
	return res.InsertedID, nil
}

func orAll(filter any) any {
	if filter == nil {
		return bson.D{}
	}
	return filter
}
