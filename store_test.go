package rp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jeremywhuff/rp/v2"
	"github.com/jeremywhuff/rp/v2/modules/rpmem"
)

func TestRetrieveOneDecodeFailure(t *testing.T) {
	ctx := context.Background()
	store := rpmem.New()
	_, err := store.InsertOne(ctx, "users", bson.M{"id": "1", "name": 12})
	require.NoError(t, err)

	found, err := rp.RetrieveOne[User](ctx, store, "users", bson.M{"id": "1"})

	var se *rp.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "decode", se.Op)
	assert.False(t, found.IsSome())
}

func TestRetrieveMany(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, User{ID: "1", Name: "a"}, User{ID: "2", Name: "b"}, User{ID: "3", Name: "a"})

	named, err := rp.RetrieveMany[User](ctx, store, "users", bson.M{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, []User{{ID: "1", Name: "a"}, {ID: "3", Name: "a"}}, named)

	all, err := rp.RetrieveMany[User](ctx, store, "users", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := rp.RetrieveMany[User](ctx, store, "missing", nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStorageFailuresAreWrapped(t *testing.T) {
	ctx := context.Background()

	_, err := rp.RetrieveOne[User](ctx, brokenStore{}, "users", nil)
	assert.ErrorIs(t, err, errUnreachable)

	_, err = rp.RetrieveMany[User](ctx, brokenStore{}, "users", nil)
	assert.ErrorIs(t, err, errUnreachable)

	_, err = rp.InsertOne(ctx, brokenStore{}, "users", User{})
	var se *rp.StorageError
	assert.ErrorAs(t, err, &se)

	_, err = rp.RetrieveOne[User](ctx, nil, "users", nil)
	assert.ErrorAs(t, err, &se)
}
