package rp

import (
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name string `json:"name"`
}

func TestRespond(t *testing.T) {
	body, ok := Respond(Some(doc{Name: "ada"}), nil).Get()
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"ada"}`, string(body))

	err, failed := Respond(None[doc](), nil).Failure()
	require.True(t, failed)
	assert.ErrorIs(t, err, ErrNotFound)

	cause := errors.New("unreachable")
	err, failed = Respond(None[doc](), cause).Failure()
	require.True(t, failed)
	var se *StorageError
	assert.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, cause)

	err, failed = Respond(Some(math.Inf(1)), nil).Failure()
	require.True(t, failed)
	var ee *EncodeError
	assert.ErrorAs(t, err, &ee)
}

func TestErrorStatus(t *testing.T) {
	msg, code := ErrorStatus(ErrNotFound)
	assert.Equal(t, "Not found", msg)
	assert.Equal(t, http.StatusNotFound, code)

	msg, code = ErrorStatus(&StorageError{Op: "find", Collection: "users", Err: errors.New("x")})
	assert.Equal(t, "Database error", msg)
	assert.Equal(t, http.StatusInternalServerError, code)

	msg, code = ErrorStatus(&EncodeError{Err: errors.New("x")})
	assert.Equal(t, "Encoding error", msg)
	assert.Equal(t, http.StatusInternalServerError, code)
}
