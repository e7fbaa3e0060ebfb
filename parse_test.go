package rp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremywhuff/rp/v2"
)

func TestRequestSteps(t *testing.T) {
	ctx := context.Background()
	app := rp.NewApp(nil)

	r := httptest.NewRequest(http.MethodGet, "/users/9?sort=name&empty=", http.NoBody)
	r.Header.Set("X-Token", "abc")
	req := rp.NewRequest(r, gin.Params{{Key: "id", Value: "9"}, {Key: "blank", Value: ""}})

	id, ok := rp.PathParam("id")(ctx, app, req).Get()
	assert.True(t, ok)
	assert.Equal(t, "9", id)
	assert.False(t, rp.PathParam("blank")(ctx, app, req).IsSome())
	assert.False(t, rp.PathParam("missing")(ctx, app, req).IsSome())

	sort, ok := rp.QueryParam("sort")(ctx, app, req).Get()
	assert.True(t, ok)
	assert.Equal(t, "name", sort)
	assert.True(t, rp.QueryParam("empty")(ctx, app, req).IsSome())
	assert.False(t, rp.QueryParam("page")(ctx, app, req).IsSome())

	tok, ok := rp.HeaderValue("X-Token")(ctx, app, req).Get()
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)
	assert.False(t, rp.HeaderValue("X-Other")(ctx, app, req).IsSome())
}

type signup struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func bodyRequest(body string) *rp.Request {
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	return rp.NewRequest(r, nil)
}

func TestBindJSON(t *testing.T) {
	ctx := context.Background()
	app := rp.NewApp(nil)

	got, ok := rp.BindJSON[signup](ctx, app, bodyRequest(`{"name":"ada","email":"ada@example.com"}`)).Get()
	require.True(t, ok)
	assert.Equal(t, signup{Name: "ada", Email: "ada@example.com"}, got)

	err, failed := rp.BindJSON[signup](ctx, app, bodyRequest(`{"name":"ada","email":"nope"}`)).Failure()
	require.True(t, failed)
	assert.Contains(t, err.Error(), "Email")

	_, failed = rp.BindJSON[signup](ctx, app, bodyRequest(`{`)).Failure()
	assert.True(t, failed)

	m, ok := rp.BindJSON[map[string]int](ctx, app, bodyRequest(`{"a":1}`)).Get()
	require.True(t, ok)
	assert.Equal(t, 1, m["a"])
}

func TestBindJSONRejectsNull(t *testing.T) {
	ctx := context.Background()
	app := rp.NewApp(nil)

	_, failed := rp.BindJSON[*signup](ctx, app, bodyRequest(`null`)).Failure()
	assert.True(t, failed)

	_, failed = rp.BindJSON[signup](ctx, app, bodyRequest(`null`)).Failure()
	assert.True(t, failed, "required fields must still be validated")

	err, failed := rp.BindJSON[*signup](ctx, app, bodyRequest(`{"name":"ada"}`)).Failure()
	require.True(t, failed)
	assert.Contains(t, err.Error(), "Email")

	got, ok := rp.BindJSON[*signup](ctx, app, bodyRequest(`{"name":"ada","email":"ada@example.com"}`)).Get()
	require.True(t, ok)
	assert.Equal(t, "ada", got.Name)
}
