package rp

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Request is the inbound request as seen by steps: the HTTP request plus the path parameters
// the router matched. The pipeline never interprets it.
type Request struct {
	HTTP     *http.Request
	Params   gin.Params
	clientIP string
}

// NewRequest wraps r. clientIP defaults to r.RemoteAddr.
func NewRequest(r *http.Request, params gin.Params) *Request {
	return &Request{HTTP: r, Params: params, clientIP: r.RemoteAddr}
}

func requestFromGin(c *gin.Context) *Request {
	return &Request{HTTP: c.Request, Params: c.Params, clientIP: c.ClientIP()}
}

func (r *Request) Context() context.Context {
	return r.HTTP.Context()
}

// Header returns the first value of the named header, or "".
func (r *Request) Header(key string) string {
	return r.HTTP.Header.Get(key)
}

// Param returns a path parameter and whether it was matched and non-empty.
func (r *Request) Param(key string) (string, bool) {
	v, ok := r.Params.Get(key)
	return v, ok && v != ""
}

// Query returns a query parameter and whether it was present.
func (r *Request) Query(key string) (string, bool) {
	vals, ok := r.HTTP.URL.Query()[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func (r *Request) ClientIP() string {
	return r.clientIP
}

// RequestID returns the id assigned by the RequestID middleware.
func (r *Request) RequestID() string {
	return r.HTTP.Header.Get(HeaderRequestID)
}
