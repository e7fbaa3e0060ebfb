// Package rp builds typed request pipelines.
//
// rp stands for "request pipeline". A pipeline starts from an inbound request and threads a value
// through a sequence of steps. Each step sees the shared App and the previous step's output.
// Steps that can fail or find nothing produce a Result or an Option, and the chain will not
// type-check until a Catch or IfNone resolves it into either the plain value or a short-circuit
// response:
//
//	res := rp.Finish(ctx,
//	    rp.Catch(
//	        rp.Try(
//	            rp.IfNone(
//	                rp.Then(rp.Receive(req, app), rp.PathParam("id")),
//	                "No id provided", http.StatusBadRequest),
//	            lookupUser),
//	        rp.ErrorStatus))
//
// Nothing runs until Finish is called. Once a step short-circuits, every later step is skipped and
// the carried status and body become the response.
package rp

import "net/http"

var (
	BR  = http.StatusBadRequest
	ISR = http.StatusInternalServerError
)

// StatusClientClosedRequest is reported when the request context ends before the chain completes.
const StatusClientClosedRequest = 499

// Response is the rendered result of a pipeline.
type Response struct {
	Status      int    // HTTP status code
	Body        []byte // Response body
	ContentType string // Defaults to text/plain when empty
}

// JSONBody is a payload that is already encoded as JSON. Finish renders it with an
// application/json content type.
type JSONBody []byte

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)
