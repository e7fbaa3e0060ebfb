package rp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HandlerFunc is the shape of a route handler: it receives the App and the request and always
// produces a Response. Handlers normally build a pipeline with Receive and end it with Finish.
type HandlerFunc func(ctx context.Context, app App, req *Request) Response

type Route struct {
	HttpMethod   string
	RelativePath string
	Handler      HandlerFunc
}

// Frontend binds handlers to a gin engine and serves them.
type Frontend struct {
	app    App
	engine *gin.Engine
}

type FrontendOption func(*gin.Engine)

// WithMiddleware appends gin middleware after the defaults.
func WithMiddleware(mw ...gin.HandlerFunc) FrontendOption {
	return func(e *gin.Engine) { e.Use(mw...) }
}

// NewFrontend creates an engine with panic recovery, request ids and access logging.
func NewFrontend(app App, opts ...FrontendOption) *Frontend {
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), AccessLog(app))
	for _, opt := range opts {
		opt(engine)
	}
	return &Frontend{app: app, engine: engine}
}

func AddRoute(f *Frontend, route *Route) {
	f.Handle(route.HttpMethod, route.RelativePath, route.Handler)
}

// Handle binds h to method and path. The path uses gin's syntax, e.g. /users/:id.
func (f *Frontend) Handle(method, path string, h HandlerFunc) *Frontend {
	app := f.app
	f.engine.Handle(method, path, func(c *gin.Context) {
		res := h(c.Request.Context(), app.Clone(), requestFromGin(c))
		Write(c, res)
	})
	return f
}

func (f *Frontend) GET(path string, h HandlerFunc) *Frontend {
	return f.Handle(http.MethodGet, path, h)
}

func (f *Frontend) POST(path string, h HandlerFunc) *Frontend {
	return f.Handle(http.MethodPost, path, h)
}

func (f *Frontend) PUT(path string, h HandlerFunc) *Frontend {
	return f.Handle(http.MethodPut, path, h)
}

func (f *Frontend) DELETE(path string, h HandlerFunc) *Frontend {
	return f.Handle(http.MethodDelete, path, h)
}

func (f *Frontend) Handler() http.Handler {
	return f.engine
}

// Serve listens on addr and blocks until the server fails or ctx is cancelled, in which case
// in-flight requests get a few seconds to finish.
func (f *Frontend) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           f.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		f.app.Log().Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Write sends res on c.
func Write(c *gin.Context, res Response) {
	ct := res.ContentType
	if ct == "" {
		ct = contentTypeText
	}
	c.Data(validStatus(res.Status), ct, res.Body)
}

// MakeGinHandlerFunc adapts h for use on an existing gin router.
func MakeGinHandlerFunc(app App, h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		Write(c, h(c.Request.Context(), app.Clone(), requestFromGin(c)))
	}
}
