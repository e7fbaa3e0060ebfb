package rp

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jeremywhuff/rp/v2"

// App is the read-only handle to process-wide dependencies that every step receives.
// Copies share the same underlying resources.
type App struct {
	inner *appInner
}

type appInner struct {
	db       Store
	logger   Logger
	log      zerolog.Logger
	tracer   trace.Tracer
	validate *validator.Validate
}

type AppOption func(*appInner)

// WithLogger sets the stage logger. A nil Logger disables stage logging.
func WithLogger(l Logger) AppOption {
	return func(a *appInner) { a.logger = l }
}

// WithLog sets the structured logger used for process and access logs.
func WithLog(l zerolog.Logger) AppOption {
	return func(a *appInner) { a.log = l }
}

func WithTracerProvider(tp trace.TracerProvider) AppOption {
	return func(a *appInner) { a.tracer = tp.Tracer(tracerName) }
}

func WithValidator(v *validator.Validate) AppOption {
	return func(a *appInner) { a.validate = v }
}

// NewApp is called once at startup. db may be nil for apps that never touch storage.
func NewApp(db Store, opts ...AppOption) App {
	inner := &appInner{
		db:  db,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(inner)
	}
	if inner.tracer == nil {
		inner.tracer = otel.GetTracerProvider().Tracer(tracerName)
	}
	if inner.validate == nil {
		inner.validate = defaultValidator
	}
	return App{inner: inner}
}

// Clone returns a handle to the same dependencies.
func (a App) Clone() App {
	return a
}

func (a App) Database() Store {
	if a.inner == nil {
		return nil
	}
	return a.inner.db
}

func (a App) Logger() Logger {
	if a.inner == nil {
		return nil
	}
	return a.inner.logger
}

func (a App) Log() *zerolog.Logger {
	if a.inner == nil {
		l := zerolog.Nop()
		return &l
	}
	return &a.inner.log
}

func (a App) Validator() *validator.Validate {
	if a.inner == nil {
		return defaultValidator
	}
	return a.inner.validate
}

func (a App) tracer() trace.Tracer {
	if a.inner == nil {
		return otel.GetTracerProvider().Tracer(tracerName)
	}
	return a.inner.tracer
}

var defaultValidator = validator.New(validator.WithRequiredStructEnabled())
