package rp

import (
	"context"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Logger receives a report for every step a pipeline runs.
type Logger interface {
	LogMessage(msg string)
	LogStageStart(label string, in any)
	LogStageComplete(success bool, elapsed time.Duration, label string, out any)
	LogShortCircuit(status int, body string)
}

// DefaultLogger prints one coloured line per step through the standard log package.
type DefaultLogger struct{}

func (l DefaultLogger) LogMessage(msg string) {
	log.Print(msg)
}

func (l DefaultLogger) LogStageStart(label string, in any) {
	// Ignore
}

func (l DefaultLogger) LogStageComplete(success bool, elapsed time.Duration, label string, out any) {

	// Column 1: Success or failure
	lbl := color.New(color.FgWhite).Add(color.BgGreen).Sprintf(" OK  ")
	if !success {
		lbl = color.New(color.FgWhite).Add(color.BgRed).Sprintf(" ERR ")
	}

	// Column 2: Time elapsed
	tclr := color.New(color.FgWhite, color.Faint)
	if elapsed > time.Millisecond {
		tclr = color.New(color.FgWhite).Add(color.BgCyan)
	}
	t := tclr.Sprintf("%13v", elapsed)

	// Column 3: Stage label
	log.Print("|" + lbl + "| " + t + " | " + label)
}

func (l DefaultLogger) LogShortCircuit(status int, body string) {
	log.Printf("")
	log.Printf("Short-circuit %d: %s", status, body)
	log.Printf("")
}

// ZeroLogger reports steps as structured zerolog events. Step traffic is logged at debug level,
// short circuits at info.
type ZeroLogger struct {
	Log zerolog.Logger
}

func (l ZeroLogger) LogMessage(msg string) {
	l.Log.Debug().Msg(msg)
}

func (l ZeroLogger) LogStageStart(label string, in any) {
	l.Log.Trace().Str("stage", label).Msg("stage start")
}

func (l ZeroLogger) LogStageComplete(success bool, elapsed time.Duration, label string, out any) {
	l.Log.Debug().
		Str("stage", label).
		Bool("ok", success).
		Dur("elapsed", elapsed).
		Msg("stage complete")
}

func (l ZeroLogger) LogShortCircuit(status int, body string) {
	l.Log.Info().
		Int("status", status).
		Str("body", body).
		Msg("pipeline short-circuited")
}

// runStage executes a single step inside a span and reports it to the app's Logger.
func runStage[Out any](ctx context.Context, app App, label string, in any, f func(ctx context.Context) Outcome[Out]) Outcome[Out] {
	ctx, span := app.tracer().Start(ctx, spanName(label))
	defer span.End()

	lgr := app.Logger()
	if lgr != nil {
		lgr.LogStageStart(label, in)
	}

	t := time.Now()
	o := f(ctx)

	if o.halted {
		span.SetStatus(codes.Error, o.body)
		span.SetAttributes(attribute.Int("http.response.status_code", o.status))
	}

	if lgr != nil {
		lgr.LogStageComplete(!o.halted, time.Since(t), label, o.value)
		if o.halted {
			lgr.LogShortCircuit(o.status, o.body)
		}
	}

	return o
}
