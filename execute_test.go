package rp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type recordingLogger struct {
	events []string
}

func (l *recordingLogger) LogMessage(msg string) { l.events = append(l.events, "msg:"+msg) }

func (l *recordingLogger) LogStageStart(label string, in any) {
	l.events = append(l.events, "start:"+label)
}

func (l *recordingLogger) LogStageComplete(success bool, elapsed time.Duration, label string, out any) {
	state := "ok"
	if !success {
		state = "err"
	}
	l.events = append(l.events, state+":"+label)
}

func (l *recordingLogger) LogShortCircuit(status int, body string) {
	l.events = append(l.events, "halt:"+body)
}

func greet(_ context.Context, _ App, req *Request) Option[string] {
	return OptionOf(req.Param("name"))
}

func testRequest() *Request {
	return NewRequest(httptest.NewRequest(http.MethodGet, "/", http.NoBody), nil)
}

func TestStagesAreLoggedInOrder(t *testing.T) {
	lgr := &recordingLogger{}
	app := NewApp(nil, WithLogger(lgr))

	p := IfNone(Then(Receive(testRequest(), app), greet), "No name", http.StatusBadRequest)
	res := Finish(context.Background(), p)

	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, []string{
		"msg:Starting execution chain...",
		"start:  => then(greet) =>",
		"ok:  => then(greet) =>",
		"start:  => ifNone =>",
		"err:  => ifNone =>",
		"halt:No name",
	}, lgr.events)
}

func TestStagesAreTraced(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	app := NewApp(nil, WithTracerProvider(tp))

	p := IfNone(Then(Receive(testRequest(), app), greet), "No name", http.StatusBadRequest)
	Finish(context.Background(), p)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "then greet", spans[0].Name())
	assert.Equal(t, "ifNone", spans[1].Name())
	assert.True(t, spans[0].EndTime().Compare(spans[1].StartTime()) <= 0)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestZeroLogger(t *testing.T) {
	var buf bytes.Buffer
	lgr := ZeroLogger{Log: zerolog.New(&buf).Level(zerolog.DebugLevel)}

	lgr.LogStageComplete(true, time.Millisecond, "  => then(x) =>", nil)
	lgr.LogShortCircuit(http.StatusNotFound, "Not found")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var complete map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &complete))
	assert.Equal(t, "stage complete", complete["message"])
	assert.Equal(t, true, complete["ok"])

	var halt map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &halt))
	assert.Equal(t, float64(http.StatusNotFound), halt["status"])
	assert.Equal(t, "Not found", halt["body"])
}

func TestStepLabel(t *testing.T) {
	assert.Equal(t, "  => then(greet) =>", stepLabel("then", greet))
	assert.Equal(t, "  => catch(ErrorStatus) =>", stepLabel("catch", ErrorStatus))
	assert.Equal(t, "join(a, b)", FuncStr("join", "a", "b"))
	assert.Equal(t, "  => then() =>", stepLabel("then", nil))

	assert.Equal(t, "then greet", spanName(stepLabel("then", greet)))
	assert.Equal(t, "then", spanName(stepLabel("then", nil)))
	assert.Equal(t, "join left right", spanName("  => join(left, right) =>"))
	assert.Equal(t, "ifNone", spanName("  => ifNone =>"))
}
